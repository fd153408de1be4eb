// Package reporter provides functions for formatting and outputting
// smoke-check progress and results.
package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"smokecheck/pkg/checks"
	"smokecheck/pkg/runner"
)

// Reporter writes live progress lines and the final summary to a writer.
// It implements runner.Observer.
type Reporter struct {
	w io.Writer

	success   func(a ...interface{}) string
	failure   func(a ...interface{}) string
	highlight func(a ...interface{}) string
	warning   func(a ...interface{}) string
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{
		w:         w,
		success:   color.New(color.FgGreen).SprintFunc(),
		failure:   color.New(color.FgRed).SprintFunc(),
		highlight: color.New(color.FgCyan).SprintFunc(),
		warning:   color.New(color.FgYellow).SprintFunc(),
	}
}

// Banner prints the suite header.
func (r *Reporter) Banner(suiteName string) {
	fmt.Fprintf(r.w, "🎯 %s\n", r.highlight(suiteName))
	fmt.Fprintln(r.w, strings.Repeat("=", 50))
}

// EnvironmentChecked prints the environment gate outcome, one line per
// required key.
func (r *Reporter) EnvironmentChecked(res *checks.EnvResult) {
	fmt.Fprintln(r.w, "\n🔧 Environment Setup Check:")

	if res.Err != nil {
		fmt.Fprintf(r.w, "  %s Error reading env file: %s\n", r.failure("❌"), res.Err)
		return
	}
	for _, key := range res.Keys {
		marker := r.success("✅ Present")
		if !key.Present {
			marker = r.failure("❌ Missing")
		} else if !key.HasValue {
			marker = r.warning("⚠️ Present but empty")
		}
		fmt.Fprintf(r.w, "  - %s: %s\n", key.Key, marker)
	}
}

// CheckStarted prints the progress line for a check.
func (r *Reporter) CheckStarted(title string) {
	fmt.Fprintf(r.w, "\n🔍 Testing %s...\n", title)
}

// CheckFinished prints the pass/fail marker for a check.
func (r *Reporter) CheckFinished(res *runner.CheckResult) {
	if res.Passed {
		fmt.Fprintf(r.w, "%s Passed\n", r.success("✅"))
		return
	}
	if res.Error != nil {
		fmt.Fprintf(r.w, "%s Failed - Error: %s\n", r.failure("❌"), res.Error)
		return
	}
	fmt.Fprintf(r.w, "%s Failed\n", r.failure("❌"))
}

// Summary prints the aggregate counts and the recommendation text.
func (r *Reporter) Summary(sr *runner.SuiteResult) {
	fmt.Fprintln(r.w, "\n📊 Test Results:")
	fmt.Fprintf(r.w, "  - Tests passed: %d/%d\n", sr.TestsPassed, sr.TestsRun)

	envStatus := r.success("✅ OK")
	if !sr.EnvOK() {
		envStatus = r.failure("❌ Issues found")
	}
	fmt.Fprintf(r.w, "  - Environment setup: %s\n", envStatus)

	fmt.Fprintln(r.w, "\n💡 Recommendations:")
	if sr.AllPassed() && sr.EnvOK() {
		fmt.Fprintf(r.w, "  %s Backend infrastructure looks good. Focus on frontend voice agent testing.\n", r.success("✅"))
	} else {
		fmt.Fprintf(r.w, "  %s Some issues found. Check the failed tests above.\n", r.warning("⚠️"))
	}
	if !sr.EnvOK() {
		fmt.Fprintln(r.w, "  🔧 Environment variables need attention for voice agent functionality.")
	}
}
