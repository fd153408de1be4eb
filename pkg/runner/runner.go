// Package runner orchestrates the sequential execution of a smoke-check
// suite. It owns the run/pass counters, isolates each check's failures so a
// failing check never aborts the run, and aggregates per-check results into
// a suite result that determines the process exit code.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smokecheck/pkg/checks"
	"smokecheck/pkg/suite"
)

// CheckResult represents the outcome of executing an individual check.
type CheckResult struct {
	Name      string
	Title     string
	Passed    bool
	StartTime time.Time
	Duration  time.Duration
	Error     error
}

// SuiteResult represents the outcome of executing a full suite.
type SuiteResult struct {
	SuiteName   string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Environment *checks.EnvResult
	Checks      []*CheckResult
	TestsRun    int
	TestsPassed int
}

// AllPassed reports whether every counted check passed.
func (sr *SuiteResult) AllPassed() bool {
	return sr.TestsPassed == sr.TestsRun
}

// EnvOK reports whether the environment gate passed. An unevaluated gate
// counts as passed.
func (sr *SuiteResult) EnvOK() bool {
	return sr.Environment == nil || sr.Environment.OK
}

// ExitCode is 0 only when every counted check and the environment gate
// passed, otherwise 1.
func (sr *SuiteResult) ExitCode() int {
	if sr.AllPassed() && sr.EnvOK() {
		return 0
	}
	return 1
}

// Observer receives progress notifications as the runner executes. The
// reporter implements this to print live progress lines.
type Observer interface {
	EnvironmentChecked(res *checks.EnvResult)
	CheckStarted(title string)
	CheckFinished(res *CheckResult)
}

// Runner executes a suite's checks in order.
type Runner struct {
	TestsRun    int
	TestsPassed int

	suite    *suite.Suite
	registry *checks.Registry
	observer Observer
}

// New creates a Runner for a suite. A nil observer disables progress
// notifications; a nil registry falls back to the default registry.
func New(s *suite.Suite, registry *checks.Registry, observer Observer) *Runner {
	if registry == nil {
		registry = checks.DefaultRegistry
	}
	return &Runner{suite: s, registry: registry, observer: observer}
}

// RunSuite evaluates the environment gate and then executes every counted
// check in suite order, returning the aggregate result.
func (r *Runner) RunSuite(ctx context.Context) *SuiteResult {
	result := &SuiteResult{
		SuiteName: r.suite.Name,
		StartTime: time.Now(),
	}

	if r.suite.Environment != nil {
		result.Environment = checks.Environment(r.suite)
		if r.observer != nil {
			r.observer.EnvironmentChecked(result.Environment)
		}
		slog.Debug("Environment gate evaluated", "ok", result.Environment.OK)
	}

	for _, name := range r.suite.Checks {
		handler, err := r.registry.Get(name)
		if err != nil {
			// Unknown checks count as failed runs, consistent with a check
			// that raised.
			result.Checks = append(result.Checks, r.runFailed(name, err))
			continue
		}
		result.Checks = append(result.Checks, r.RunCheck(ctx, name, handler))
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.TestsRun = r.TestsRun
	result.TestsPassed = r.TestsPassed
	return result
}

// RunCheck executes a single check, incrementing the run counter exactly
// once regardless of outcome and the pass counter on success. Errors and
// panics inside the check are confined to its result.
func (r *Runner) RunCheck(ctx context.Context, name string, handler checks.Handler) *CheckResult {
	res := &CheckResult{
		Name:      name,
		Title:     r.registry.Title(name),
		StartTime: time.Now(),
	}

	r.TestsRun++
	if r.observer != nil {
		r.observer.CheckStarted(res.Title)
	}

	passed, err := r.invoke(ctx, handler)
	res.Duration = time.Since(res.StartTime)
	res.Passed = passed && err == nil
	res.Error = err
	if res.Passed {
		r.TestsPassed++
	}

	if r.observer != nil {
		r.observer.CheckFinished(res)
	}
	slog.Debug("Check finished", "check", name, "passed", res.Passed, "duration", res.Duration)
	return res
}

// invoke calls a handler, converting a panic into an error.
func (r *Runner) invoke(ctx context.Context, handler checks.Handler) (passed bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			passed = false
			err = fmt.Errorf("check panicked: %v", rec)
		}
	}()
	return handler(ctx, r.suite)
}

// runFailed records a check that could not be executed at all.
func (r *Runner) runFailed(name string, err error) *CheckResult {
	res := &CheckResult{
		Name:      name,
		Title:     r.registry.Title(name),
		StartTime: time.Now(),
		Error:     err,
	}
	r.TestsRun++
	if r.observer != nil {
		r.observer.CheckStarted(res.Title)
		r.observer.CheckFinished(res)
	}
	return res
}
