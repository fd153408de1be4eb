// Package main implements the command-line interface for smokecheck.
// It loads the suite definition, runs the smoke checks against the target
// deployment, prints the report, and exits 0 only when every check and the
// environment gate passed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"smokecheck/pkg/reporter"
	"smokecheck/pkg/runner"
	"smokecheck/pkg/suite"

	// Import the checks package to trigger init() registration.
	_ "smokecheck/pkg/checks"
)

func main() {
	exitCode := 0

	root := newRootCmd(&exitCode)
	if err := root.Execute(); err != nil {
		slog.Error("Execution failed", "error", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func newRootCmd(exitCode *int) *cobra.Command {
	var (
		suitePath string
		baseURL   string
		logLevel  string
	)

	root := &cobra.Command{
		Use:   "smokecheck",
		Short: "HTTP smoke checks for the voice agent deployment",
		Long: "smokecheck runs reachability checks against a web frontend, its static\n" +
			"assets, and the external Retell AI API, and verifies that the required\n" +
			"configuration keys are present in the environment file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)

			s, err := loadSuite(suitePath, baseURL)
			if err != nil {
				return err
			}

			rep := reporter.New(cmd.OutOrStdout())
			rep.Banner(s.Name)

			result := runner.New(s, nil, rep).RunSuite(cmd.Context())
			rep.Summary(result)

			*exitCode = result.ExitCode()
			return nil
		},
	}

	root.Flags().StringVarP(&suitePath, "suite", "s", "", "Path to suite YAML file (optional, defaults to the built-in suite)")
	root.Flags().StringVarP(&baseURL, "url", "u", "", "Base URL override for the frontend under test")
	root.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.SetContext(context.Background())
	return root
}

// loadSuite loads the suite file when given, falling back to the built-in
// default suite, and applies the base URL override.
func loadSuite(suitePath, baseURL string) (*suite.Suite, error) {
	s := suite.Default()
	if suitePath != "" {
		loaded, err := suite.LoadSuiteFromFile(suitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load suite: %w", err)
		}
		s = loaded
	}
	if baseURL != "" {
		s.BaseURL = baseURL
		if err := suite.ValidateSuite(s); err != nil {
			return nil, fmt.Errorf("invalid base URL override: %w", err)
		}
	}
	return s, nil
}

func setupLogging(logLevel string) {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
