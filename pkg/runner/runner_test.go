package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokecheck/pkg/checks"
	"smokecheck/pkg/suite"
)

func stubRegistry(t *testing.T) *checks.Registry {
	t.Helper()
	r := checks.NewRegistry()
	r.MustRegister("always_pass", "Always Pass", func(ctx context.Context, s *suite.Suite) (bool, error) {
		return true, nil
	})
	r.MustRegister("always_fail", "Always Fail", func(ctx context.Context, s *suite.Suite) (bool, error) {
		return false, nil
	})
	r.MustRegister("erroring", "Erroring", func(ctx context.Context, s *suite.Suite) (bool, error) {
		return false, errors.New("connection refused")
	})
	r.MustRegister("panicking", "Panicking", func(ctx context.Context, s *suite.Suite) (bool, error) {
		panic("boom")
	})
	return r
}

func stubSuite(names ...string) *suite.Suite {
	return &suite.Suite{Name: "stub", BaseURL: "http://localhost:3002", Checks: names}
}

func TestRunSuite(t *testing.T) {
	t.Run("all passing yields exit code 0", func(t *testing.T) {
		r := New(stubSuite("always_pass", "always_pass"), stubRegistry(t), nil)
		res := r.RunSuite(context.Background())

		assert.Equal(t, 2, res.TestsRun)
		assert.Equal(t, 2, res.TestsPassed)
		assert.True(t, res.AllPassed())
		assert.Equal(t, 0, res.ExitCode())
	})

	t.Run("one failing check yields exit code 1", func(t *testing.T) {
		r := New(stubSuite("always_pass", "always_fail", "always_pass"), stubRegistry(t), nil)
		res := r.RunSuite(context.Background())

		assert.Equal(t, 3, res.TestsRun)
		assert.Equal(t, 2, res.TestsPassed)
		assert.Equal(t, 1, res.ExitCode())
	})

	t.Run("erroring check does not abort the run", func(t *testing.T) {
		r := New(stubSuite("erroring", "always_pass"), stubRegistry(t), nil)
		res := r.RunSuite(context.Background())

		require.Len(t, res.Checks, 2)
		assert.False(t, res.Checks[0].Passed)
		assert.ErrorContains(t, res.Checks[0].Error, "connection refused")
		assert.True(t, res.Checks[1].Passed)
		assert.Equal(t, 2, res.TestsRun)
		assert.Equal(t, 1, res.TestsPassed)
	})

	t.Run("panicking check is isolated", func(t *testing.T) {
		r := New(stubSuite("panicking", "always_pass"), stubRegistry(t), nil)
		res := r.RunSuite(context.Background())

		require.Len(t, res.Checks, 2)
		assert.False(t, res.Checks[0].Passed)
		assert.ErrorContains(t, res.Checks[0].Error, "panicked")
		assert.True(t, res.Checks[1].Passed)
	})

	t.Run("unknown check counts as a failed run", func(t *testing.T) {
		r := New(stubSuite("no_such_check", "always_pass"), stubRegistry(t), nil)
		res := r.RunSuite(context.Background())

		assert.Equal(t, 2, res.TestsRun)
		assert.Equal(t, 1, res.TestsPassed)
		assert.ErrorContains(t, res.Checks[0].Error, "no handler registered")
		assert.Equal(t, 1, res.ExitCode())
	})

	t.Run("passed never exceeds run", func(t *testing.T) {
		r := New(stubSuite("always_fail", "panicking", "erroring", "always_pass"), stubRegistry(t), nil)
		res := r.RunSuite(context.Background())
		assert.LessOrEqual(t, res.TestsPassed, res.TestsRun)
		assert.Equal(t, 4, res.TestsRun)
	})
}

func TestEnvironmentGate(t *testing.T) {
	envFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("gate failure alone forces exit code 1", func(t *testing.T) {
		s := stubSuite("always_pass")
		s.Environment = &suite.EnvGate{
			File:         envFile(t, "OTHER_KEY=1\n"),
			RequiredKeys: []string{"VITE_RETELL_API_KEY"},
		}

		res := New(s, stubRegistry(t), nil).RunSuite(context.Background())
		assert.True(t, res.AllPassed())
		assert.False(t, res.EnvOK())
		assert.Equal(t, 1, res.ExitCode())
	})

	t.Run("gate passing with all checks passing yields 0", func(t *testing.T) {
		s := stubSuite("always_pass")
		s.Environment = &suite.EnvGate{
			File:         envFile(t, "VITE_RETELL_API_KEY=abc\n"),
			RequiredKeys: []string{"VITE_RETELL_API_KEY"},
		}

		res := New(s, stubRegistry(t), nil).RunSuite(context.Background())
		assert.Equal(t, 0, res.ExitCode())
	})

	t.Run("gate does not touch the counters", func(t *testing.T) {
		s := stubSuite("always_pass")
		s.Environment = &suite.EnvGate{
			File:         envFile(t, "OTHER=1\n"),
			RequiredKeys: []string{"MISSING"},
		}

		res := New(s, stubRegistry(t), nil).RunSuite(context.Background())
		assert.Equal(t, 1, res.TestsRun)
		assert.Equal(t, 1, res.TestsPassed)
	})

	t.Run("no gate counts as passed", func(t *testing.T) {
		res := New(stubSuite("always_pass"), stubRegistry(t), nil).RunSuite(context.Background())
		assert.True(t, res.EnvOK())
		assert.Nil(t, res.Environment)
	})
}

// recordingObserver captures notification order.
type recordingObserver struct {
	events []string
}

func (o *recordingObserver) EnvironmentChecked(res *checks.EnvResult) {
	o.events = append(o.events, "env")
}

func (o *recordingObserver) CheckStarted(title string) {
	o.events = append(o.events, "start:"+title)
}

func (o *recordingObserver) CheckFinished(res *CheckResult) {
	o.events = append(o.events, "finish:"+res.Title)
}

func TestObserverNotifications(t *testing.T) {
	s := stubSuite("always_pass", "always_fail")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("K=1\n"), 0o600))
	s.Environment = &suite.EnvGate{File: path, RequiredKeys: []string{"K"}}

	obs := &recordingObserver{}
	New(s, stubRegistry(t), obs).RunSuite(context.Background())

	assert.Equal(t, []string{
		"env",
		"start:Always Pass", "finish:Always Pass",
		"start:Always Fail", "finish:Always Fail",
	}, obs.events)
}
