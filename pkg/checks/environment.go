// Package checks implements check handlers for the smokecheck engine.
// This file implements the environment gate: the configured env file must
// contain every required key name as a literal substring. The gate runs
// outside the counted checks and independently feeds the process exit code.
package checks

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"smokecheck/pkg/suite"
)

// KeyStatus reports one required key's presence in the env file. HasValue is
// informational: it is true when the file parses as dotenv and the key
// carries a non-empty value. Only Present feeds the gate.
type KeyStatus struct {
	Key      string
	Present  bool
	HasValue bool
}

// EnvResult is the outcome of the environment gate.
type EnvResult struct {
	OK   bool
	File string
	Keys []KeyStatus
	Err  error
}

// Environment evaluates the environment gate for a suite. A missing or
// unreadable file yields a failed gate, never an error to the caller. A nil
// gate configuration passes trivially.
func Environment(s *suite.Suite) *EnvResult {
	if s.Environment == nil {
		return &EnvResult{OK: true}
	}

	result := &EnvResult{File: s.Environment.File}

	data, err := os.ReadFile(s.Environment.File)
	if err != nil {
		result.Err = fmt.Errorf("failed to read env file '%s': %w", s.Environment.File, err)
		for _, key := range s.Environment.RequiredKeys {
			result.Keys = append(result.Keys, KeyStatus{Key: key})
		}
		return result
	}

	// Parsed view is best-effort; the gate itself is a substring check.
	parsed, parseErr := godotenv.Parse(bytes.NewReader(data))
	if parseErr != nil {
		parsed = nil
	}

	content := string(data)
	result.OK = true
	for _, key := range s.Environment.RequiredKeys {
		status := KeyStatus{
			Key:     key,
			Present: strings.Contains(content, key),
		}
		if val, ok := parsed[key]; ok {
			status.HasValue = strings.TrimSpace(val) != ""
		}
		if !status.Present {
			result.OK = false
		}
		result.Keys = append(result.Keys, status)
	}

	return result
}
