// Package suite defines the smoke-check suite format. This file handles
// loading suite definitions from YAML files, applying defaults for omitted
// fields, and performing basic validation.
package suite

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in suite: the voice-agent frontend on
// localhost:3002, its favicon and manifest, the Retell API origin, and the
// /app/.env gate. Used when no suite file is given.
func Default() *Suite {
	return &Suite{
		Name:    "Voice Agent Application Backend Testing",
		BaseURL: "http://localhost:3002",
		Frontend: FrontendTarget{
			Timeout: "10s",
		},
		Assets: AssetProbe{
			Paths:    []string{"/favicon.ico", "/manifest.json"},
			Timeout:  "5s",
			Discover: true,
		},
		API: APITarget{
			URL:     "https://api.retellai.com",
			Timeout: "10s",
		},
		Environment: &EnvGate{
			File:         "/app/.env",
			RequiredKeys: []string{"VITE_RETELL_API_KEY", "VITE_RETELL_AGENT_ID"},
		},
		Checks: []string{"frontend", "static_assets", "external_api"},
	}
}

// LoadSuiteFromFile reads a suite definition from a YAML file, fills in
// defaults for omitted fields, and validates the result.
func LoadSuiteFromFile(filePath string) (*Suite, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file '%s': %w", filePath, err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML from '%s': %w", filePath, err)
	}

	applyDefaults(&s)

	if err := ValidateSuite(&s); err != nil {
		return nil, fmt.Errorf("validation failed for '%s': %w", filePath, err)
	}

	return &s, nil
}

// applyDefaults fills omitted fields from the built-in suite so that a
// minimal file like "base_url: http://staging:8080" is a complete suite.
func applyDefaults(s *Suite) {
	def := Default()

	if s.Name == "" {
		s.Name = def.Name
	}
	if s.BaseURL == "" {
		s.BaseURL = def.BaseURL
	}
	if s.Frontend.Timeout == "" {
		s.Frontend.Timeout = def.Frontend.Timeout
	}
	if len(s.Assets.Paths) == 0 {
		s.Assets.Paths = def.Assets.Paths
		s.Assets.Discover = def.Assets.Discover
	}
	if s.Assets.Timeout == "" {
		s.Assets.Timeout = def.Assets.Timeout
	}
	if s.API.URL == "" {
		s.API.URL = def.API.URL
	}
	if s.API.Timeout == "" {
		s.API.Timeout = def.API.Timeout
	}
	if s.Sitemap != nil {
		if s.Sitemap.Path == "" {
			s.Sitemap.Path = "/sitemap.xml"
		}
		if s.Sitemap.Timeout == "" {
			s.Sitemap.Timeout = def.Assets.Timeout
		}
	}
	if len(s.Checks) == 0 {
		s.Checks = def.Checks
		if s.Sitemap != nil {
			s.Checks = append(s.Checks, "sitemap")
		}
	}
}

// ValidateSuite performs structural validation of a Suite.
func ValidateSuite(s *Suite) error {
	if s == nil {
		return fmt.Errorf("nil Suite cannot be validated")
	}

	if s.BaseURL == "" {
		return fmt.Errorf("suite base_url is required")
	}
	if err := validateURL(s.BaseURL); err != nil {
		return fmt.Errorf("suite base_url: %w", err)
	}
	if s.API.URL != "" {
		if err := validateURL(s.API.URL); err != nil {
			return fmt.Errorf("suite api.url: %w", err)
		}
	}

	for field, raw := range map[string]string{
		"frontend.timeout": s.Frontend.Timeout,
		"assets.timeout":   s.Assets.Timeout,
		"api.timeout":      s.API.Timeout,
	} {
		if err := validateTimeout(raw); err != nil {
			return fmt.Errorf("suite %s: %w", field, err)
		}
	}
	if s.Sitemap != nil {
		if err := validateTimeout(s.Sitemap.Timeout); err != nil {
			return fmt.Errorf("suite sitemap.timeout: %w", err)
		}
	}

	if s.Environment != nil {
		if s.Environment.File == "" {
			return fmt.Errorf("suite environment.file is required when environment gate is configured")
		}
		if len(s.Environment.RequiredKeys) == 0 {
			return fmt.Errorf("suite environment.required_keys must name at least one key")
		}
	}

	if len(s.Checks) == 0 {
		return fmt.Errorf("suite must list at least one check")
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL '%s': %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL '%s' must use http or https scheme", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL '%s' is missing a host", raw)
	}
	return nil
}

func validateTimeout(raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid timeout '%s': %w", raw, err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout '%s' must be positive", raw)
	}
	return nil
}
