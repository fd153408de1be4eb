// Package suite defines the Go data structures that represent a smoke-check
// suite definition. A suite names the frontend under test, the static assets
// to probe, the external API origin, and the environment file gate.
package suite

import "time"

// Suite is the top-level smoke-check suite definition.
type Suite struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`

	Frontend FrontendTarget `yaml:"frontend"`
	Assets   AssetProbe     `yaml:"assets"`
	API      APITarget      `yaml:"api"`
	Sitemap  *SitemapProbe  `yaml:"sitemap,omitempty"`

	Environment *EnvGate `yaml:"environment,omitempty"`

	// Checks lists the counted checks to run, in order. Check names must be
	// registered in the checks package.
	Checks []string `yaml:"checks"`
}

// FrontendTarget configures the frontend reachability check.
type FrontendTarget struct {
	Timeout string `yaml:"timeout"`
}

// AssetProbe configures the static asset check. Paths are resolved against
// BaseURL. When Discover is set, additional candidates are pulled from the
// frontend page's <link rel="icon"> and <link rel="manifest"> tags.
type AssetProbe struct {
	Paths    []string `yaml:"paths"`
	Timeout  string   `yaml:"timeout"`
	Discover bool     `yaml:"discover"`
}

// APITarget configures the external API reachability check. Any completed
// HTTP exchange counts as reachable; the status code is not inspected.
type APITarget struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// SitemapProbe configures the optional sitemap check.
type SitemapProbe struct {
	Path    string `yaml:"path"`
	Timeout string `yaml:"timeout"`
}

// EnvGate configures the environment file gate: every key in RequiredKeys
// must appear as a literal substring of the file's contents.
type EnvGate struct {
	File         string   `yaml:"file"`
	RequiredKeys []string `yaml:"required_keys"`
}

// Default timeouts, matching the original deployment's bounds.
const (
	DefaultFrontendTimeout = 10 * time.Second
	DefaultAssetTimeout    = 5 * time.Second
	DefaultAPITimeout      = 10 * time.Second
)

// FrontendTimeout returns the parsed frontend timeout, falling back to the
// default when unset or unparseable. Validation rejects bad values at load
// time, so the fallback only fires for hand-built suites.
func (s *Suite) FrontendTimeout() time.Duration {
	return parseTimeout(s.Frontend.Timeout, DefaultFrontendTimeout)
}

// AssetTimeout returns the parsed per-asset timeout.
func (s *Suite) AssetTimeout() time.Duration {
	return parseTimeout(s.Assets.Timeout, DefaultAssetTimeout)
}

// APITimeout returns the parsed external API timeout.
func (s *Suite) APITimeout() time.Duration {
	return parseTimeout(s.API.Timeout, DefaultAPITimeout)
}

// SitemapTimeout returns the parsed sitemap timeout.
func (s *Suite) SitemapTimeout() time.Duration {
	if s.Sitemap == nil {
		return DefaultAssetTimeout
	}
	return parseTimeout(s.Sitemap.Timeout, DefaultAssetTimeout)
}

func parseTimeout(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
