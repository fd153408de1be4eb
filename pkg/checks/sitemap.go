// Package checks implements check handlers for the smokecheck engine.
// This file implements the optional sitemap check: <base>/sitemap.xml must
// fetch with status 200, parse as XML, and list at least one URL entry.
package checks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/antchfx/xmlquery"

	"smokecheck/pkg/suite"
	"smokecheck/pkg/utils"
)

func sitemapCheck(ctx context.Context, s *suite.Suite) (bool, error) {
	path := "/sitemap.xml"
	if s.Sitemap != nil && s.Sitemap.Path != "" {
		path = s.Sitemap.Path
	}
	target, err := utils.ResolveURL(s.BaseURL, path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve sitemap URL: %w", err)
	}

	client := utils.NewHTTPClient(s.SitemapTimeout())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("sitemap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("sitemap returned status %d", resp.StatusCode)
	}

	doc, err := xmlquery.Parse(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to parse sitemap XML: %w", err)
	}

	entries, err := xmlquery.QueryAll(doc, "//*[local-name()='url']/*[local-name()='loc']")
	if err != nil {
		return false, fmt.Errorf("failed to query sitemap entries: %w", err)
	}
	if len(entries) == 0 {
		return false, fmt.Errorf("sitemap contains no URL entries")
	}
	return true, nil
}

// init registers the sitemap check handler.
func init() {
	MustRegisterCheck("sitemap", "Sitemap Availability", sitemapCheck)
}
