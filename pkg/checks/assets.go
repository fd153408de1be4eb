// Package checks implements check handlers for the smokecheck engine.
// This file implements the static asset check: the configured asset paths
// are probed one by one, and the check passes as soon as any of them
// returns status 200. Individual probe errors are swallowed; an unreachable
// asset is that asset's failure, not the check's.
package checks

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"smokecheck/pkg/suite"
	"smokecheck/pkg/utils"
)

// assetsCheck probes the suite's asset paths, plus any candidates discovered
// from the frontend page's link tags, and passes iff at least one probe
// returns status 200.
func assetsCheck(ctx context.Context, s *suite.Suite) (bool, error) {
	client := utils.NewHTTPClient(s.AssetTimeout())

	paths := s.Assets.Paths
	if s.Assets.Discover {
		paths = mergePaths(paths, discoverAssetPaths(ctx, s, client))
	}

	for _, path := range paths {
		target, err := utils.ResolveURL(s.BaseURL, path)
		if err != nil {
			slog.Debug("Skipping unresolvable asset path", "path", path, "error", err)
			continue
		}
		if probeAsset(ctx, client, target) {
			return true, nil
		}
	}
	return false, nil
}

// probeAsset fetches a single asset URL. Any request error counts as a miss.
func probeAsset(ctx context.Context, client *http.Client, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		slog.Debug("Asset probe failed", "url", target, "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// discoverAssetPaths fetches the frontend page and extracts icon and manifest
// hrefs from its link tags. Discovery is best-effort: any failure yields an
// empty candidate list.
func discoverAssetPaths(ctx context.Context, s *suite.Suite, client *http.Client) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		slog.Debug("Asset discovery failed", "url", s.BaseURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		slog.Debug("Failed to parse frontend page", "error", err)
		return nil
	}

	var discovered []string
	doc.Find(`link[rel~="icon"], link[rel="manifest"], link[rel="apple-touch-icon"]`).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			discovered = append(discovered, href)
		}
	})

	if len(discovered) > 0 {
		slog.Debug("Discovered asset candidates", "count", len(discovered))
	}
	return discovered
}

// mergePaths appends extras to base, dropping duplicates and preserving order.
func mergePaths(base, extras []string) []string {
	seen := make(map[string]bool, len(base)+len(extras))
	merged := make([]string, 0, len(base)+len(extras))
	for _, p := range append(append([]string{}, base...), extras...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		merged = append(merged, p)
	}
	return merged
}

// init registers the static asset check handler.
func init() {
	MustRegisterCheck("static_assets", "Static Assets Loading", assetsCheck)
}
