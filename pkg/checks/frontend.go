// Package checks implements check handlers for the smokecheck engine.
// This file implements the frontend reachability check.
package checks

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"smokecheck/pkg/suite"
	"smokecheck/pkg/utils"
)

// frontendCheck verifies the frontend is accessible: a GET of the base URL
// must return status 200 within the configured timeout.
func frontendCheck(ctx context.Context, s *suite.Suite) (bool, error) {
	client := utils.NewHTTPClient(s.FrontendTimeout())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("frontend request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("frontend returned status %d", resp.StatusCode)
	}
	return true, nil
}

const userAgent = "smokecheck/1.0"

// init registers the frontend check handler.
func init() {
	MustRegisterCheck("frontend", "Frontend Accessibility", frontendCheck)
}
