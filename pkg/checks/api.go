// Package checks implements check handlers for the smokecheck engine.
// This file implements the external API reachability check. Any completed
// HTTP exchange means the origin is reachable: the status code is
// deliberately not inspected, so a 404 from the API root still passes.
package checks

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"smokecheck/pkg/suite"
	"smokecheck/pkg/utils"
)

// externalAPICheck issues a GET to the API origin and passes iff the request
// completed without a connection error.
func externalAPICheck(ctx context.Context, s *suite.Suite) (bool, error) {
	client := utils.NewHTTPClient(s.APITimeout())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.API.URL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("API origin unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// Any response, including error codes, means the API is reachable.
	return true, nil
}

// init registers the external API check handler.
func init() {
	MustRegisterCheck("external_api", "Retell AI API Connectivity", externalAPICheck)
}
