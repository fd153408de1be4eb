// Package utils provides common utility functions used across the smokecheck
// engine. This file implements HTTP-related utilities including a common
// HTTP client constructor with consistent configuration.
package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NewHTTPClient returns an HTTP client bounded by the given timeout.
// Redirects are followed, capped at 10 hops.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// ResolveURL resolves a path or absolute URL against a base URL.
// "/favicon.ico" against "http://localhost:3002" yields
// "http://localhost:3002/favicon.ico"; absolute inputs pass through.
func ResolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL '%s': %w", base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid URL '%s': %w", ref, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
