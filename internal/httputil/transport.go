// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP plumbing used by the provider client.
package httputil

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Transport is an http.RoundTripper that stamps a User-Agent on every
// request and, when a limiter is set, waits for a token before sending.
// It never retries: the response, whatever its status, is returned as is.
type Transport struct {
	// Base performs the request. nil means http.DefaultTransport.
	Base http.RoundTripper

	// UserAgent is set on requests that do not carry one already.
	UserAgent string

	// Limiter throttles outbound requests. nil disables throttling.
	Limiter *rate.Limiter
}

// NewLimiter returns a token bucket for rps requests per second, or nil
// when rps is not positive. A burst below 1 is raised to 1.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}
	return t.base().RoundTrip(req)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
