// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package service

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-success HTTP status from the service.
type StatusError struct {
	StatusCode int
	Detail     string
	Op         string // operation that failed (e.g. "health")
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// IsUnavailable reports whether err is a gateway or availability failure
// (502, 503, 504), i.e. the service is down rather than misbehaving.
func IsUnavailable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
