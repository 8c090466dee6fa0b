// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ValidationError indicates that a record is missing a required field
// or carries a value of the wrong shape. It is returned before any
// request is sent, so the caller can correct the record and resubmit.
type ValidationError struct {
	Record string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", e.Record, e.Field, e.Reason)
}

// AuthenticationError indicates a failed login exchange, an operation
// attempted without a session token, or a token the catalog no longer
// accepts. The client never retries or re-logs-in on its own.
type AuthenticationError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *AuthenticationError) Error() string {
	s := "authentication failed"
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.StatusCode != 0 {
		s = fmt.Sprintf("%s (HTTP %d)", s, e.StatusCode)
	}
	if e.Message != "" {
		s = s + ": " + e.Message
	}
	return s
}

// APIError is a non-success response from the catalog for an
// otherwise well-formed request. It carries the status code and the
// backend-provided message verbatim.
type APIError struct {
	Method     string
	URL        url.URL
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() (s string) {
	s = fmt.Sprintf("request failed: %s", e.URL.String())
	if e.Status != "" {
		s = s + ": " + e.Status
	}
	if e.Message != "" {
		s = s + ": " + e.Message
	}
	return
}

// TransportError indicates the request produced no usable response:
// connection failure, timeout, or a reply that could not be read or
// decoded.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// responseError converts a non-2xx response into the matching error
// kind. Token rejections (401/403) surface as AuthenticationError,
// everything else as APIError.
func responseError(req *http.Request, resp *http.Response, buf []byte) error {
	msg := errorMessage(buf)
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthenticationError{
			Op:         req.Method + " " + req.URL.Path,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}
	return &APIError{
		Method:     req.Method,
		URL:        *req.URL,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    msg,
	}
}

// errorMessage extracts the message from a catalog error body. Both
// the legacy {"error":{...}} envelope and the flat {"message":...}
// form are in the wild.
func errorMessage(buf []byte) string {
	var body struct {
		Error struct {
			Name       string `json:"name"`
			StatusCode int    `json:"statusCode"`
			Message    string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(buf, &body) != nil {
		return strings.TrimSpace(string(buf))
	}
	if body.Error.Message != "" {
		if body.Error.Name != "" {
			return body.Error.Name + ": " + body.Error.Message
		}
		return body.Error.Message
	}
	return body.Message
}
