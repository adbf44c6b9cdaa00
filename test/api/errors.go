/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by every TransportError.
	ErrTransport = errors.New("transport error")

	// ErrAuthFailure is matched by every AuthFailure.
	ErrAuthFailure = errors.New("authentication failure")

	// ErrDependencyNotMet is returned when a lifecycle step runs before the
	// steps it depends on have completed.
	ErrDependencyNotMet = errors.New("dependency not met")

	// ErrBookingIDAlreadySet is returned on a second write of the booking ID.
	ErrBookingIDAlreadySet = errors.New("booking ID already set")

	// ErrBookingIDUnset is returned when reading the booking ID before create.
	ErrBookingIDUnset = errors.New("booking ID not set")
)

// bodyPreviewLength bounds how much of a response body ends up in an error.
const bodyPreviewLength = 512

// TransportError is raised when no HTTP response was received at all,
// e.g. connection refused, DNS failure or timeout.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// AuthFailure is raised when /auth does not issue a token.
type AuthFailure struct {
	Err error
}

func (e *AuthFailure) Error() string {
	return fmt.Sprintf("%v: %v", ErrAuthFailure, e.Err)
}

func (e *AuthFailure) Unwrap() error {
	return e.Err
}

func (e *AuthFailure) Is(target error) bool {
	return target == ErrAuthFailure
}

// UnexpectedStatusError is raised when a response status differs from the
// expected one.
type UnexpectedStatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: expected %d, got %d, body: %s (trace ID: %s)",
		e.Method, e.Path, e.Expected, e.Actual, e.Body, e.TraceID)
}

// FieldMismatchError is raised when the value at a JSON path differs from
// the expected one.
type FieldMismatchError struct {
	Path     string
	Expected any
	Actual   any
	Diff     string
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("field %q: expected %#v, got %#v", e.Path, e.Expected, e.Actual)
}

// MissingFieldError is raised when a JSON path is absent or null.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q: missing", e.Path)
}

// preview truncates a body for inclusion in an error message.
func preview(body []byte) string {
	if len(body) <= bodyPreviewLength {
		return string(body)
	}

	return string(body[:bodyPreviewLength]) + "..."
}
