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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

// Response is a fully read HTTP response with assertion helpers. Paths are
// dotted, e.g. "booking.bookingdates.checkin".
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// Status checks the response carries the expected status code.
func (r *Response) Status(expected int) error {
	if r.StatusCode == expected {
		return nil
	}

	return &UnexpectedStatusError{
		Method:   r.Method,
		Path:     r.Path,
		Expected: expected,
		Actual:   r.StatusCode,
		Body:     preview(r.Body),
		TraceID:  r.TraceID,
	}
}

// Extract returns the value at path, which must be present and not null.
func (r *Response) Extract(path string) (gjson.Result, error) {
	result := gjson.GetBytes(r.Body, path)
	if !result.Exists() || result.Type == gjson.Null {
		return gjson.Result{}, &MissingFieldError{Path: path}
	}

	return result, nil
}

// Field checks the value at path deep equals expected. The expected value is
// compared in its JSON form, so an int matches a JSON number and a struct
// matches the object it marshals to.
func (r *Response) Field(path string, expected any) error {
	result := gjson.GetBytes(r.Body, path)
	if !result.Exists() {
		return &MissingFieldError{Path: path}
	}

	want, err := normalize(expected)
	if err != nil {
		return fmt.Errorf("normalizing expected value for %q: %w", path, err)
	}

	got := result.Value()

	if !cmp.Equal(want, got) {
		return &FieldMismatchError{
			Path:     path,
			Expected: want,
			Actual:   got,
			Diff:     cmp.Diff(want, got),
		}
	}

	return nil
}

// Fields checks every path in expected, relative to prefix, and reports all
// failures together.
func (r *Response) Fields(prefix string, expected map[string]any) error {
	keys := make([]string, 0, len(expected))
	for key := range expected {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	var errs []error

	for _, key := range keys {
		if err := r.Field(joinPath(prefix, key), expected[key]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Decode unmarshals the body into the given value.
func (r *Response) Decode(into any) error {
	if err := json.Unmarshal(r.Body, into); err != nil {
		return fmt.Errorf("%s %s: decoding response body: %w", r.Method, r.Path, err)
	}

	return nil
}

// normalize maps a Go value onto what encoding/json produces when decoding
// into an interface, the same shapes gjson returns.
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func joinPath(prefix, path string) string {
	if prefix == "" {
		return path
	}

	return strings.TrimSuffix(prefix, ".") + "." + path
}
