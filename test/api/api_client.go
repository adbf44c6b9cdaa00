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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

//go:generate mockgen -source=api_client.go -destination=mock/interfaces.go -package=mock

// HTTPDoer is the subset of *http.Client the API client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type APIClient struct {
	baseURL   string
	client    HTTPDoer
	config    *TestConfig
	endpoints *Endpoints
	logger    logr.Logger
	exchanges *ExchangeLog
}

// Option customizes an APIClient.
type Option func(*APIClient)

// WithLogger sets the logger requests and errors are reported to.
func WithLogger(logger logr.Logger) Option {
	return func(c *APIClient) {
		c.logger = logger
	}
}

// WithHTTPDoer replaces the underlying HTTP client.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *APIClient) {
		c.client = doer
	}
}

// NewAPIClient loads the test configuration and creates a client for it,
// optionally overriding the base URL.
func NewAPIClient(baseURL string, options ...Option) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return newAPIClientWithConfig(config, config.BaseURL, options...), nil
}

func NewAPIClientWithConfig(config *TestConfig, options ...Option) *APIClient {
	return newAPIClientWithConfig(config, config.BaseURL, options...)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string, options ...Option) *APIClient {
	c := &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
		logger:    logr.Discard(),
		exchanges: NewExchangeLog(),
	}

	for _, o := range options {
		o(c)
	}

	return c
}

// Exchanges returns the log of requests made by this client.
func (c *APIClient) Exchanges() *ExchangeLog {
	return c.exchanges
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	id := make([]byte, 16)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	id := make([]byte, 8)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest performs a single request and reads the whole response. A
// non-nil error means no response was received; status checks are left to
// the caller via Response.Status.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any, token string) (*Response, error) {
	var (
		reader      io.Reader
		requestBody []byte
	)

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		requestBody = data
		reader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	exchange := Exchange{
		Method:      method,
		Path:        path,
		RequestBody: requestBody,
		TraceID:     traceID,
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	exchange.Duration = time.Since(start)

	if err != nil {
		exchange.Err = err
		c.exchanges.Record(exchange)
		c.logger.Error(err, "http request failed", "method", method, "path", path, "duration", exchange.Duration, "traceID", traceID)

		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)

	exchange.StatusCode = resp.StatusCode
	exchange.ResponseBody = respBody

	if err != nil {
		exchange.Err = err
		c.exchanges.Record(exchange)
		c.logger.Error(err, "reading response body", "method", method, "path", path, "status", resp.StatusCode, "traceID", traceID)

		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.exchanges.Record(exchange)

	if c.config.LogRequests {
		c.logger.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", exchange.Duration, "traceID", traceID)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.logger.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	return &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    traceID,
	}, nil
}

// Ping checks the service is up, it answers 201.
func (c *APIClient) Ping(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.HealthCheck(), nil, "")
}

// AcquireToken exchanges credentials for a session token. Tokens are not
// cached, every call issues a new one.
func (c *APIClient) AcquireToken(ctx context.Context, creds TokenCreds) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreateToken(), creds, "")
	if err != nil {
		return "", fmt.Errorf("acquiring token: %w", err)
	}

	if err := resp.Status(http.StatusOK); err != nil {
		return "", &AuthFailure{Err: err}
	}

	token, err := resp.Extract("token")
	if err != nil {
		if reason, reasonErr := resp.Extract("reason"); reasonErr == nil {
			return "", &AuthFailure{Err: fmt.Errorf("%w (reason: %s)", err, reason.String())}
		}

		return "", &AuthFailure{Err: err}
	}

	if token.String() == "" {
		return "", &AuthFailure{Err: &MissingFieldError{Path: "token"}}
	}

	return token.String(), nil
}

// CreateBooking posts a new booking.
func (c *APIClient) CreateBooking(ctx context.Context, booking BookingData) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.CreateBooking(), booking, "")
}

// GetBooking retrieves a booking by ID.
func (c *APIClient) GetBooking(ctx context.Context, bookingID int) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.GetBooking(bookingID), nil, "")
}

// ListBookings lists booking IDs matching the filter.
func (c *APIClient) ListBookings(ctx context.Context, filter BookingFilter) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.ListBookings(filter), nil, "")
}

// ListBookingIDs lists booking IDs matching the filter and decodes them.
func (c *APIClient) ListBookingIDs(ctx context.Context, filter BookingFilter) ([]int, error) {
	resp, err := c.ListBookings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	if err := resp.Status(http.StatusOK); err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	var bookings []BookingID
	if err := resp.Decode(&bookings); err != nil {
		return nil, err
	}

	ids := make([]int, len(bookings))
	for i := range bookings {
		ids[i] = bookings[i].Bookingid
	}

	return ids, nil
}

// UpdateBooking replaces a booking, the token is sent as a cookie.
func (c *APIClient) UpdateBooking(ctx context.Context, bookingID int, booking BookingData, token string) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.UpdateBooking(bookingID), booking, token)
}

// PartialUpdateBooking patches a booking, the token is sent as a cookie.
func (c *APIClient) PartialUpdateBooking(ctx context.Context, bookingID int, patch PartialBookingData, token string) (*Response, error) {
	return c.doRequest(ctx, http.MethodPatch, c.endpoints.PartialUpdateBooking(bookingID), patch, token)
}

// DeleteBooking deletes a booking, the token is sent as a cookie.
func (c *APIClient) DeleteBooking(ctx context.Context, bookingID int, token string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.DeleteBooking(bookingID), nil, token)
}
