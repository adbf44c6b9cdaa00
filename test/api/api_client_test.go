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

//nolint:testpackage // internal helpers are exercised directly
package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unikorn-cloud/booker/pkg/stub"
	"github.com/unikorn-cloud/booker/test/api/mock"
)

func testConfig(baseURL string) *TestConfig {
	return &TestConfig{
		BaseURL:        baseURL,
		Username:       DefaultUsername,
		Password:       DefaultPassword,
		RequestTimeout: 5 * time.Second,
		TestTimeout:    time.Minute,
		LogRequests:    true,
		LogResponses:   true,
	}
}

// newStubClient starts the in-memory service and returns a client for it.
func newStubClient(t *testing.T, options ...Option) (*APIClient, *stub.Server) {
	t.Helper()

	server := stub.New(stub.NewOptions(), testr.New(t))

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	options = append([]Option{WithLogger(testr.New(t))}, options...)

	return NewAPIClientWithConfig(testConfig(httpServer.URL), options...), server
}

func TestPing(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t)

	resp, err := client.Ping(t.Context())
	require.NoError(t, err)
	require.NoError(t, resp.Status(http.StatusCreated))
}

func TestAcquireToken(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t)

	first, err := client.AcquireToken(t.Context(), TokenCreds{Username: DefaultUsername, Password: DefaultPassword})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Nothing is cached, each call is a new token.
	second, err := client.AcquireToken(t.Context(), TokenCreds{Username: DefaultUsername, Password: DefaultPassword})
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestAcquireTokenBadCredentials(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t)

	_, err := client.AcquireToken(t.Context(), TokenCreds{Username: DefaultUsername, Password: "wrong"})
	require.ErrorIs(t, err, ErrAuthFailure)
	require.Contains(t, err.Error(), "Bad credentials")

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "token", missing.Path)
}

func TestAcquireTokenUnexpectedStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewAPIClientWithConfig(testConfig(server.URL), WithLogger(testr.New(t)))

	_, err := client.AcquireToken(t.Context(), TokenCreds{})
	require.ErrorIs(t, err, ErrAuthFailure)

	var statusErr *UnexpectedStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, "/auth", statusErr.Path)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Actual)
}

func TestAcquireTokenEmptyToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":""}`))
	}))
	t.Cleanup(server.Close)

	client := NewAPIClientWithConfig(testConfig(server.URL))

	_, err := client.AcquireToken(t.Context(), TokenCreds{})
	require.ErrorIs(t, err, ErrAuthFailure)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()

		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client := NewAPIClientWithConfig(testConfig(server.URL + "/"))

	_, err := client.UpdateBooking(t.Context(), 7, alice(), "abc123")
	require.NoError(t, err)

	header := <-headers
	require.Equal(t, "application/json", header.Get("Content-Type"))
	require.Equal(t, "application/json", header.Get("Accept"))
	require.Equal(t, "token=abc123", header.Get("Cookie"))
	require.Regexp(t, `^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`, header.Get("Traceparent"))

	// Unauthenticated calls carry no cookie.
	_, err = client.GetBooking(t.Context(), 7)
	require.NoError(t, err)

	header = <-headers
	require.Empty(t, header.Get("Cookie"))
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)
	doer := mock.NewMockHTTPDoer(c)

	errRefused := errors.New("connection refused")

	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, req.Method)
		require.Equal(t, "/booking/7", req.URL.Path)

		return nil, errRefused
	})

	client := NewAPIClientWithConfig(testConfig("http://booker.invalid"), WithHTTPDoer(doer), WithLogger(testr.New(t)))

	_, err := client.GetBooking(t.Context(), 7)
	require.ErrorIs(t, err, ErrTransport)
	require.ErrorIs(t, err, errRefused)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, "/booking/7", transportErr.Path)

	entries := client.Exchanges().Entries()
	require.Len(t, entries, 1)
	require.ErrorIs(t, entries[0].Err, errRefused)
}

func TestRequestTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	config := testConfig(server.URL)
	config.RequestTimeout = 50 * time.Millisecond

	client := NewAPIClientWithConfig(config)

	_, err := client.GetBooking(t.Context(), 7)
	require.ErrorIs(t, err, ErrTransport)
}

func TestListBookingIDs(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t)

	created, err := client.CreateBooking(t.Context(), alice())
	require.NoError(t, err)
	require.NoError(t, created.Status(http.StatusOK))

	other := alice()
	other.Firstname = "Bob"

	_, err = client.CreateBooking(t.Context(), other)
	require.NoError(t, err)

	ids, err := client.ListBookingIDs(t.Context(), BookingFilter{Firstname: "Alice", Lastname: "Smith"})
	require.NoError(t, err)
	require.Equal(t, []int{1}, ids)

	ids, err = client.ListBookingIDs(t.Context(), BookingFilter{})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, ids)
}

func TestListBookingsEndpoint(t *testing.T) {
	t.Parallel()

	endpoints := NewEndpoints()

	require.Equal(t, "/booking", endpoints.ListBookings(BookingFilter{}))
	require.Equal(t, "/booking?checkin=2024-01-10&firstname=Alice", endpoints.ListBookings(BookingFilter{Firstname: "Alice", Checkin: "2024-01-10"}))
	require.Equal(t, "/booking/-42", endpoints.GetBooking(-42))
}

func TestExchangeLogDump(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t)

	_, err := client.CreateBooking(t.Context(), alice())
	require.NoError(t, err)

	_, err = client.GetBooking(t.Context(), 99)
	require.NoError(t, err)

	var out bytes.Buffer

	client.Exchanges().Dump(&out)

	dump := out.String()
	require.Contains(t, dump, "[POST /booking] status=200")
	require.Contains(t, dump, `request body: {"firstname":"Alice"`)
	require.Contains(t, dump, "[GET /booking/99] status=404")
	require.Contains(t, dump, "response body: Not Found")
	require.Equal(t, 2, strings.Count(dump, "traceID="))

	client.Exchanges().Reset()
	require.Empty(t, client.Exchanges().Entries())
}
