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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"BOOKER_BASE_URL",
		"BOOKER_USERNAME",
		"BOOKER_PASSWORD",
		"REQUEST_TIMEOUT",
		"TEST_TIMEOUT",
		"SKIP_INTEGRATION",
		"LOG_REQUESTS",
		"LOG_RESPONSES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadTestConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := LoadTestConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, config.BaseURL)
	require.Equal(t, DefaultUsername, config.Username)
	require.Equal(t, DefaultPassword, config.Password)
	require.Equal(t, 30*time.Second, config.RequestTimeout)
	require.Equal(t, 5*time.Minute, config.TestTimeout)
	require.False(t, config.SkipIntegration)
	require.False(t, config.LogRequests)
	require.False(t, config.LogResponses)
}

func TestLoadTestConfigOverrides(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("BOOKER_BASE_URL", "http://localhost:3001")
	t.Setenv("BOOKER_USERNAME", "root")
	t.Setenv("BOOKER_PASSWORD", "hunter2")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("TEST_TIMEOUT", "1m")
	t.Setenv("SKIP_INTEGRATION", "true")
	t.Setenv("LOG_REQUESTS", "1")
	t.Setenv("LOG_RESPONSES", "yes-please")

	config, err := LoadTestConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3001", config.BaseURL)
	require.Equal(t, TokenCreds{Username: "root", Password: "hunter2"}, TestCredentials(config))
	require.Equal(t, 5*time.Second, config.RequestTimeout)
	require.Equal(t, time.Minute, config.TestTimeout)
	require.True(t, config.SkipIntegration)
	require.True(t, config.LogRequests)
	// Unparsable booleans fall back to the default.
	require.False(t, config.LogResponses)
}

func TestLoadTestConfigBadDurationFallsBack(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("REQUEST_TIMEOUT", "soon")

	config, err := LoadTestConfig()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, config.RequestTimeout)
}

func TestLoadTestConfigInvalid(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("REQUEST_TIMEOUT", "-1s")

	_, err := LoadTestConfig()
	require.ErrorIs(t, err, ErrInvalidTimeout)
}

func TestValidateBaseURL(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []string{"ftp://example.com", "restful-booker.herokuapp.com", "http://", "://"} {
		config := &TestConfig{
			BaseURL:        baseURL,
			RequestTimeout: time.Second,
			TestTimeout:    time.Second,
		}

		require.ErrorIs(t, config.Validate(), ErrInvalidBaseURL, baseURL)
	}
}
