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
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public Restful Booker deployment.
	DefaultBaseURL = "https://restful-booker.herokuapp.com"

	// DefaultUsername and DefaultPassword are the documented admin credentials.
	DefaultUsername = "admin"
	DefaultPassword = "password123"
)

var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

type TestConfig struct {
	BaseURL         string
	Username        string
	Password        string
	RequestTimeout  time.Duration
	TestTimeout     time.Duration
	SkipIntegration bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Every value has a default, so an empty environment targets the public service.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:         getStringWithDefault("BOOKER_BASE_URL", DefaultBaseURL),
		Username:        getStringWithDefault("BOOKER_USERNAME", DefaultUsername),
		Password:        getStringWithDefault("BOOKER_PASSWORD", DefaultPassword),
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:     getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration is usable.
func (c *TestConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidBaseURL, c.BaseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s: scheme must be http or https", ErrInvalidBaseURL, c.BaseURL)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: %s: missing host", ErrInvalidBaseURL, c.BaseURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout %s must be positive", ErrInvalidTimeout, c.RequestTimeout)
	}

	if c.TestTimeout <= 0 {
		return fmt.Errorf("%w: test timeout %s must be positive", ErrInvalidTimeout, c.TestTimeout)
	}

	return nil
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env", // From test/api/suites directory
		"../.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
