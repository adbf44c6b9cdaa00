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
	"net/url"
	"strconv"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) CreateToken() string {
	return "/auth"
}

// Booking endpoints.
func (e *Endpoints) ListBookings(filter BookingFilter) string {
	query := url.Values{}

	for key, value := range map[string]string{
		"firstname": filter.Firstname,
		"lastname":  filter.Lastname,
		"checkin":   filter.Checkin,
		"checkout":  filter.Checkout,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	if len(query) == 0 {
		return "/booking"
	}

	// Encode sorts by key.
	return "/booking?" + query.Encode()
}

func (e *Endpoints) CreateBooking() string {
	return "/booking"
}

func (e *Endpoints) GetBooking(bookingID int) string {
	return "/booking/" + strconv.Itoa(bookingID)
}

func (e *Endpoints) UpdateBooking(bookingID int) string {
	return "/booking/" + strconv.Itoa(bookingID)
}

func (e *Endpoints) PartialUpdateBooking(bookingID int) string {
	return "/booking/" + strconv.Itoa(bookingID)
}

func (e *Endpoints) DeleteBooking(bookingID int) string {
	return "/booking/" + strconv.Itoa(bookingID)
}

// Health endpoints.
func (e *Endpoints) HealthCheck() string {
	return "/ping"
}
