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

// DateFormat is the layout the service uses for booking dates.
const DateFormat = "2006-01-02"

// BookingDates is the stay of a booking, both dates in DateFormat.
type BookingDates struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

// BookingData is a complete booking as accepted by POST and PUT and returned
// by GET.
type BookingData struct {
	Firstname       string       `json:"firstname"`
	Lastname        string       `json:"lastname"`
	Totalprice      int          `json:"totalprice"`
	Depositpaid     bool         `json:"depositpaid"`
	Bookingdates    BookingDates `json:"bookingdates"`
	Additionalneeds string       `json:"additionalneeds"`
}

// PartialBookingData is the body of a PATCH, only set fields are sent.
type PartialBookingData struct {
	Firstname  *string `json:"firstname,omitempty"`
	Totalprice *int    `json:"totalprice,omitempty"`
}

// Apply returns the booking that results from patching b with p.
func (b BookingData) Apply(p PartialBookingData) BookingData {
	if p.Firstname != nil {
		b.Firstname = *p.Firstname
	}

	if p.Totalprice != nil {
		b.Totalprice = *p.Totalprice
	}

	return b
}

// Fields flattens the booking into dotted JSON paths and the values expected
// at them.
func (b BookingData) Fields() map[string]any {
	return map[string]any{
		"firstname":             b.Firstname,
		"lastname":              b.Lastname,
		"totalprice":            b.Totalprice,
		"depositpaid":           b.Depositpaid,
		"bookingdates.checkin":  b.Bookingdates.Checkin,
		"bookingdates.checkout": b.Bookingdates.Checkout,
		"additionalneeds":       b.Additionalneeds,
	}
}

// TokenCreds are posted to /auth in exchange for a session token.
type TokenCreds struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by /auth. The service answers bad credentials with
// a 200 and a reason instead of a token.
type TokenResponse struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// CreateBookingResponse is returned by POST /booking.
type CreateBookingResponse struct {
	Bookingid int         `json:"bookingid"`
	Booking   BookingData `json:"booking"`
}

// BookingID is a single element of the GET /booking list.
type BookingID struct {
	Bookingid int `json:"bookingid"`
}

// BookingFilter narrows GET /booking, empty fields are not sent.
type BookingFilter struct {
	Firstname string
	Lastname  string
	Checkin   string
	Checkout  string
}
