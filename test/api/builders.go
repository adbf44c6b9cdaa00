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
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"k8s.io/utils/ptr"
)

const (
	minTotalPrice = 1
	maxTotalPrice = 1000

	// Check-in lands within the next year and stays last up to two weeks.
	maxCheckinOffsetDays = 365
	maxStayDays          = 14
)

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	payload BookingData
}

// NewBookingPayload creates a builder seeded with realistic random values.
// Check-out never precedes check-in.
func NewBookingPayload() *BookingPayloadBuilder {
	faker := gofakeit.New(0)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	checkin := today.AddDate(0, 0, faker.Number(0, maxCheckinOffsetDays))
	checkout := checkin.AddDate(0, 0, faker.Number(1, maxStayDays))

	return &BookingPayloadBuilder{
		payload: BookingData{
			Firstname:   faker.FirstName(),
			Lastname:    faker.LastName(),
			Totalprice:  faker.Number(minTotalPrice, maxTotalPrice),
			Depositpaid: faker.Bool(),
			Bookingdates: BookingDates{
				Checkin:  checkin.Format(DateFormat),
				Checkout: checkout.Format(DateFormat),
			},
			Additionalneeds: faker.Dinner(),
		},
	}
}

// WithFirstname sets the guest's first name.
func (b *BookingPayloadBuilder) WithFirstname(firstname string) *BookingPayloadBuilder {
	b.payload.Firstname = firstname
	return b
}

// WithLastname sets the guest's last name.
func (b *BookingPayloadBuilder) WithLastname(lastname string) *BookingPayloadBuilder {
	b.payload.Lastname = lastname
	return b
}

// WithTotalprice sets the total price.
func (b *BookingPayloadBuilder) WithTotalprice(totalprice int) *BookingPayloadBuilder {
	b.payload.Totalprice = totalprice
	return b
}

// WithDepositpaid sets whether the deposit is paid.
func (b *BookingPayloadBuilder) WithDepositpaid(depositpaid bool) *BookingPayloadBuilder {
	b.payload.Depositpaid = depositpaid
	return b
}

// WithDates sets the stay. The caller is responsible for ordering.
func (b *BookingPayloadBuilder) WithDates(checkin, checkout time.Time) *BookingPayloadBuilder {
	b.payload.Bookingdates = BookingDates{
		Checkin:  checkin.Format(DateFormat),
		Checkout: checkout.Format(DateFormat),
	}

	return b
}

// WithAdditionalneeds sets the additional needs.
func (b *BookingPayloadBuilder) WithAdditionalneeds(needs string) *BookingPayloadBuilder {
	b.payload.Additionalneeds = needs
	return b
}

// Build returns the completed booking payload.
func (b *BookingPayloadBuilder) Build() BookingData {
	return b.payload
}

// PartialBookingPayloadBuilder builds PATCH payloads for testing.
type PartialBookingPayloadBuilder struct {
	payload PartialBookingData
}

// NewPartialBookingPayload creates a builder with a random first name and price.
func NewPartialBookingPayload() *PartialBookingPayloadBuilder {
	faker := gofakeit.New(0)

	return &PartialBookingPayloadBuilder{
		payload: PartialBookingData{
			Firstname:  ptr.To(faker.FirstName()),
			Totalprice: ptr.To(faker.Number(minTotalPrice, maxTotalPrice)),
		},
	}
}

// WithFirstname sets the patched first name.
func (b *PartialBookingPayloadBuilder) WithFirstname(firstname string) *PartialBookingPayloadBuilder {
	b.payload.Firstname = ptr.To(firstname)
	return b
}

// WithTotalprice sets the patched total price.
func (b *PartialBookingPayloadBuilder) WithTotalprice(totalprice int) *PartialBookingPayloadBuilder {
	b.payload.Totalprice = ptr.To(totalprice)
	return b
}

// Build returns the completed partial payload.
func (b *PartialBookingPayloadBuilder) Build() PartialBookingData {
	return b.payload
}

// MakeBooking returns a fresh random booking.
func MakeBooking() BookingData {
	return NewBookingPayload().Build()
}

// MakePartialBooking returns a fresh random partial booking.
func MakePartialBooking() PartialBookingData {
	return NewPartialBookingPayload().Build()
}

// TestCredentials returns the credentials used to acquire tokens.
func TestCredentials(config *TestConfig) TokenCreds {
	return TokenCreds{
		Username: config.Username,
		Password: config.Password,
	}
}

// RandomInvalidBookingID returns an ID the service can never have assigned.
func RandomInvalidBookingID() int {
	return gofakeit.Number(-100, -1)
}
