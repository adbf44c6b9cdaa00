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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// RunStep runs a lifecycle step as the body of a spec. A step whose
// dependencies did not complete is skipped rather than failed.
func RunStep(ctx context.Context, step func(context.Context) error) {
	GinkgoHelper()

	err := step(ctx)
	if errors.Is(err, ErrDependencyNotMet) {
		Skip(err.Error())
	}

	Expect(err).NotTo(HaveOccurred())
}

// DumpExchangesOnFailure writes the client's recorded exchanges to the
// GinkgoWriter when the current spec has failed, then clears them.
func DumpExchangesOnFailure(client *APIClient) {
	if CurrentSpecReport().Failed() {
		GinkgoWriter.Printf("Recorded exchanges for %q:\n", CurrentSpecReport().FullText())
		client.Exchanges().Dump(GinkgoWriter)
	}

	client.Exchanges().Reset()
}

// DeleteBookingOnCleanup schedules removal of the lifecycle's booking in case
// the lifecycle stops before its own delete step.
func DeleteBookingOnCleanup(client *APIClient, lifecycle *Lifecycle, creds TokenCreds) {
	DeferCleanup(func(ctx SpecContext) {
		bookingID, err := lifecycle.BookingID()
		if err != nil || lifecycle.Completed(StepDelete) {
			return
		}

		deleteBooking(ctx, client, creds, bookingID)
	})
}

// CreateBookingWithCleanup creates a booking and schedules automatic cleanup.
func CreateBookingWithCleanup(client *APIClient, ctx context.Context, config *TestConfig, booking BookingData) (*Response, int) {
	GinkgoHelper()

	resp, err := client.CreateBooking(ctx, booking)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.Status(http.StatusOK)).To(Succeed())

	id, err := resp.Extract("bookingid")
	Expect(err).NotTo(HaveOccurred())

	bookingID := int(id.Int())

	GinkgoWriter.Printf("Created booking with ID: %d\n", bookingID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func(ctx SpecContext) {
		deleteBooking(ctx, client, TestCredentials(config), bookingID)
	})

	return resp, bookingID
}

// ExpectBooking verifies the booking is present in the response under prefix.
func ExpectBooking(resp *Response, prefix string, expected BookingData) {
	GinkgoHelper()

	Expect(resp.Fields(prefix, expected.Fields())).To(Succeed())
}

func deleteBooking(ctx context.Context, client *APIClient, creds TokenCreds, bookingID int) {
	GinkgoWriter.Printf("Cleaning up booking: %d\n", bookingID)

	token, err := client.AcquireToken(ctx, creds)
	if err != nil {
		GinkgoWriter.Printf("Warning: Failed to acquire token to delete booking %d: %v\n", bookingID, err)
		return
	}

	resp, err := client.DeleteBooking(ctx, bookingID, token)
	if err != nil {
		GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", bookingID, err)
		return
	}

	if err := resp.Status(http.StatusCreated); err != nil {
		GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", bookingID, err)
		return
	}

	GinkgoWriter.Printf("Successfully deleted booking: %d\n", bookingID)
}
