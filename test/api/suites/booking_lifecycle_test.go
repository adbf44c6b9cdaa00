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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booker/test/api"
)

// The lifecycle shares one booking between specs. Ordered keeps them
// sequential, ContinueOnFailure leaves skipping to the lifecycle's own
// dependency edges so an unrelated failure does not hide later results.
var _ = Describe("Booking Lifecycle", Ordered, ContinueOnFailure, Label("lifecycle"), func() {
	var lifecycle *api.Lifecycle

	BeforeAll(func() {
		lifecycle = api.NewLifecycle(client, api.TestCredentials(config))
		api.DeleteBookingOnCleanup(client, lifecycle, api.TestCredentials(config))
	})

	Context("When creating a new booking", func() {
		It("should assign an ID and echo the booking", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.Create)

			bookingID, err := lifecycle.BookingID()
			Expect(err).NotTo(HaveOccurred())
			Expect(bookingID).To(BeNumerically(">", 0))

			GinkgoWriter.Printf("Created booking with ID: %d\n", bookingID)
		})
	})

	Context("When retrieving the booking", func() {
		It("should return the booking as created", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.Read)
			Expect(lifecycle.State()).To(Equal(api.StateStillPresent))
		})

		It("should find the booking by guest name", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.List)
		})
	})

	Context("When updating the booking", func() {
		It("should replace every field", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.Update)
			Expect(lifecycle.State()).To(Equal(api.StateUpdated))
		})
	})

	Context("When partially updating the booking", func() {
		It("should change only the patched fields", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.PartialUpdate)
			Expect(lifecycle.State()).To(Equal(api.StatePatched))
		})
	})

	Context("When deleting the booking", func() {
		It("should successfully delete the booking", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.Delete)
			Expect(lifecycle.State()).To(Equal(api.StateDeleted))
		})

		It("should no longer return the booking", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.ConfirmDeleted)
			Expect(lifecycle.State()).To(Equal(api.StateConfirmedAbsent))
		})

		It("should reject a repeated delete", func(ctx SpecContext) {
			api.RunStep(ctx, lifecycle.DeleteAgain)
		})
	})
})
