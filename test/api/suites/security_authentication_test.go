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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booker/test/api"
)

var _ = Describe("Security and Authentication", Label("auth"), func() {
	Context("When requesting a session token", func() {
		Describe("Given valid credentials", func() {
			It("should issue a token", func(ctx SpecContext) {
				token, err := client.AcquireToken(ctx, api.TestCredentials(config))
				Expect(err).NotTo(HaveOccurred())
				Expect(token).NotTo(BeEmpty())
			})
		})
	})

	Context("When modifying a booking", func() {
		Describe("Given a fresh token for every request", func() {
			It("should accept each token", func(ctx SpecContext) {
				_, bookingID := api.CreateBookingWithCleanup(client, ctx, config, api.MakeBooking())

				for range 2 {
					token, err := client.AcquireToken(ctx, api.TestCredentials(config))
					Expect(err).NotTo(HaveOccurred())

					booking := api.MakeBooking()

					resp, err := client.UpdateBooking(ctx, bookingID, booking, token)
					Expect(err).NotTo(HaveOccurred())
					Expect(resp.Status(http.StatusOK)).To(Succeed())

					api.ExpectBooking(resp, "", booking)
				}
			})
		})
	})
})
