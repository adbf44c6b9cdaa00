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

	"github.com/unikorn-cloud/booker/test/api"
)

var _ = Describe("Error Handling and Edge Cases", Label("negative"), func() {
	Context("When retrieving a booking that cannot exist", func() {
		Describe("Given a negative booking ID", func() {
			It("should return a not found error", func(ctx SpecContext) {
				lifecycle := api.NewLifecycle(client, api.TestCredentials(config))

				GinkgoWriter.Printf("Reading booking ID %d\n", lifecycle.InvalidBookingID())

				api.RunStep(ctx, lifecycle.ReadInvalid)
			})
		})
	})
})
