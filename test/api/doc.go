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

// Package api provides end-to-end test utilities for the Restful Booker API.
//
// # Separate Client Implementation
//
// The package carries its own small HTTP client (APIClient) rather than a
// generated one. Every request and response is visible to the tests, which
// lets a scenario assert on exact status codes and on individual JSON fields
// addressed by dotted paths (see Response).
//
// # Scenario Ordering
//
// The booking lifecycle shares a single server assigned booking ID between
// steps. Lifecycle records which steps have completed and refuses to run a
// step whose dependencies have not, so ordering is expressed as explicit
// edges rather than by the order in which specs happen to be declared:
//
//	create -> read, update, partial-update, list
//	update -> partial-update
//	create, read, update, partial-update -> delete
//	delete -> confirm-deleted, double-delete
//
// The invalid ID read has no dependencies and may run at any point.
//
// # Hermetic Runs
//
// The pkg/stub package implements the same contract in memory. Point
// BOOKER_BASE_URL at a running cmd/booker-stub to run the suites offline.
package api
