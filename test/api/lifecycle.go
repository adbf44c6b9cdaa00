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
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
)

// Step names a single scenario of the booking lifecycle.
type Step string

const (
	StepCreate         Step = "create"
	StepRead           Step = "read"
	StepList           Step = "list"
	StepUpdate         Step = "update"
	StepPartialUpdate  Step = "partial-update"
	StepDelete         Step = "delete"
	StepConfirmDeleted Step = "confirm-deleted"
	StepDeleteAgain    Step = "double-delete"
	StepReadInvalid    Step = "invalid-id-read"
)

// stepDependencies are the happens-before edges between steps. A step runs
// only once every step it lists has completed successfully.
//
//nolint:gochecknoglobals
var stepDependencies = map[Step][]Step{
	StepRead:           {StepCreate},
	StepList:           {StepCreate},
	StepUpdate:         {StepCreate},
	StepPartialUpdate:  {StepCreate, StepUpdate},
	StepDelete:         {StepCreate, StepRead, StepUpdate, StepPartialUpdate},
	StepConfirmDeleted: {StepDelete},
	StepDeleteAgain:    {StepDelete},
}

// Dependencies returns the steps that must complete before step.
func Dependencies(step Step) []Step {
	return append([]Step(nil), stepDependencies[step]...)
}

// BookingState is where the shared booking is in its lifecycle.
type BookingState int

const (
	StateUnset BookingState = iota
	StateCreated
	StateStillPresent
	StateUpdated
	StatePatched
	StateDeleted
	StateConfirmedAbsent
)

func (s BookingState) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateCreated:
		return "created"
	case StateStillPresent:
		return "still-present"
	case StateUpdated:
		return "updated"
	case StatePatched:
		return "patched"
	case StateDeleted:
		return "deleted"
	case StateConfirmedAbsent:
		return "confirmed-absent"
	}

	return fmt.Sprintf("BookingState(%d)", int(s))
}

// bookingIDCell holds the server assigned ID, it may be written only once.
type bookingIDCell struct {
	lock sync.Mutex
	id   int
	set  bool
}

func (c *bookingIDCell) Set(id int) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.set {
		return fmt.Errorf("%w: have %d, got %d", ErrBookingIDAlreadySet, c.id, id)
	}

	c.id = id
	c.set = true

	return nil
}

func (c *bookingIDCell) Get() (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.set {
		return 0, ErrBookingIDUnset
	}

	return c.id, nil
}

// Lifecycle drives a single booking through create, read, update, patch and
// delete. The payloads are fixed at construction, the booking ID is written
// by Create and read by every later step.
type Lifecycle struct {
	client *APIClient

	newBooking           BookingData
	updatedBooking       BookingData
	partialUpdateBooking PartialBookingData
	tokenCreds           TokenCreds
	invalidBookingID     int

	bookingID bookingIDCell

	lock      sync.Mutex
	completed map[Step]bool
	state     BookingState
}

// LifecycleOption overrides one of the generated payloads.
type LifecycleOption func(*Lifecycle)

// WithNewBooking sets the payload posted by Create.
func WithNewBooking(booking BookingData) LifecycleOption {
	return func(l *Lifecycle) {
		l.newBooking = booking
	}
}

// WithUpdatedBooking sets the payload put by Update.
func WithUpdatedBooking(booking BookingData) LifecycleOption {
	return func(l *Lifecycle) {
		l.updatedBooking = booking
	}
}

// WithPartialUpdateBooking sets the payload patched by PartialUpdate.
func WithPartialUpdateBooking(patch PartialBookingData) LifecycleOption {
	return func(l *Lifecycle) {
		l.partialUpdateBooking = patch
	}
}

// WithInvalidBookingID sets the ID read by ReadInvalid.
func WithInvalidBookingID(bookingID int) LifecycleOption {
	return func(l *Lifecycle) {
		l.invalidBookingID = bookingID
	}
}

// NewLifecycle generates fresh payloads and returns a lifecycle with nothing
// completed.
func NewLifecycle(client *APIClient, creds TokenCreds, options ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		client:               client,
		newBooking:           MakeBooking(),
		updatedBooking:       MakeBooking(),
		partialUpdateBooking: MakePartialBooking(),
		tokenCreds:           creds,
		invalidBookingID:     RandomInvalidBookingID(),
		completed:            map[Step]bool{},
	}

	for _, o := range options {
		o(l)
	}

	return l
}

func (l *Lifecycle) NewBooking() BookingData {
	return l.newBooking
}

func (l *Lifecycle) UpdatedBooking() BookingData {
	return l.updatedBooking
}

func (l *Lifecycle) PartialUpdateBooking() PartialBookingData {
	return l.partialUpdateBooking
}

// PatchedBooking is the record expected after PartialUpdate.
func (l *Lifecycle) PatchedBooking() BookingData {
	return l.updatedBooking.Apply(l.partialUpdateBooking)
}

func (l *Lifecycle) InvalidBookingID() int {
	return l.invalidBookingID
}

// BookingID returns the ID assigned by Create.
func (l *Lifecycle) BookingID() (int, error) {
	return l.bookingID.Get()
}

func (l *Lifecycle) State() BookingState {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.state
}

// Completed reports whether step has run successfully.
func (l *Lifecycle) Completed(step Step) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.completed[step]
}

// require checks the dependencies of step have completed.
func (l *Lifecycle) require(step Step) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	var missing []string

	for _, dependency := range stepDependencies[step] {
		if !l.completed[dependency] {
			missing = append(missing, string(dependency))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s requires %s", ErrDependencyNotMet, step, strings.Join(missing, ", "))
	}

	return nil
}

// complete marks step as done and, if it moves the booking on, records the
// new state.
func (l *Lifecycle) complete(step Step, state BookingState) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.completed[step] = true

	if state > l.state {
		l.state = state
	}
}

// begin checks dependencies and returns the booking ID for steps that need it.
func (l *Lifecycle) begin(step Step) (int, error) {
	if err := l.require(step); err != nil {
		return 0, err
	}

	return l.bookingID.Get()
}

// Create posts the new booking and records the assigned ID. The response must
// carry a positive bookingid and echo the payload under booking.
func (l *Lifecycle) Create(ctx context.Context) error {
	if err := l.require(StepCreate); err != nil {
		return err
	}

	if id, err := l.bookingID.Get(); err == nil {
		return fmt.Errorf("%w: booking %d", ErrBookingIDAlreadySet, id)
	}

	resp, err := l.client.CreateBooking(ctx, l.newBooking)
	if err != nil {
		return fmt.Errorf("creating booking: %w", err)
	}

	if err := resp.Status(http.StatusOK); err != nil {
		return err
	}

	id, err := resp.Extract("bookingid")
	if err != nil {
		return err
	}

	if id.Int() <= 0 {
		return &FieldMismatchError{Path: "bookingid", Expected: "positive integer", Actual: id.Value()}
	}

	if err := resp.Fields("booking", l.newBooking.Fields()); err != nil {
		return err
	}

	if err := l.bookingID.Set(int(id.Int())); err != nil {
		return err
	}

	l.complete(StepCreate, StateCreated)

	return nil
}

// Read checks the booking reads back exactly as created.
func (l *Lifecycle) Read(ctx context.Context) error {
	id, err := l.begin(StepRead)
	if err != nil {
		return err
	}

	resp, err := l.client.GetBooking(ctx, id)
	if err != nil {
		return fmt.Errorf("reading booking %d: %w", id, err)
	}

	if err := resp.Status(http.StatusOK); err != nil {
		return err
	}

	if err := resp.Fields("", l.newBooking.Fields()); err != nil {
		return err
	}

	l.complete(StepRead, StateStillPresent)

	return nil
}

// List checks the booking is found when filtering by the guest's name.
func (l *Lifecycle) List(ctx context.Context) error {
	id, err := l.begin(StepList)
	if err != nil {
		return err
	}

	ids, err := l.client.ListBookingIDs(ctx, BookingFilter{
		Firstname: l.newBooking.Firstname,
		Lastname:  l.newBooking.Lastname,
	})
	if err != nil {
		return err
	}

	if !slices.Contains(ids, id) {
		return &FieldMismatchError{Path: "[].bookingid", Expected: id, Actual: ids}
	}

	l.complete(StepList, StateUnset)

	return nil
}

// Update replaces every field of the booking.
func (l *Lifecycle) Update(ctx context.Context) error {
	id, err := l.begin(StepUpdate)
	if err != nil {
		return err
	}

	token, err := l.client.AcquireToken(ctx, l.tokenCreds)
	if err != nil {
		return fmt.Errorf("updating booking %d: %w", id, err)
	}

	resp, err := l.client.UpdateBooking(ctx, id, l.updatedBooking, token)
	if err != nil {
		return fmt.Errorf("updating booking %d: %w", id, err)
	}

	if err := resp.Status(http.StatusOK); err != nil {
		return err
	}

	if err := resp.Fields("", l.updatedBooking.Fields()); err != nil {
		return err
	}

	l.complete(StepUpdate, StateUpdated)

	return nil
}

// PartialUpdate patches the first name and price, every other field must keep
// its updated value.
func (l *Lifecycle) PartialUpdate(ctx context.Context) error {
	id, err := l.begin(StepPartialUpdate)
	if err != nil {
		return err
	}

	token, err := l.client.AcquireToken(ctx, l.tokenCreds)
	if err != nil {
		return fmt.Errorf("patching booking %d: %w", id, err)
	}

	resp, err := l.client.PartialUpdateBooking(ctx, id, l.partialUpdateBooking, token)
	if err != nil {
		return fmt.Errorf("patching booking %d: %w", id, err)
	}

	if err := resp.Status(http.StatusOK); err != nil {
		return err
	}

	if err := resp.Fields("", l.PatchedBooking().Fields()); err != nil {
		return err
	}

	l.complete(StepPartialUpdate, StatePatched)

	return nil
}

// Delete removes the booking, the service answers 201.
func (l *Lifecycle) Delete(ctx context.Context) error {
	id, err := l.begin(StepDelete)
	if err != nil {
		return err
	}

	if err := l.deleteBooking(ctx, id, http.StatusCreated); err != nil {
		return err
	}

	l.complete(StepDelete, StateDeleted)

	return nil
}

// ConfirmDeleted checks the deleted booking is no longer found.
func (l *Lifecycle) ConfirmDeleted(ctx context.Context) error {
	id, err := l.begin(StepConfirmDeleted)
	if err != nil {
		return err
	}

	resp, err := l.client.GetBooking(ctx, id)
	if err != nil {
		return fmt.Errorf("reading deleted booking %d: %w", id, err)
	}

	if err := resp.Status(http.StatusNotFound); err != nil {
		return err
	}

	l.complete(StepConfirmDeleted, StateConfirmedAbsent)

	return nil
}

// DeleteAgain deletes the already deleted booking, the service answers 405.
func (l *Lifecycle) DeleteAgain(ctx context.Context) error {
	id, err := l.begin(StepDeleteAgain)
	if err != nil {
		return err
	}

	if err := l.deleteBooking(ctx, id, http.StatusMethodNotAllowed); err != nil {
		return err
	}

	l.complete(StepDeleteAgain, StateUnset)

	return nil
}

// ReadInvalid reads a negative booking ID, which must not be found. It does not
// touch the shared booking.
func (l *Lifecycle) ReadInvalid(ctx context.Context) error {
	resp, err := l.client.GetBooking(ctx, l.invalidBookingID)
	if err != nil {
		return fmt.Errorf("reading booking %d: %w", l.invalidBookingID, err)
	}

	if err := resp.Status(http.StatusNotFound); err != nil {
		return err
	}

	l.complete(StepReadInvalid, StateUnset)

	return nil
}

func (l *Lifecycle) deleteBooking(ctx context.Context, id, expectedStatus int) error {
	token, err := l.client.AcquireToken(ctx, l.tokenCreds)
	if err != nil {
		return fmt.Errorf("deleting booking %d: %w", id, err)
	}

	resp, err := l.client.DeleteBooking(ctx, id, token)
	if err != nil {
		return fmt.Errorf("deleting booking %d: %w", id, err)
	}

	return resp.Status(expectedStatus)
}
