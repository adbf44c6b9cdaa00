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

package stub

import (
	"errors"
	"slices"
	"sync"
)

var (
	ErrNotFound = errors.New("booking not found")
)

// BookingDates is the stay of a booking.
type BookingDates struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

// Booking is a stored booking.
type Booking struct {
	Firstname       string       `json:"firstname"`
	Lastname        string       `json:"lastname"`
	Totalprice      int          `json:"totalprice"`
	Depositpaid     bool         `json:"depositpaid"`
	Bookingdates    BookingDates `json:"bookingdates"`
	Additionalneeds string       `json:"additionalneeds,omitempty"`
}

// Filter narrows List. Dates are compared as YYYY-MM-DD strings, check-in
// matches on or after and check-out on or before the given date.
type Filter struct {
	Firstname string
	Lastname  string
	Checkin   string
	Checkout  string
}

func (f Filter) matches(b *Booking) bool {
	if f.Firstname != "" && f.Firstname != b.Firstname {
		return false
	}

	if f.Lastname != "" && f.Lastname != b.Lastname {
		return false
	}

	if f.Checkin != "" && b.Bookingdates.Checkin < f.Checkin {
		return false
	}

	if f.Checkout != "" && b.Bookingdates.Checkout > f.Checkout {
		return false
	}

	return true
}

// Store keeps bookings in memory. IDs are assigned sequentially from 1 and
// never reused.
type Store struct {
	lock     sync.RWMutex
	nextID   int
	bookings map[int]Booking
}

func NewStore() *Store {
	return &Store{
		nextID:   1,
		bookings: map[int]Booking{},
	}
}

// Create stores the booking and returns its ID.
func (s *Store) Create(booking Booking) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++

	s.bookings[id] = booking

	return id
}

func (s *Store) Get(id int) (Booking, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return Booking{}, ErrNotFound
	}

	return booking, nil
}

// Update applies mutate to a copy of the booking and stores the result if
// mutate succeeds.
func (s *Store) Update(id int, mutate func(*Booking) error) (Booking, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return Booking{}, ErrNotFound
	}

	if err := mutate(&booking); err != nil {
		return Booking{}, err
	}

	s.bookings[id] = booking

	return booking, nil
}

func (s *Store) Delete(id int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}

	delete(s.bookings, id)

	return nil
}

// List returns the IDs of matching bookings in ascending order.
func (s *Store) List(filter Filter) []int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := make([]int, 0, len(s.bookings))

	for id, booking := range s.bookings {
		if filter.matches(&booking) {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return ids
}
