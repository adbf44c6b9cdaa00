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

// Package stub implements the Restful Booker API in memory so the end-to-end
// suites can run without the public deployment. Status codes and bodies
// follow the public service, including its quirks: bad credentials get a 200
// with a reason, deletes answer 201, and mutating an unknown booking answers
// 405.
package stub

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
)

// Server serves the booking API from a Store.
type Server struct {
	options *Options
	store   *Store
	logger  logr.Logger

	tokenLock sync.Mutex
	tokens    map[string]struct{}
}

func New(options *Options, logger logr.Logger) *Server {
	return &Server{
		options: options,
		store:   NewStore(),
		logger:  logger,
		tokens:  map[string]struct{}{},
	}
}

// Store exposes the backing store, tests use it to seed or inspect state.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.logRequests)

	router.Get("/ping", s.ping)
	router.Post("/auth", s.createToken)

	router.Get("/booking", s.listBookings)
	router.Post("/booking", s.createBooking)
	router.Get("/booking/{bookingID}", s.getBooking)

	router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Put("/booking/{bookingID}", s.updateBooking)
		r.Patch("/booking/{bookingID}", s.partialUpdateBooking)
		r.Delete("/booking/{bookingID}", s.deleteBooking)
	})

	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(writer, r)

		s.logger.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "status", writer.Status(), "duration", time.Since(start), "traceparent", r.Header.Get("Traceparent"))
	})
}

// requireAuth accepts either a token cookie issued by /auth or basic
// authentication with the configured credentials.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authorized(r) {
			next.ServeHTTP(w, r)
			return
		}

		writeText(w, http.StatusForbidden)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if cookie, err := r.Cookie("token"); err == nil {
		s.tokenLock.Lock()
		_, ok := s.tokens[cookie.Value]
		s.tokenLock.Unlock()

		if ok {
			return true
		}
	}

	if username, password, ok := r.BasicAuth(); ok {
		return s.validCredentials(username, password)
	}

	return false
}

func (s *Server) validCredentials(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.options.Username)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.options.Password)) == 1

	return usernameOK && passwordOK
}

func (s *Server) issueToken() string {
	raw := make([]byte, 8)
	_, _ = rand.Read(raw)

	token := hex.EncodeToString(raw)

	s.tokenLock.Lock()
	s.tokens[token] = struct{}{}
	s.tokenLock.Unlock()

	return token
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusCreated)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) createToken(w http.ResponseWriter, r *http.Request) {
	var creds credentials

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || !s.validCredentials(creds.Username, creds.Password) {
		writeJSON(w, http.StatusOK, map[string]string{"reason": "Bad credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": s.issueToken()})
}

type bookingIDResponse struct {
	Bookingid int `json:"bookingid"`
}

type createBookingResponse struct {
	Bookingid int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ids := s.store.List(Filter{
		Firstname: query.Get("firstname"),
		Lastname:  query.Get("lastname"),
		Checkin:   query.Get("checkin"),
		Checkout:  query.Get("checkout"),
	})

	out := make([]bookingIDResponse, len(ids))
	for i, id := range ids {
		out[i] = bookingIDResponse{Bookingid: id}
	}

	writeJSON(w, http.StatusOK, out)
}

// decodeBooking reads a complete booking, the public service answers a
// malformed or incomplete one with a 500.
func decodeBooking(r *http.Request) (Booking, bool) {
	var booking Booking

	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		return Booking{}, false
	}

	if booking.Firstname == "" || booking.Lastname == "" || booking.Bookingdates.Checkin == "" || booking.Bookingdates.Checkout == "" {
		return Booking{}, false
	}

	return booking, true
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := decodeBooking(r)
	if !ok {
		writeText(w, http.StatusInternalServerError)
		return
	}

	id := s.store.Create(booking)

	writeJSON(w, http.StatusOK, createBookingResponse{
		Bookingid: id,
		Booking:   booking,
	})
}

// bookingID parses the path parameter. Anything that is not an integer can
// never match a booking.
func bookingID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "bookingID"))
	if err != nil {
		return 0, false
	}

	return id, true
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	booking, err := s.store.Get(id)
	if err != nil {
		writeText(w, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	replacement, ok := decodeBooking(r)
	if !ok {
		writeText(w, http.StatusBadRequest)
		return
	}

	booking, err := s.store.Update(id, func(b *Booking) error {
		*b = replacement
		return nil
	})

	s.writeBooking(w, booking, err)
}

// errInvalidPatch is returned from a patch mutation that cannot be applied.
var errInvalidPatch = errors.New("invalid patch")

func (s *Server) partialUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	var patch json.RawMessage

	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	// Decoding over the existing record only touches the keys present.
	booking, err := s.store.Update(id, func(b *Booking) error {
		if err := json.Unmarshal(patch, b); err != nil {
			return errInvalidPatch
		}

		return nil
	})

	s.writeBooking(w, booking, err)
}

func (s *Server) writeBooking(w http.ResponseWriter, booking Booking, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeText(w, http.StatusMethodNotAllowed)
	case errors.Is(err, errInvalidPatch):
		writeText(w, http.StatusBadRequest)
	case err != nil:
		s.logger.Error(err, "updating booking")
		writeText(w, http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, booking)
	}
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	if err := s.store.Delete(id); err != nil {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	writeText(w, http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

// writeText writes the bare status text as the body, e.g. "Not Found".
func writeText(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	_, _ = w.Write([]byte(http.StatusText(status)))
}
