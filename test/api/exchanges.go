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
	"fmt"
	"io"
	"sync"
	"time"
)

// Exchange is one request and its response as seen by the client.
type Exchange struct {
	Method       string
	Path         string
	RequestBody  []byte
	StatusCode   int
	ResponseBody []byte
	TraceID      string
	Duration     time.Duration
	Err          error
}

// ExchangeLog records exchanges so they can be dumped when a spec fails,
// keeping passing runs quiet.
type ExchangeLog struct {
	lock      sync.Mutex
	exchanges []Exchange
}

func NewExchangeLog() *ExchangeLog {
	return &ExchangeLog{}
}

func (l *ExchangeLog) Record(exchange Exchange) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.exchanges = append(l.exchanges, exchange)
}

// Entries returns a copy of the recorded exchanges, oldest first.
func (l *ExchangeLog) Entries() []Exchange {
	l.lock.Lock()
	defer l.lock.Unlock()

	out := make([]Exchange, len(l.exchanges))
	copy(out, l.exchanges)

	return out
}

func (l *ExchangeLog) Reset() {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.exchanges = nil
}

// Dump writes every recorded exchange, with bodies, to w.
func (l *ExchangeLog) Dump(w io.Writer) {
	for _, e := range l.Entries() {
		fmt.Fprintf(w, "[%s %s] status=%d duration=%s traceID=%s\n", e.Method, e.Path, e.StatusCode, e.Duration, e.TraceID)

		if len(e.RequestBody) > 0 {
			fmt.Fprintf(w, "  request body: %s\n", e.RequestBody)
		}

		if len(e.ResponseBody) > 0 {
			fmt.Fprintf(w, "  response body: %s\n", e.ResponseBody)
		}

		if e.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", e.Err)
		}
	}
}
