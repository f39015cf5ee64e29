// This file is part of nan15fw.
//
// nan15fw is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nan15fw is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nan15fw.  If not, see <https://www.gnu.org/licenses/>.

// Package future implements delayed, cooperative event scheduling: payloads
// are run some number of Tick() calls after being Schedule()'d, with no
// goroutines or timers involved. The keyboard core's macro playback drives a
// Ticker from the main loop's tick instead of reaching for time.Timer, so
// that playback advances in lockstep with the keyboard scan rate. The
// printer and LED scheduler step their own state once per tick and use no
// Ticker.
package future

import (
	"fmt"
	"strings"
)

// Event is a scheduled payload. The zero value is not usable; obtain an
// Event from Ticker.Schedule.
type Event struct {
	label     string
	initial   int
	remaining int
	payload   func()
	done      bool
}

// JustStarted reports whether the event has not yet been advanced by a Tick.
func (ev *Event) JustStarted() bool {
	return ev.remaining == ev.initial
}

// AboutToEnd reports whether the event's payload will run on the very next
// Tick.
func (ev *Event) AboutToEnd() bool {
	return ev.remaining <= 0
}

// RemainingCycles returns the number of Tick calls remaining before the
// payload runs. It is -1 once the event has fired, been Forced, or Dropped.
func (ev *Event) RemainingCycles() int {
	return ev.remaining
}

// Force runs the event's payload immediately, regardless of how many cycles
// remain, and removes it from its Ticker.
func (ev *Event) Force() {
	if ev.done {
		return
	}
	ev.done = true
	ev.remaining = -1
	ev.payload()
}

// Drop removes the event from its Ticker without running its payload.
func (ev *Event) Drop() {
	ev.done = true
	ev.remaining = -1
}

// Ticker drives a set of scheduled Events. A zero-delay Tick loop - the
// keyboard scan loop, in this codebase - calls Tick() once per iteration.
type Ticker struct {
	name    string
	pending []*Event
}

// NewTicker creates a named Ticker. The name prefixes each entry in String().
func NewTicker(name string) *Ticker {
	return &Ticker{name: name}
}

// Schedule adds a payload to run after delay further Tick calls. A delay of
// zero runs the payload on the very next Tick; a negative delay runs the
// payload immediately, synchronously, and the returned Event is already
// done.
func (tck *Ticker) Schedule(delay int, payload func(), label string) *Event {
	ev := &Event{
		label:     label,
		initial:   delay,
		remaining: delay,
		payload:   payload,
	}

	if delay < 0 {
		ev.done = true
		ev.remaining = -1
		payload()
		return ev
	}

	tck.pending = append(tck.pending, ev)
	return ev
}

// Pending returns the number of events still waiting to fire. Callers that
// only Tick while work is outstanding (the keyboard's macro playback, for
// example) use this to skip the Tick entirely on quiet iterations.
func (tck *Ticker) Pending() int {
	n := 0
	for _, ev := range tck.pending {
		if !ev.done {
			n++
		}
	}
	return n
}

// DropAll removes every pending event without running any payload.
func (tck *Ticker) DropAll() {
	for _, ev := range tck.pending {
		ev.Drop()
	}
	tck.pending = tck.pending[:0]
}

// Tick advances every pending event by one cycle, running the payload of any
// event whose delay has elapsed. It returns an error if no event fired
// during this call - including when nothing was scheduled at all - so that
// callers can distinguish a quiet tick from one that did useful work.
func (tck *Ticker) Tick() error {
	fired := false

	live := tck.pending[:0]
	for _, ev := range tck.pending {
		if ev.done {
			continue
		}
		if ev.remaining <= 0 {
			ev.done = true
			ev.remaining = -1
			ev.payload()
			fired = true
			continue
		}
		ev.remaining--
		live = append(live, ev)
	}
	tck.pending = live

	if !fired {
		return fmt.Errorf("future: %s: nothing fired this tick", tck.name)
	}
	return nil
}

// String lists every pending event as "name: label -> remaining", one per
// line, in scheduling order.
func (tck *Ticker) String() string {
	var b strings.Builder
	n := 0
	for _, ev := range tck.pending {
		if ev.done {
			continue
		}
		if n > 0 {
			b.WriteString("\n")
		}
		n++
		fmt.Fprintf(&b, "%s: %s -> %d", tck.name, ev.label, ev.remaining)
	}
	return b.String()
}
