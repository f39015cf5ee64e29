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

// Package logger is a small ring-buffered event log. The core logs
// classification and dispatch decisions to it at a coarse grain - never per
// matrix scan, which runs at kHz rates - so a host tool can Tail() recent
// activity without the core itself depending on any particular transport.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission implementations decide, at the moment of the call, whether a
// particular Log/Logf call should be recorded. This lets a caller gate
// logging (for example, only while a debug build or a host tether is
// attached) without every call site needing to check a global first.
type Permission interface {
	AllowLogging() bool
}

type allowAll struct{}

func (allowAll) AllowLogging() bool { return true }

// Allow is a Permission that always allows logging.
var Allow = allowAll{}

type entry struct {
	tag    string
	detail string
}

// Logger is a fixed-capacity ring buffer of tag/detail entries.
type Logger struct {
	crit    sync.Mutex
	entries []entry
	cap     int
}

// NewLogger creates a Logger that retains at most capacity entries, dropping
// the oldest entry once full.
func NewLogger(capacity int) *Logger {
	return &Logger{
		entries: make([]entry, 0, capacity),
		cap:     capacity,
	}
}

func formatDetail(detail interface{}) string {
	switch d := detail.(type) {
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	case string:
		return d
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Log records tag/detail if perm allows it.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	l.append(tag, formatDetail(detail))
}

// Logf is like Log but the detail is built from a format string.
func (l *Logger) Logf(perm Permission, tag string, format string, args ...interface{}) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	l.append(tag, fmt.Sprintf(format, args...))
}

func (l *Logger) append(tag, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if len(l.entries) == l.cap {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, entry{tag: tag, detail: detail})
}

// Clear empties the log.
func (l *Logger) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = l.entries[:0]
}

// Write writes every retained entry to w, one per line, in the form
// "tag: detail".
func (l *Logger) Write(w io.Writer) error {
	return l.Tail(w, -1)
}

// Tail writes at most the n most recent entries to w. A negative n writes
// everything retained.
func (l *Logger) Tail(w io.Writer, n int) error {
	l.crit.Lock()
	defer l.crit.Unlock()

	start := 0
	if n >= 0 && n < len(l.entries) {
		start = len(l.entries) - n
	}

	var b strings.Builder
	for _, e := range l.entries[start:] {
		b.WriteString(e.tag)
		b.WriteString(": ")
		b.WriteString(e.detail)
		b.WriteString("\n")
	}

	_, err := w.Write([]byte(b.String()))
	return err
}
