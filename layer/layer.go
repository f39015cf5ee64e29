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

// Package layer implements the secondary, non-chord key layers: numpad,
// navigation, mouse-direction, and macro-pad. While any of these layers is
// active, keys are looked up directly in a Rows x Cols action table instead
// of being accumulated into a chord fingerprint - the AVR firmware's
// actionmaps[] direct-lookup path for every layer but the default one.
package layer

import "github.com/trebb/nan15fw/action"

// Rows and Cols mirror the physical key matrix every layer table is shaped
// after, regardless of which layer is active.
const (
	Rows = 4
	Cols = 4
)

// ID names one layer. Default is the chording layer and is never looked up
// through a Table - the chord package owns it.
type ID uint8

const (
	Default ID = iota
	Numpad
	Nav
	Mouse
	MacroPad
)

func (id ID) String() string {
	switch id {
	case Default:
		return "default"
	case Numpad:
		return "numpad"
	case Nav:
		return "nav"
	case Mouse:
		return "mouse"
	case MacroPad:
		return "macro-pad"
	default:
		return "unknown"
	}
}

// Table is one layer's direct-lookup action grid.
type Table [Rows][Cols]action.Action

// key identifies one matrix position, used to remember what a Press
// resolved to so the matching Release can be handled symmetrically even if
// the active layer changes in between.
type key struct{ Row, Col int }

// Runtime tracks which secondary layer is active (or held momentarily) and
// resolves key events against the registered tables. The zero value is not
// usable; construct with NewRuntime.
type Runtime struct {
	tables    map[ID]*Table
	active    ID
	momentary []ID
	pressed   map[key]action.Action
}

// NewRuntime returns a Runtime starting on the Default layer, resolving
// non-default layers against tables.
func NewRuntime(tables map[ID]*Table) *Runtime {
	return &Runtime{
		tables:  tables,
		active:  Default,
		pressed: make(map[key]action.Action),
	}
}

// Active reports the persistently selected layer (ignoring any momentary
// hold currently on top of it).
func (r *Runtime) Active() ID {
	return r.active
}

// SetActive forces the persistently selected layer outright. It exists for
// the chord-mode CHG_LAYER path, which decides layer changes itself (only
// once every key of the triggering chord has been released) rather than
// through Runtime's own Press/Release bookkeeping.
func (r *Runtime) SetActive(id ID) {
	r.active = id
}

// Current reports the layer that lookups actually resolve against right
// now: the top of the momentary stack if any key is holding one open,
// otherwise the active layer.
func (r *Runtime) Current() ID {
	if n := len(r.momentary); n > 0 {
		return r.momentary[n-1]
	}
	return r.active
}

// Lookup resolves (row, col) against the currently effective layer. It
// never touches state; callers that need press/release bookkeeping use
// Press/Release instead.
func (r *Runtime) Lookup(row, col int) action.Action {
	t, ok := r.tables[r.Current()]
	if !ok || row < 0 || row >= Rows || col < 0 || col >= Cols {
		return action.NewNone()
	}
	return t[row][col]
}

// Press resolves (row, col) on the currently effective layer, applies any
// immediate state change (opening a momentary sublayer), and remembers the
// resolved action so Release can undo it symmetrically. The returned
// Action tells the caller what to do: Key/Mods to emit via the modifier
// engine, Function/MacroPlay to invoke the macro player, Function/
// ChangeLayer and LayerMomentary are fully handled here and need no further
// action from the caller.
func (r *Runtime) Press(row, col int) action.Action {
	a := r.Lookup(row, col)
	r.pressed[key{row, col}] = a
	if a.Kind() == action.LayerMomentary {
		r.momentary = append(r.momentary, ID(a.LayerID()))
	}
	return a
}

// Release matches a prior Press for (row, col), closing a momentary
// sublayer or committing a pending layer change as appropriate, and
// returns the action that was resolved at press time.
func (r *Runtime) Release(row, col int) action.Action {
	k := key{row, col}
	a, ok := r.pressed[k]
	if !ok {
		return action.NewNone()
	}
	delete(r.pressed, k)

	switch a.Kind() {
	case action.LayerMomentary:
		r.popMomentary(ID(a.LayerID()))
	case action.Function:
		if a.FuncID() == action.FuncChangeLayer {
			r.active = ID(a.Opt())
		}
	}
	return a
}

// popMomentary removes the first (innermost held) occurrence of id from
// the momentary stack, supporting nested momentary holds released
// out of order.
func (r *Runtime) popMomentary(id ID) {
	for i := len(r.momentary) - 1; i >= 0; i-- {
		if r.momentary[i] == id {
			r.momentary = append(r.momentary[:i], r.momentary[i+1:]...)
			return
		}
	}
}
