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

// Package swapedit implements the in-device chord-swap editor: arming it
// and then completing two chords exchanges their bindings in the live
// finger chord table (or, for a pair of function chords, exchanges the two
// function-table words outright). It never touches storage directly - the
// caller is responsible for persisting the table afterwards.
package swapedit

import (
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/errors"
)

// State is the editor's position in its arm/select/select cycle.
type State uint8

const (
	// Idle: the editor is not armed. Selections are rejected.
	Idle State = iota
	// ArmedFirst: armed, waiting for the first chord to be selected.
	ArmedFirst
	// ArmedSecond: first chord captured, waiting for the second.
	ArmedSecond
)

// Kind distinguishes a finger-chord target from a function-chord target. A
// swap can only ever pair two targets of the same Kind.
type Kind uint8

const (
	TargetFinger Kind = iota
	TargetFunction
)

type target struct {
	kind  Kind
	index uint8
	level chord.Level
}

// Editor holds the swap-in-progress state. The zero value is a valid,
// idle Editor.
type Editor struct {
	state State
	first target
}

// State returns the editor's current state.
func (e *Editor) State() State {
	return e.state
}

// Arm toggles the editor between Idle and ArmedFirst. Arming while already
// armed cancels the edit in progress and returns to Idle, mirroring a
// physical toggle key.
func (e *Editor) Arm() State {
	if e.state == Idle {
		e.state = ArmedFirst
	} else {
		e.state = Idle
		e.first = target{}
	}
	return e.state
}

// Cancel unconditionally returns the editor to Idle.
func (e *Editor) Cancel() {
	e.state = Idle
	e.first = target{}
}

// SelectFinger records a completed finger chord (at the given table index
// and level) as a swap target. The first call while armed captures the
// target; the second performs the swap against table and returns done ==
// true. A call while Idle is an error.
func (e *Editor) SelectFinger(table *chord.FingerTable, index uint8, level chord.Level) (done bool, err error) {
	return e.selectTarget(target{kind: TargetFinger, index: index, level: level}, func(a, b target) {
		swapFinger(table, a, b)
	})
}

// SelectFunction records a completed function chord (at the given table
// index) as a swap target, exchanging the two function-table entries
// whole when the second target is captured.
func (e *Editor) SelectFunction(table *chord.FuncTable, index uint8) (done bool, err error) {
	return e.selectTarget(target{kind: TargetFunction, index: index}, func(a, b target) {
		table[a.index], table[b.index] = table[b.index], table[a.index]
	})
}

func (e *Editor) selectTarget(t target, apply func(a, b target)) (bool, error) {
	switch e.state {
	case Idle:
		return false, errors.Errorf(errors.SwapNotArmedErr)

	case ArmedFirst:
		e.first = t
		e.state = ArmedSecond
		return false, nil

	case ArmedSecond:
		first := e.first
		e.state = Idle
		e.first = target{}

		if t.kind != first.kind {
			return false, errors.Errorf(errors.SwapInvalidSlotErr, t.index)
		}
		apply(first, t)
		return true, nil

	default:
		return false, errors.Errorf(errors.SwapNotArmedErr)
	}
}

// swapFinger exchanges the bindings named by a and b in table. Three cases
// apply:
//   - same level, different chord: exchange that level's half between the
//     two chords.
//   - same chord, different level: exchange the chord's lower and upper
//     halves with each other.
//   - different chord and different level: exchange a's half with b's,
//     each written into its own chord at its own level.
func swapFinger(table *chord.FingerTable, a, b target) {
	if a.index == b.index && a.level == b.level {
		return
	}

	am, ac := table[a.index].Half(a.level)
	bm, bc := table[b.index].Half(b.level)

	table[a.index].SetHalf(a.level, bm, bc)
	table[b.index].SetHalf(b.level, am, ac)
}
