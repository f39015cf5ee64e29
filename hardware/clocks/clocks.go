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

// Package clocks collects the timing constants that govern matrix scanning
// and debounce.
//
// Values are taken from the nan-15 AVR firmware: a 30 microsecond
// settle delay after strobing a column, and a 1 millisecond delay between
// debounce passes.
package clocks

import "time"

const (
	// StrobeSettle is how long to wait after driving a column line before
	// sampling the row lines, to let the signal settle.
	StrobeSettle = 30 * time.Microsecond

	// DebouncePass is the delay between successive matrix scans while any
	// key is in a debouncing state.
	DebouncePass = 1 * time.Millisecond

	// DebounceCycles is the number of consecutive identical samples a key
	// must report before its state is considered live.
	DebounceCycles = 5

	// ScanInterval is the nominal delay between full matrix scans when no
	// key is debouncing.
	ScanInterval = 1 * time.Millisecond
)
