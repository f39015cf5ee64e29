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

// Package matrix implements the debounced key matrix scanner: a
// column-strobe, row-sample polled scan of the 4x4 key grid (whose last row
// holds the three thumb keys, with its column 1 unused), kept
// as two bit grids - a live copy the rest of the core reads, and a
// debouncing copy the scanner writes to before it settles.
package matrix

import (
	"github.com/trebb/nan15fw/errors"
	"github.com/trebb/nan15fw/hardware/clocks"
)

// Rows and Cols are the physical matrix dimensions.
const (
	Rows = 4
	Cols = 4
)

// Debounce is the number of consecutive stable scans required before a
// changed bit is committed from the debouncing grid to the live grid.
const Debounce = clocks.DebounceCycles

// Pins is the narrow GPIO surface the scanner drives: strobe one column low
// at a time and sample which rows read active. The physical pin assignment
// stays behind this interface; see PeriphPins for a real backend.
type Pins interface {
	Init() error
	SelectCol(col int) error
	UnselectCols() error
	ReadRows() (uint8, error)
}

// Scanner owns the live and debouncing bit grids and drives Pins through one
// full column sweep per Scan call. Each grid row is a Cols-wide bitmask:
// bit i set means the key at (row, i) reads pressed.
type Scanner struct {
	pins       Pins
	live       [Rows]uint8
	debouncing [Rows]uint8
	settleLeft int
}

// NewScanner returns a Scanner driving pins. It does not touch any pin until
// Init is called.
func NewScanner(pins Pins) *Scanner {
	return &Scanner{pins: pins}
}

// Init prepares the underlying pins for scanning.
func (s *Scanner) Init() error {
	if err := s.pins.UnselectCols(); err != nil {
		return err
	}
	return s.pins.Init()
}

// Scan performs one column sweep, updating the debouncing grid for any
// column whose sampled row bits differ from what it currently holds and
// resetting the settle counter whenever that happens. Once Debounce
// consecutive scans pass with no further change, the debouncing grid is
// copied into the live grid. Scan never blocks: the 1ms per-cycle delay the
// AVR firmware takes while debounce is in progress is the caller's
// concern (see the main loop in nan15fw.go), not the scanner's.
func (s *Scanner) Scan() error {
	changed := false
	for col := 0; col < Cols; col++ {
		if err := s.pins.SelectCol(col); err != nil {
			return err
		}
		rows, err := s.pins.ReadRows()
		if err != nil {
			return err
		}
		if err := s.pins.UnselectCols(); err != nil {
			return err
		}
		for row := 0; row < Rows; row++ {
			prevBit := s.debouncing[row]&(1<<uint(col)) != 0
			currBit := rows&(1<<uint(row)) != 0
			if prevBit != currBit {
				s.debouncing[row] ^= 1 << uint(col)
				changed = true
			}
		}
	}

	if changed {
		s.settleLeft = Debounce
	} else if s.settleLeft > 0 {
		s.settleLeft--
		if s.settleLeft == 0 {
			s.live = s.debouncing
		}
	}
	return nil
}

// IsOn reports whether the live grid has (row, col) pressed.
func (s *Scanner) IsOn(row, col int) (bool, error) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false, errors.Errorf(errors.MatrixOutOfRangeErr, row, col)
	}
	return s.live[row]&(1<<uint(col)) != 0, nil
}

// GetRow returns the live grid's bitmask for row.
func (s *Scanner) GetRow(row int) (uint8, error) {
	if row < 0 || row >= Rows {
		return 0, errors.Errorf(errors.MatrixOutOfRangeErr, row, 0)
	}
	return s.live[row], nil
}

// IsModified reports whether the debouncing grid still differs from the
// live grid - i.e. a change is in flight and has not yet settled.
func (s *Scanner) IsModified() bool {
	return s.live != s.debouncing
}
