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

package matrix_test

import (
	"testing"

	"github.com/trebb/nan15fw/matrix"
	"github.com/trebb/nan15fw/test"
)

func TestFreshScannerReportsAllReleased(t *testing.T) {
	pins := matrix.NewMockPins()
	s := matrix.NewScanner(pins)
	test.ExpectSuccess(t, s.Init())

	on, err := s.IsOn(0, 0)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, on)
}

func TestPressSettlesAfterDebounceScansOfNoFurtherChange(t *testing.T) {
	pins := matrix.NewMockPins()
	s := matrix.NewScanner(pins)
	s.Init()

	pins.Pressed[1][2] = true
	test.ExpectSuccess(t, s.Scan()) // registers the change, resets settle timer

	on, _ := s.IsOn(1, 2)
	test.ExpectFailure(t, on) // not yet committed to the live grid

	for i := 0; i < matrix.Debounce; i++ {
		s.Scan()
	}

	on, _ = s.IsOn(1, 2)
	test.ExpectSuccess(t, on)
}

func TestBounceResetsTheSettleCounter(t *testing.T) {
	pins := matrix.NewMockPins()
	s := matrix.NewScanner(pins)
	s.Init()

	pins.Pressed[0][0] = true
	s.Scan()
	for i := 0; i < matrix.Debounce-1; i++ {
		s.Scan()
	}
	on, _ := s.IsOn(0, 0)
	test.ExpectFailure(t, on)

	// a bounce just before settling: toggle off and back on
	pins.Pressed[0][0] = false
	s.Scan()
	pins.Pressed[0][0] = true
	s.Scan()

	for i := 0; i < matrix.Debounce-1; i++ {
		s.Scan()
	}
	on, _ = s.IsOn(0, 0)
	test.ExpectFailure(t, on)

	s.Scan()
	on, _ = s.IsOn(0, 0)
	test.ExpectSuccess(t, on)
}

func TestGetRowReturnsColumnBitmask(t *testing.T) {
	pins := matrix.NewMockPins()
	s := matrix.NewScanner(pins)
	s.Init()

	pins.Pressed[2][1] = true
	pins.Pressed[2][3] = true
	for i := 0; i <= matrix.Debounce; i++ {
		s.Scan()
	}

	row, err := s.GetRow(2)
	test.ExpectSuccess(t, err)
	test.Equate(t, row, uint8(0b1010))
}

func TestIsModifiedWhileSettling(t *testing.T) {
	pins := matrix.NewMockPins()
	s := matrix.NewScanner(pins)
	s.Init()
	test.ExpectFailure(t, s.IsModified())

	pins.Pressed[3][0] = true
	s.Scan()
	test.ExpectSuccess(t, s.IsModified())

	for i := 0; i < matrix.Debounce; i++ {
		s.Scan()
	}
	test.ExpectFailure(t, s.IsModified())
}

func TestOutOfRangeIsAnError(t *testing.T) {
	pins := matrix.NewMockPins()
	s := matrix.NewScanner(pins)
	s.Init()

	_, err := s.IsOn(9, 9)
	test.ExpectFailure(t, err)
	_, err = s.GetRow(9)
	test.ExpectFailure(t, err)
}
