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

package chord_test

import (
	"testing"

	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/test"
)

func TestSqueezeNoPresses(t *testing.T) {
	test.Equate(t, chord.Squeeze(0), uint8(0))
}

func TestSqueezeSingleColumn(t *testing.T) {
	// column 1 pressed in row 1: bits [col3 col2 col1 col0] = 00 00 01 00
	fng := chord.FingerChord(1 << 2)
	got := chord.Squeeze(fng)
	test.Equate(t, got, uint8(0x12)) // cols=0b0010, row=1 -> 0x02 | (1<<4)
}

func TestSqueezeMultiColumnSameRow(t *testing.T) {
	// columns 0 and 3 both pressed in row 2
	fng := chord.FingerChord(2 | (2 << 6))
	got := chord.Squeeze(fng)
	test.Equate(t, got, uint8(0b1001)|uint8(2<<4))
}

func TestSqueezeCancelsAcrossRows(t *testing.T) {
	// column 0 in row 1, column 1 in row 2: different rows cancel
	fng := chord.FingerChord(1 | (2 << 2))
	test.Equate(t, chord.Squeeze(fng), uint8(0))
}

// TestSqueezeCancellationInvariant exhaustively checks the stated
// invariant: squeeze(fng) is zero exactly when fng holds presses from more
// than one distinct row, or no presses at all.
func TestSqueezeCancellationInvariant(t *testing.T) {
	for v := 0; v < 256; v++ {
		fng := chord.FingerChord(v)

		rows := map[uint8]bool{}
		for col := 0; col < 4; col++ {
			r := uint8(v>>(2*col)) & 0x3
			if r != 0 {
				rows[r] = true
			}
		}

		multiRowOrEmpty := len(rows) != 1
		isZero := chord.Squeeze(fng) == 0

		test.Equate(t, isZero, multiRowOrEmpty)
	}
}

func TestFuncChordIndexFoldsHandBit(t *testing.T) {
	fng := chord.FingerChord(0x01 << 2)
	left := chord.FuncChordIndex(fng, 0)
	right := chord.FuncChordIndex(fng, 1)

	test.Equate(t, left, chord.Squeeze(fng))
	test.Equate(t, right, chord.Squeeze(fng)|0x40)
}
