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

package chord

// NumCols is the number of matrix columns contributing to a finger chord.
const NumCols = 4

// squeezeColumns projects an 8-bit finger chord down to a 4-bit "which columns
// were pressed" value, rejecting (returning 0, ok=false) any chord whose
// pressed columns don't all belong to the same row. The AVR firmware
// computes this with a parallel even/odd bit trick; this does the
// equivalent column-by-column, which is the clearer idiom in Go and has no
// cycle budget to justify the bit-twiddling.
func squeezeColumns(fng FingerChord) (cols uint8, row uint8, ok bool) {
	sawAny := false
	for col := uint8(0); col < NumCols; col++ {
		rowVal := (uint8(fng) >> (2 * col)) & 0x3
		if rowVal == 0 {
			continue
		}
		if !sawAny {
			row = rowVal
			sawAny = true
		} else if rowVal != row {
			return 0, 0, false
		}
		cols |= 1 << col
	}
	return cols, row, sawAny
}

// Squeeze rebuilds the 7-bit function-chord index from an 8-bit finger
// chord: bits 0-3 are the pressed-columns nibble, bits 4-5 are the single
// row all presses share. It returns 0 if the chord spans more than one
// distinct row (or has no presses at all) - by construction this makes
// "squeeze(fng) == 0 iff fng has presses in more than one row, or none"
// hold for every input, which is the invariant the rest of the engine
// relies on to treat a multi-row chord as unmapped.
func Squeeze(fng FingerChord) uint8 {
	cols, row, ok := squeezeColumns(fng)
	if !ok {
		return 0
	}
	return cols | (row << 4)
}

// FuncChordIndex combines a squeezed finger chord with which thumb function
// key (left or right) was held, producing the 7-bit index into the
// function chord table. hand is 0 for left, 1 for right.
func FuncChordIndex(fng FingerChord, hand uint8) uint8 {
	return Squeeze(fng) | ((hand & 1) << 6)
}
