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

import "github.com/trebb/nan15fw/action"

// FingerTableSize is the number of entries in the finger chord table: one
// per possible 8-bit finger chord fingerprint.
const FingerTableSize = 256

// FuncTableSize is the number of entries in the function chord table: one
// per possible 7-bit squeezed-chord-plus-hand index.
const FuncTableSize = 128

// ThumbTableSize is the number of entries in the thumb chord table: one per
// possible 3-bit thumb fingerprint.
const ThumbTableSize = 8

// FingerTable is the persistent 256-entry finger chord table (chrdmap in
// the AVR firmware). Entry 0 is the reserved sentinel and must stay
// the zero Keypair.
type FingerTable [FingerTableSize]Keypair

// FuncTable is the persistent 128-entry function chord table (fn_chrdmap).
// Certain indices are "holes" - unreachable because Squeeze never produces
// them - and are reused by the macro engine for persistent macro storage;
// see the macro package.
type FuncTable [FuncTableSize]action.Action

// ThumbKind discriminates how a thumb chord should be handled by the
// classifier.
type ThumbKind uint8

const (
	// ThumbLower means no thumb key is involved: classify the finger
	// chord using its lower (default) half.
	ThumbLower ThumbKind = iota
	// ThumbUpper means the thumb shift key alone was held: classify the
	// finger chord using its upper half.
	ThumbUpper
	// ThumbPlainMods means the thumb chord alone (no finger chord) emits
	// a fixed (mods, code) pair directly.
	ThumbPlainMods
	// ThumbFunctionDirect means the thumb chord alone (no finger chord)
	// dispatches a chord function directly.
	ThumbFunctionDirect
	// ThumbFnChord means a thumb function key (left or right) was held
	// together with a finger chord: look the squeezed chord up in the
	// FuncTable.
	ThumbFnChord
)

// ThumbEntry is one of the 8 entries of the thumb chord table.
type ThumbEntry struct {
	Kind ThumbKind
	Mods Mods          // valid for ThumbPlainMods
	Code uint8         // valid for ThumbPlainMods
	Func action.FuncID // valid for ThumbFunctionDirect
	Opt  uint8         // valid for ThumbFunctionDirect
	Hand uint8         // valid for ThumbFnChord: 0 left, 1 right
}

// ThumbTable is the 8-entry, read-only thumb chord table (thb_chrdmap).
type ThumbTable [ThumbTableSize]ThumbEntry

// FuncTableHoles lists the function-chord indices that Squeeze can never
// produce. A finger chord's pressed-columns nibble spanning more than one
// row squeezes to zero, so only a handful of (row, column-pattern) shapes
// are reachable; the remainder - the holes - are safe to repurpose for
// macro storage. Verbatim from the AVR firmware's
// fn_chrdmap_holes table.
var FuncTableHoles = [...]uint8{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	0x20, 0x30,
	0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48,
	0x49, 0x4a, 0x4b, 0x4c, 0x4d, 0x4e, 0x4f, 0x50,
	0x60, 0x70,
}

// IsHole reports whether idx is one of the unreachable function-chord
// indices available for macro storage.
func IsHole(idx uint8) bool {
	for _, h := range FuncTableHoles {
		if h == idx {
			return true
		}
	}
	return false
}
