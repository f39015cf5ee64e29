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

import (
	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/errors"
)

// Classify turns a (finger chord, thumb chord) pair left by a press/release
// burst into the Action it dispatches to. It never mutates any table; it is
// the read side of chord classification, applied exactly once per burst by
// the collector.
//
// The rules, in priority order:
//  1. Thumb state selects lower/upper half of the finger chord table when
//     no thumb function key is held (ThumbLower/ThumbUpper). A bare thumb
//     press with no finger chord yields no action.
//  2. A thumb chord bound to ThumbPlainMods emits its fixed mods/keycode
//     pair regardless of any finger chord.
//  3. A thumb chord bound to ThumbFunctionDirect dispatches its chord
//     function regardless of any finger chord.
//  4. A thumb chord bound to ThumbFnChord (one of the two function thumb
//     keys) squeezes the finger chord and looks the result up in the
//     function chord table; an empty table entry is a legitimate "nothing
//     bound here" result, not an error.
func Classify(fingerTable *FingerTable, funcTable *FuncTable, thumbTable *ThumbTable, fng FingerChord, thb ThumbChord) (action.Action, error) {
	entry := thumbTable[thb]

	switch entry.Kind {
	case ThumbLower, ThumbUpper:
		if fng == 0 {
			return action.NewNone(), nil
		}
		kp := fingerTable[fng]
		if kp.IsSentinel() {
			return action.Action{}, errors.Errorf(errors.ChordUnmappedErr, uint8(fng))
		}
		if entry.Kind == ThumbUpper {
			return action.NewMods(uint8(kp.ModsUp), kp.CodeUp), nil
		}
		return action.NewMods(uint8(kp.ModsLo), kp.CodeLo), nil

	case ThumbPlainMods:
		return action.NewMods(uint8(entry.Mods), entry.Code), nil

	case ThumbFunctionDirect:
		return action.NewFunction(entry.Func, entry.Opt), nil

	case ThumbFnChord:
		idx := FuncChordIndex(fng, entry.Hand)
		return funcTable[idx], nil

	default:
		return action.Action{}, errors.Errorf(errors.ChordUnmappedErr, uint8(fng))
	}
}
