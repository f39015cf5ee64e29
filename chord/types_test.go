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

func TestAltGrRoundTrip(t *testing.T) {
	for m := uint8(0); m < 16; m++ {
		x := chord.KeypairModsToMods(chord.Mods(m))
		got := chord.ModsToKeypairMods(x)
		test.Equate(t, uint8(got), m)
	}
}

func TestKeypairModsToModsMovesAltGr(t *testing.T) {
	got := chord.KeypairModsToMods(chord.ModAltGr)
	test.Equate(t, got, uint8(0x40))
}

func TestKeypairModsToModsLeavesOthersInPlace(t *testing.T) {
	got := chord.KeypairModsToMods(chord.ModLCtrl | chord.ModLShift | chord.ModLAlt)
	test.Equate(t, got, uint8(0x07))
}

func TestSentinelKeypair(t *testing.T) {
	var kp chord.Keypair
	test.ExpectSuccess(t, kp.IsSentinel())

	kp.CodeLo = 0x04
	test.ExpectFailure(t, kp.IsSentinel())
}
