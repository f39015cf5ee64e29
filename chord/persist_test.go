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

	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/storage"
	"github.com/trebb/nan15fw/test"
)

func TestKeypairCellRoundTrip(t *testing.T) {
	kp := chord.Keypair{
		ModsLo: chord.ModLCtrl | chord.ModAltGr,
		CodeLo: 0x2a,
		ModsUp: chord.ModLShift,
		CodeUp: 0x08,
	}
	lo, up := chord.PackKeypair(kp)
	test.Equate(t, chord.UnpackKeypair(lo, up), kp)
}

func TestFingerTableRoundTrip(t *testing.T) {
	nv := storage.NewMock(chord.FingerTableWords)

	stored := chord.DefaultFingerTable()
	stored[0x05] = chord.Keypair{CodeLo: 0x08, ModsUp: chord.ModLShift, CodeUp: 0x08}

	test.ExpectSuccess(t, chord.StoreFingerTable(nv, 0, &stored))

	var loaded chord.FingerTable
	test.ExpectSuccess(t, chord.LoadFingerTable(nv, 0, &loaded))
	test.Equate(t, loaded, stored)
}

func TestFuncTableStoreSkipsHoles(t *testing.T) {
	nv := storage.NewMock(chord.FuncTableWords)

	// plant a macro word in a hole; storing the table must not disturb it
	hole := uint16(chord.FuncTableHoles[0])
	test.ExpectSuccess(t, nv.UpdateWord(hole, 0xa5a5))

	table := chord.DefaultFuncTable()
	table[0x11] = action.NewMods(uint8(chord.ModLCtrl), 0x06)
	test.ExpectSuccess(t, chord.StoreFuncTable(nv, 0, &table))

	w, err := nv.ReadWord(hole)
	test.ExpectSuccess(t, err)
	test.Equate(t, w, uint16(0xa5a5))

	var loaded chord.FuncTable
	test.ExpectSuccess(t, chord.LoadFuncTable(nv, 0, &loaded))
	test.Equate(t, loaded[0x11], table[0x11])
	test.Equate(t, loaded[hole].Kind(), action.None)
}
