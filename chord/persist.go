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
	"github.com/trebb/nan15fw/storage"
)

// FingerTableWords is the NV footprint of the finger chord table: each
// 24-bit Keypair occupies a two-word (32-bit) cell, trading a wasted byte
// per entry for word-aligned addressing.
const FingerTableWords = FingerTableSize * 2

// FuncTableWords is the NV footprint of the function chord table: one
// packed action word per entry. The hole cells within this region belong
// to the macro store, not to the table.
const FuncTableWords = FuncTableSize

// PackKeypair encodes kp into its two-word cell: the lower half in the
// first word, the upper half in the second, keycode in the low byte and
// mods nibble above it.
func PackKeypair(kp Keypair) (lo, up uint16) {
	lo = uint16(kp.CodeLo) | uint16(kp.ModsLo&0x0f)<<8
	up = uint16(kp.CodeUp) | uint16(kp.ModsUp&0x0f)<<8
	return lo, up
}

// UnpackKeypair decodes a two-word cell written by PackKeypair.
func UnpackKeypair(lo, up uint16) Keypair {
	return Keypair{
		CodeLo: uint8(lo),
		ModsLo: Mods(lo>>8) & 0x0f,
		CodeUp: uint8(up),
		ModsUp: Mods(up>>8) & 0x0f,
	}
}

// LoadFingerTable fills table from the NV region starting at base. A
// freshly zeroed store yields the all-sentinel table DefaultFingerTable
// returns, so first boot needs no special case.
func LoadFingerTable(nv storage.NV, base uint16, table *FingerTable) error {
	words := make([]uint16, FingerTableWords)
	if err := nv.ReadBlock(words, base); err != nil {
		return err
	}
	for i := range table {
		table[i] = UnpackKeypair(words[2*i], words[2*i+1])
	}
	return nil
}

// StoreFingerTable writes table to the NV region starting at base. The
// block update only touches words that actually changed, so a single
// swapped chord costs at most four word writes.
func StoreFingerTable(nv storage.NV, base uint16, table *FingerTable) error {
	words := make([]uint16, FingerTableWords)
	for i, kp := range table {
		words[2*i], words[2*i+1] = PackKeypair(kp)
	}
	return nv.UpdateBlock(words, base)
}

// LoadFuncTable fills table from the NV region starting at base, leaving
// every hole entry empty: the words at hole addresses belong to the macro
// store and are not action words at all.
func LoadFuncTable(nv storage.NV, base uint16, table *FuncTable) error {
	words := make([]uint16, FuncTableWords)
	if err := nv.ReadBlock(words, base); err != nil {
		return err
	}
	for i := range table {
		if IsHole(uint8(i)) {
			table[i] = action.NewNone()
			continue
		}
		a, err := action.Unpack(words[i])
		if err != nil {
			return err
		}
		table[i] = a
	}
	return nil
}

// StoreFuncTable writes table's non-hole entries to the NV region starting
// at base, word by word so the macro store overlaying the holes is never
// clobbered.
func StoreFuncTable(nv storage.NV, base uint16, table *FuncTable) error {
	for i, a := range table {
		if IsHole(uint8(i)) {
			continue
		}
		if err := nv.UpdateWord(base+uint16(i), action.Pack(a)); err != nil {
			return err
		}
	}
	return nil
}
