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

package storage_test

import (
	"testing"

	"github.com/trebb/nan15fw/storage"
	"github.com/trebb/nan15fw/test"
)

func TestWordReadWrite(t *testing.T) {
	nv := storage.NewMock(4)

	v, err := nv.ReadWord(0)
	test.ExpectSuccess(t, err)
	test.Equate(t, v, uint16(0))

	test.ExpectSuccess(t, nv.UpdateWord(1, 0xbeef))
	v, err = nv.ReadWord(1)
	test.ExpectSuccess(t, err)
	test.Equate(t, v, uint16(0xbeef))
}

func TestOutOfRange(t *testing.T) {
	nv := storage.NewMock(2)

	_, err := nv.ReadWord(5)
	test.ExpectFailure(t, err)

	err = nv.UpdateWord(5, 1)
	test.ExpectFailure(t, err)
}

func TestBlockRoundTrip(t *testing.T) {
	nv := storage.NewMock(8)

	src := []uint16{1, 2, 3, 4}
	test.ExpectSuccess(t, nv.UpdateBlock(src, 2))

	dst := make([]uint16, 4)
	test.ExpectSuccess(t, nv.ReadBlock(dst, 2))
	test.Equate(t, dst, src)
}

func TestWriteCountSkipsNoOps(t *testing.T) {
	nv := storage.NewMock(2)

	test.ExpectSuccess(t, nv.UpdateWord(0, 7))
	test.Equate(t, nv.WriteCount, 1)

	// writing the same value again should not count as a new write
	test.ExpectSuccess(t, nv.UpdateWord(0, 7))
	test.Equate(t, nv.WriteCount, 1)

	test.ExpectSuccess(t, nv.UpdateWord(0, 8))
	test.Equate(t, nv.WriteCount, 2)
}
