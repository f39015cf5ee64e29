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
	"path/filepath"
	"testing"

	"github.com/trebb/nan15fw/storage"
	"github.com/trebb/nan15fw/test"
)

func TestFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nv.bin")

	f, err := storage.NewFile(path, 64)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, f.UpdateWord(3, 0xbeef))
	test.ExpectSuccess(t, f.UpdateBlock([]uint16{1, 2, 3}, 10))

	reopened, err := storage.NewFile(path, 64)
	test.ExpectSuccess(t, err)

	w, err := reopened.ReadWord(3)
	test.ExpectSuccess(t, err)
	test.Equate(t, w, uint16(0xbeef))

	blk := make([]uint16, 3)
	test.ExpectSuccess(t, reopened.ReadBlock(blk, 10))
	test.Equate(t, blk[2], uint16(3))
}

func TestFileRejectsOutOfRange(t *testing.T) {
	f, err := storage.NewFile(filepath.Join(t.TempDir(), "nv.bin"), 8)
	test.ExpectSuccess(t, err)

	_, err = f.ReadWord(8)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, f.UpdateWord(8, 1))
}
