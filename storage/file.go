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

package storage

import (
	"encoding/binary"
	"os"

	"github.com/trebb/nan15fw/errors"
)

// File is an NV implementation backed by an ordinary file, the persistent
// store a Linux-hosted build uses in place of on-chip EEPROM. Words are
// held in memory and flushed to disk on every change, little-endian, two
// bytes per word.
type File struct {
	path  string
	words []uint16
}

// NewFile opens (or creates) the word store at path with size addressable
// words. An existing file shorter than size is padded with zero words; a
// longer one is truncated.
func NewFile(path string, size int) (*File, error) {
	f := &File{
		path:  path,
		words: make([]uint16, size),
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Errorf(errors.StorageCorruptErr, err)
		}
		if err := f.flush(); err != nil {
			return nil, err
		}
		return f, nil
	}

	for i := 0; i < size && 2*i+1 < len(b); i++ {
		f.words[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return f, nil
}

func (f *File) flush() error {
	b := make([]byte, 2*len(f.words))
	for i, w := range f.words {
		binary.LittleEndian.PutUint16(b[2*i:], w)
	}
	if err := os.WriteFile(f.path, b, 0o644); err != nil {
		return errors.Errorf(errors.StorageCorruptErr, err)
	}
	return nil
}

func (f *File) checkRange(addr uint16, n int) error {
	if int(addr)+n > len(f.words) {
		return errors.Errorf(errors.StorageOutOfRangeErr, addr)
	}
	return nil
}

func (f *File) ReadWord(addr uint16) (uint16, error) {
	if err := f.checkRange(addr, 1); err != nil {
		return 0, err
	}
	return f.words[addr], nil
}

func (f *File) UpdateWord(addr uint16, value uint16) error {
	if err := f.checkRange(addr, 1); err != nil {
		return err
	}
	if f.words[addr] == value {
		return nil
	}
	f.words[addr] = value
	return f.flush()
}

func (f *File) ReadBlock(dst []uint16, addr uint16) error {
	if err := f.checkRange(addr, len(dst)); err != nil {
		return err
	}
	copy(dst, f.words[addr:int(addr)+len(dst)])
	return nil
}

func (f *File) UpdateBlock(src []uint16, addr uint16) error {
	if err := f.checkRange(addr, len(src)); err != nil {
		return err
	}
	changed := false
	for i, v := range src {
		if f.words[addr+uint16(i)] != v {
			f.words[addr+uint16(i)] = v
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.flush()
}
