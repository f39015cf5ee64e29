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

// Package snapshot encodes and decodes the full persistent table state -
// the finger chord table, the function chord table, and the macro store
// overlaid on its holes - as YAML, for host-side backup/restore tooling.
// It is the only place in this module that turns the in-device tables into
// a human-editable document; the device-side packages never import it.
package snapshot

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/errors"
	"github.com/trebb/nan15fw/storage"
)

// Document is the YAML-serializable form of the persistent state. FuncTable
// entries are stored as their packed 16-bit wire form (see action.Pack)
// rather than the opaque action.Action struct, so the document round-trips
// through an ordinary YAML encoder with no custom marshaler on action.Action
// itself.
type Document struct {
	FingerTable [chord.FingerTableSize]chord.Keypair `yaml:"finger_table"`
	FuncTable   [chord.FuncTableSize]uint16          `yaml:"func_table"`
	MacroWords  []uint16                             `yaml:"macro_words"`
}

// Capture reads the live finger and function chord tables, plus the raw
// macro-store words sitting in the function table's hole addresses
// starting at macroBase, into a Document ready to encode.
func Capture(ft *chord.FingerTable, fnt *chord.FuncTable, nv storage.NV, macroBase uint16) (Document, error) {
	var d Document
	d.FingerTable = *ft
	for i, a := range fnt {
		d.FuncTable[i] = action.Pack(a)
	}
	d.MacroWords = make([]uint16, len(chord.FuncTableHoles))
	for i, hole := range chord.FuncTableHoles {
		w, err := nv.ReadWord(macroBase + uint16(hole))
		if err != nil {
			return Document{}, err
		}
		d.MacroWords[i] = w
	}
	return d, nil
}

// Restore writes a previously captured Document back into ft, fnt, and the
// macro-store words in nv, rejecting a document whose macro word count
// doesn't match this build's hole layout.
func (d Document) Restore(ft *chord.FingerTable, fnt *chord.FuncTable, nv storage.NV, macroBase uint16) error {
	if len(d.MacroWords) != len(chord.FuncTableHoles) {
		return errors.Errorf(errors.SnapshotDecodeErr, "macro word count mismatch")
	}

	*ft = d.FingerTable
	for i, w := range d.FuncTable {
		a, err := action.Unpack(w)
		if err != nil {
			return errors.Errorf(errors.SnapshotDecodeErr, err)
		}
		fnt[i] = a
	}
	for i, hole := range chord.FuncTableHoles {
		if err := nv.UpdateWord(macroBase+uint16(hole), d.MacroWords[i]); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes d to w as YAML.
func Encode(w io.Writer, d Document) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(d); err != nil {
		return errors.Errorf(errors.SnapshotEncodeErr, err)
	}
	return nil
}

// Decode reads a Document back from r.
func Decode(r io.Reader) (Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Errorf(errors.SnapshotDecodeErr, err)
	}
	return d, nil
}
