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

// Package macro implements the in-device macro recorder and player. A
// macro is up to Len (mods, keycode) pairs, recorded from whatever the
// emission engine actually sent while recording was armed, and played back
// through the same engine. Persistent macro storage overlays the function
// chord table's unreachable "hole" cells (see chord.FuncTableHoles):
// Max macros of Len chords pack their keycode and mods nibbles across those
// 36 words, addressed by the exact word/nibble/byte arithmetic of the
// AVR firmware so that the hole layout documented there still governs
// capacity here.
package macro

import (
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/errors"
	"github.com/trebb/nan15fw/storage"
)

// Len is the number of chords recordable per macro.
const Len = 6

// Max is the number of distinct macros storable.
const Max = 8

func init() {
	if Len*Max*12 > len(chord.FuncTableHoles)*16 {
		panic("macro: configured macro space exceeds available hole capacity")
	}
}

// Entry is one recorded (mods, keycode) step of a macro.
type Entry struct {
	Mods chord.Mods
	Code uint8
}

// Recorder holds the in-progress recording buffer. The zero value is an
// idle Recorder.
type Recorder struct {
	recording bool
	buf       [Len]Entry
	idx       int
}

// NewRecorder returns an idle Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Recording reports whether a macro is currently being recorded.
func (r *Recorder) Recording() bool {
	return r.recording
}

// StartRecord arms recording, discarding anything previously buffered.
func (r *Recorder) StartRecord() {
	r.recording = true
	r.buf = [Len]Entry{}
	r.idx = 0
}

// CancelRecord abandons an in-progress recording without persisting it.
func (r *Recorder) CancelRecord() {
	r.recording = false
}

// Collect appends one emitted (hidMods, code) pair to the buffer if
// recording, packing hidMods down to the keypair mods nibble first. It
// mirrors mcr(COLLECT, ...): a no-op (mods == 0 and code == 0) pair is
// never appended, and collecting reports true whenever recording is
// active, which callers use to suppress the NO_KEYCODE warning blink while
// a macro is being recorded. full reports whether this pair overran the
// buffer and was dropped.
func (r *Recorder) Collect(hidMods uint8, code uint8) (collecting, full bool) {
	if !r.recording {
		return false, false
	}
	if hidMods == 0 && code == 0 {
		return true, false
	}
	if r.idx >= Len {
		return true, true
	}
	r.buf[r.idx] = Entry{Mods: chord.ModsToKeypairMods(hidMods), Code: code}
	r.idx++
	return true, false
}

// Commit persists the recorded buffer as macro id via nv, padding any
// unused trailing slots with zero (mods, code) pairs, then ends recording.
func (r *Recorder) Commit(nv storage.NV, base uint16, id uint8) error {
	if !r.recording {
		return errors.Errorf(errors.MacroNotRecordingErr)
	}
	if id >= Max {
		return errors.Errorf(errors.MacroIndexOutOfRangeErr, id)
	}
	for c := 0; c < Len; c++ {
		var m, k uint8
		if c < r.idx {
			m, k = uint8(r.buf[c].Mods), r.buf[c].Code
		}
		if err := putChord(nv, base, id, uint8(c), m, k); err != nil {
			return err
		}
	}
	r.recording = false
	return nil
}

// Play reads macro id back from nv and invokes emit for every stored
// (hidMods, code) pair up to the first all-zero entry, translating the
// stored keypair mods to HID mods the way emit_keycode expects.
func Play(nv storage.NV, base uint16, id uint8, emit func(hidMods, code uint8)) error {
	if id >= Max {
		return errors.Errorf(errors.MacroIndexOutOfRangeErr, id)
	}
	for c := uint8(0); c < Len; c++ {
		m, k, err := getChord(nv, base, id, c)
		if err != nil {
			return err
		}
		if m == 0 && k == 0 {
			break
		}
		emit(chord.KeypairModsToMods(chord.Mods(m)), k)
	}
	return nil
}

// holeIndices mirrors mcr_chrd's index arithmetic: given a macro id and
// chord position, it returns which entries of chord.FuncTableHoles hold the
// mods nibble and the keycode byte for that (id, c) pair, plus the
// sub-word offsets within each.
func holeIndices(id, c uint8) (modsWordIdx, modsNibbleIdx, keyWordIdx, keyByteIdx int, err error) {
	const (
		mods0WordIdx   = Len * Max / 2
		mods0NibbleIdx = (Len * Max / 2) % 4
	)
	linear := int(id)*Len + int(c)

	modsWordIdx = (mods0WordIdx*4 + mods0NibbleIdx + linear) / 4
	modsNibbleIdx = (mods0NibbleIdx + linear) % 4
	keyWordIdx = linear / 2
	keyByteIdx = linear % 2

	if modsWordIdx >= len(chord.FuncTableHoles) || keyWordIdx >= len(chord.FuncTableHoles) {
		return 0, 0, 0, 0, errors.Errorf(errors.MacroIndexOutOfRangeErr, id)
	}
	return modsWordIdx, modsNibbleIdx, keyWordIdx, keyByteIdx, nil
}

func holeAddr(base uint16, holeIdx int) uint16 {
	return base + uint16(chord.FuncTableHoles[holeIdx])
}

func getChord(nv storage.NV, base uint16, id, c uint8) (mods, code uint8, err error) {
	modsWordIdx, modsNibbleIdx, keyWordIdx, keyByteIdx, err := holeIndices(id, c)
	if err != nil {
		return 0, 0, err
	}

	modsWord, err := nv.ReadWord(holeAddr(base, modsWordIdx))
	if err != nil {
		return 0, 0, err
	}
	keyWord, err := nv.ReadWord(holeAddr(base, keyWordIdx))
	if err != nil {
		return 0, 0, err
	}

	mods = uint8((modsWord >> (uint(modsNibbleIdx) * 4)) & 0x0f)
	code = uint8((keyWord >> (uint(keyByteIdx) * 8)) & 0xff)
	return mods, code, nil
}

func putChord(nv storage.NV, base uint16, id, c, mods, code uint8) error {
	modsWordIdx, modsNibbleIdx, keyWordIdx, keyByteIdx, err := holeIndices(id, c)
	if err != nil {
		return err
	}

	modsWord, err := nv.ReadWord(holeAddr(base, modsWordIdx))
	if err != nil {
		return err
	}
	modsWord &^= 0x0f << (uint(modsNibbleIdx) * 4)
	modsWord |= uint16(mods&0x0f) << (uint(modsNibbleIdx) * 4)
	if err := nv.UpdateWord(holeAddr(base, modsWordIdx), modsWord); err != nil {
		return err
	}

	keyWord, err := nv.ReadWord(holeAddr(base, keyWordIdx))
	if err != nil {
		return err
	}
	keyWord &^= 0xff << (uint(keyByteIdx) * 8)
	keyWord |= uint16(code) << (uint(keyByteIdx) * 8)
	return nv.UpdateWord(holeAddr(base, keyWordIdx), keyWord)
}
