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

package keyboard_test

import (
	"testing"

	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/hid"
	"github.com/trebb/nan15fw/keyboard"
	"github.com/trebb/nan15fw/layer"
	"github.com/trebb/nan15fw/led"
	"github.com/trebb/nan15fw/matrix"
	"github.com/trebb/nan15fw/storage"
	"github.com/trebb/nan15fw/test"
)

const (
	keyE = uint8(0x08)
	keyF = uint8(0x09)

	fingerBase = uint16(0)
	funcBase   = uint16(chord.FingerTableWords)
	nvWords    = int(funcBase) + chord.FuncTableWords
)

// thumb row key positions, matching the physical column wiring: right
// function key, gap, shift, left function key.
const (
	thumbRow     = 3
	thumbColRFn  = 0
	thumbColSft  = 2
	thumbColLFn  = 3
	fingerRowOne = 0
)

type harness struct {
	core *keyboard.Core
	bus  *hid.Mock
	nv   *storage.Mock
	pins *matrix.MockPins
	ft   *chord.FingerTable
	fnt  *chord.FuncTable
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ft := chord.DefaultFingerTable()
	// chrdmap[0x05] is the classic two-key "E" chord: KEYPAIR(No, E, Sh, E)
	ft[0x05] = chord.Keypair{CodeLo: keyE, ModsUp: chord.ModLShift, CodeUp: keyE}
	ft[0x50] = chord.Keypair{CodeLo: keyF, ModsUp: chord.ModLShift, CodeUp: keyF}
	ft[0x01] = chord.Keypair{CodeLo: hid.KeyA, ModsUp: chord.ModLShift, CodeUp: hid.KeyA}

	fnt := chord.DefaultFuncTable()
	// left-hand function chord, row 2 col 1: one-shot LCtrl
	fnt[0x22] = action.NewModsTap(uint8(chord.ModLCtrl), action.OneShot)
	// left-hand function chord, row 2 col 0: toggled LShift
	fnt[0x21] = action.NewModsTap(uint8(chord.ModLShift), action.Toggle)
	// left-hand function chord, row 1 cols 0+1: play/commit macro 0
	fnt[0x13] = action.NewFunction(action.FuncMacroPlay, 0)

	tt := chord.DefaultThumbTable()

	bus := hid.NewMock()
	nv := storage.NewMock(nvWords)
	pins := matrix.NewMockPins()

	h := &harness{
		bus:  bus,
		nv:   nv,
		pins: pins,
		ft:   &ft,
		fnt:  &fnt,
	}
	h.core = keyboard.NewCore(bus, pins, led.NewMockDriver(), nv,
		fingerBase, funcBase, &ft, &fnt, &tt, layer.DefaultTables(), nil)
	return h
}

// tap presses then releases the given (row, col) positions as one burst,
// feeding the matrix-change hook directly the way a settled debounce pass
// would.
func (h *harness) tap(t *testing.T, keys ...[2]int) {
	t.Helper()
	for _, k := range keys {
		test.ExpectSuccess(t, h.core.HookMatrixChange(k[0], k[1], true))
	}
	for _, k := range keys {
		test.ExpectSuccess(t, h.core.HookMatrixChange(k[0], k[1], false))
	}
}

func (h *harness) ledRecord(t *testing.T, i int) led.Record {
	t.Helper()
	r, err := h.core.LEDs().Record(i)
	test.ExpectSuccess(t, err)
	return r
}

func TestPlainLetterChord(t *testing.T) {
	h := newHarness(t)

	// keys at chord rows 1, columns 0 and 1 accumulate fng 0x05
	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})

	test.Equate(t, len(h.bus.Reports), 1)
	test.Equate(t, h.bus.LastReport(), hid.Report{Mods: 0, Keys: []uint8{keyE}})
}

func TestShiftedLetterChord(t *testing.T) {
	h := newHarness(t)

	h.tap(t,
		[2]int{thumbRow, thumbColSft},
		[2]int{fingerRowOne, 0},
		[2]int{fingerRowOne, 1})

	test.Equate(t, len(h.bus.Reports), 1)
	test.Equate(t, h.bus.LastReport(), hid.Report{Mods: 0x02, Keys: []uint8{keyE}})
}

func TestOneShotModifierThenLetter(t *testing.T) {
	h := newHarness(t)

	// left thumb fn + row-2 col-1 chord arms a one-shot LCtrl; no report
	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{1, 1})
	test.Equate(t, len(h.bus.Reports), 0)
	test.Equate(t, h.bus.WeakMods(), uint8(0x01))

	// the next letter carries the one-shot modifier, which then clears
	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	test.Equate(t, h.bus.LastReport(), hid.Report{Mods: 0x01, Keys: []uint8{keyE}})
	test.Equate(t, h.bus.WeakMods(), uint8(0))

	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	test.Equate(t, h.bus.LastReport(), hid.Report{Mods: 0, Keys: []uint8{keyE}})
}

func TestToggledModifierPersists(t *testing.T) {
	h := newHarness(t)

	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{1, 0})
	test.Equate(t, h.bus.Mods(), uint8(0x02))

	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	test.Equate(t, h.bus.LastReport(), hid.Report{Mods: 0x02, Keys: []uint8{keyE}})

	// toggling again clears it
	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{1, 0})
	test.Equate(t, h.bus.Mods(), uint8(0))
}

func TestSwapTwoFingerChords(t *testing.T) {
	h := newHarness(t)

	// thumb left fn + shift arms the swap editor
	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{thumbRow, thumbColSft})

	// first chord: 0x05 (E); second chord: 0x50 (F); both at lower level
	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	h.tap(t, [2]int{fingerRowOne, 2}, [2]int{fingerRowOne, 3})

	test.Equate(t, h.ft[0x05].CodeLo, keyF)
	test.Equate(t, h.ft[0x50].CodeLo, keyE)

	// the swapped table was persisted cell by cell
	lo, err := h.nv.ReadWord(fingerBase + 2*0x05)
	test.ExpectSuccess(t, err)
	test.Equate(t, uint8(lo), keyF)

	// the selection chords themselves emitted nothing
	test.Equate(t, len(h.bus.Reports), 0)

	// pressing the first chord now yields the second's keycode
	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	test.Equate(t, h.bus.LastReport(), hid.Report{Mods: 0, Keys: []uint8{keyF}})
}

func TestSwapRejectsKindMismatch(t *testing.T) {
	h := newHarness(t)

	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{thumbRow, thumbColSft})

	// finger chord then function chord: cancelled, nothing swapped
	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{1, 1})

	test.Equate(t, h.ft[0x05].CodeLo, keyE)

	// error blink on the second-selection LED set
	r := h.ledRecord(t, 2)
	test.Equate(t, r.OnMS, uint8(10))
	test.Equate(t, r.Cycles, uint8(10))
}

func TestMacroRecordAndPlayback(t *testing.T) {
	h := newHarness(t)

	// both thumb function keys arm the recorder
	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{thumbRow, thumbColRFn})

	// record E then F; both still emit normally while recording
	h.tap(t, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	h.tap(t, [2]int{fingerRowOne, 2}, [2]int{fingerRowOne, 3})
	test.Equate(t, len(h.bus.Reports), 2)

	// the macro-play chord commits the recording
	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	test.ExpectFailure(t, h.core.Macros().Recording())

	// playing it back emits one stored chord per main-loop tick
	h.tap(t, [2]int{thumbRow, thumbColLFn}, [2]int{fingerRowOne, 0}, [2]int{fingerRowOne, 1})
	test.Equate(t, len(h.bus.Reports), 2)

	test.ExpectSuccess(t, h.core.Tick(1))
	test.Equate(t, len(h.bus.Reports), 3)
	test.ExpectSuccess(t, h.core.Tick(2))
	test.Equate(t, len(h.bus.Reports), 4)
	test.ExpectSuccess(t, h.core.Tick(3))
	test.Equate(t, len(h.bus.Reports), 4)

	test.Equate(t, h.bus.Reports[2].Keys, []uint8{keyE})
	test.Equate(t, h.bus.Reports[3].Keys, []uint8{keyF})
}

func TestUnmappedChordBlinksWarning(t *testing.T) {
	h := newHarness(t)

	// chord row 3, column 0 only: nothing mapped at chrdmap[0x03]
	h.tap(t, [2]int{2, 0})

	test.Equate(t, len(h.bus.Reports), 0)

	r := h.ledRecord(t, 0)
	test.Equate(t, r.OnMS, uint8(10))
	test.Equate(t, r.OffMS, uint8(40))
	test.Equate(t, r.Cycles, uint8(3))
}

func TestLayerChangeDeferredUntilRelease(t *testing.T) {
	h := newHarness(t)
	h.fnt[0x11] = action.NewFunction(action.FuncChangeLayer, uint8(layer.Numpad))

	// left thumb fn + row-1 col-0: request the numpad layer
	test.ExpectSuccess(t, h.core.HookMatrixChange(thumbRow, thumbColLFn, true))
	test.ExpectSuccess(t, h.core.HookMatrixChange(fingerRowOne, 0, true))

	// dispatch happens on the first release, but the layer holds until the
	// whole chord is up
	test.ExpectSuccess(t, h.core.HookMatrixChange(fingerRowOne, 0, false))
	test.Equate(t, h.core.Layers().Current(), layer.Default)

	test.ExpectSuccess(t, h.core.HookMatrixChange(thumbRow, thumbColLFn, false))
	test.Equate(t, h.core.Layers().Current(), layer.Numpad)

	// on the numpad layer keys resolve directly, no chording
	h.tap(t, [2]int{0, 0})
	test.Equate(t, h.bus.LastReport().Keys, []uint8{hid.KeyPad1 + 6})

	// bottom-left returns to the default layer on release
	h.tap(t, [2]int{3, 0})
	test.Equate(t, h.core.Layers().Current(), layer.Default)
}

func TestScanDebounceDrivesChord(t *testing.T) {
	h := newHarness(t)

	h.pins.Pressed[fingerRowOne][0] = true
	h.pins.Pressed[fingerRowOne][1] = true
	for i := 0; i < matrix.Debounce+1; i++ {
		test.ExpectSuccess(t, h.core.Tick(uint16(i)))
	}
	test.Equate(t, len(h.bus.Reports), 0)

	h.pins.Pressed[fingerRowOne][0] = false
	h.pins.Pressed[fingerRowOne][1] = false
	for i := 0; i < matrix.Debounce+1; i++ {
		test.ExpectSuccess(t, h.core.Tick(uint16(10+i)))
	}

	test.Equate(t, len(h.bus.Reports), 1)
	test.Equate(t, h.bus.LastReport(), hid.Report{Mods: 0, Keys: []uint8{keyE}})
}

func TestResetCancelsEverything(t *testing.T) {
	h := newHarness(t)

	// start a print, then reset via all three thumb keys
	h.tap(t, [2]int{thumbRow, thumbColRFn}, [2]int{thumbRow, thumbColSft})
	test.ExpectSuccess(t, h.core.Printer().Active())

	h.tap(t,
		[2]int{thumbRow, thumbColLFn},
		[2]int{thumbRow, thumbColSft},
		[2]int{thumbRow, thumbColRFn})

	// the cancelled printer drains through Done to Idle on the next tick,
	// without flushing any partial line
	test.ExpectSuccess(t, h.core.Tick(1))
	test.ExpectFailure(t, h.core.Printer().Active())
	test.Equate(t, len(h.bus.Reports), 0)
}
