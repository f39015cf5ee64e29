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

package mods_test

import (
	"testing"

	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/hid"
	"github.com/trebb/nan15fw/mods"
	"github.com/trebb/nan15fw/test"
)

func TestDispatchPlainKey(t *testing.T) {
	bus := hid.NewMock()
	e := mods.NewEngine(bus)

	e.Dispatch(action.NewKey(0x04))

	report := bus.LastReport()
	test.Equate(t, report.Keys, []uint8{0x04})
	test.ExpectFailure(t, e.NoKeycodePending())
}

func TestDispatchModsWithCodeAppliesWeakMods(t *testing.T) {
	bus := hid.NewMock()
	e := mods.NewEngine(bus)

	e.Dispatch(action.NewMods(0x02, 0x04)) // LShift + 'a'

	report := bus.LastReport()
	test.Equate(t, report.Mods, uint8(0x02))
	test.Equate(t, report.Keys, []uint8{0x04})

	// weak mods are released after the report
	test.Equate(t, bus.WeakMods(), uint8(0))
}

func TestDispatchEmptyModsIsNoKeycode(t *testing.T) {
	bus := hid.NewMock()
	e := mods.NewEngine(bus)

	e.Dispatch(action.NewMods(0, 0))
	test.ExpectSuccess(t, e.NoKeycodePending())
}

func TestDispatchOneShotModsAppliesToNextKey(t *testing.T) {
	bus := hid.NewMock()
	e := mods.NewEngine(bus)

	e.Dispatch(action.NewModsTap(0b0010, action.OneShot)) // LShift one-shot
	test.Equate(t, bus.WeakMods(), chordShiftHID(t))

	e.Dispatch(action.NewKey(0x04))
	report := bus.LastReport()
	test.Equate(t, report.Mods, chordShiftHID(t))
	test.Equate(t, bus.WeakMods(), uint8(0))
}

func TestDispatchToggleSurvivesClearButMods(t *testing.T) {
	bus := hid.NewMock()
	e := mods.NewEngine(bus)

	e.Dispatch(action.NewModsTap(0b0001, action.Toggle)) // LCtrl toggled on
	test.Equate(t, bus.Mods(), uint8(0x01))

	e.Dispatch(action.NewKey(0x04))
	report := bus.LastReport()
	test.Equate(t, report.Mods, uint8(0x01))

	// toggling again turns it back off
	e.Dispatch(action.NewModsTap(0b0001, action.Toggle))
	test.Equate(t, bus.Mods(), uint8(0))
}

// chordShiftHID mirrors the keypair-mods-to-HID-mods mapping for the
// LShift bit used in these tests, kept local so this test doesn't need to
// import the chord package just to mirror one constant bit position.
func chordShiftHID(t *testing.T) uint8 {
	t.Helper()
	return 0b0010
}
