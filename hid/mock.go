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

package hid

// Report is a single flushed HID keyboard report: the modifier byte in
// effect (persistent OR weak) and the ordered, non-zero keycodes sent with
// it.
type Report struct {
	Mods uint8
	Keys []uint8
}

// Mock is an in-memory Bus used by tests. It records every flushed report so test code can assert on the
// exact sequence the engine produced.
type Mock struct {
	mods    uint8
	weak    uint8
	pending []uint8
	leds    LEDBits
	Reports []Report
}

// NewMock creates an empty Mock bus.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) AddKey(code uint8) {
	if code == 0 {
		return
	}
	m.pending = append(m.pending, code)
}

func (m *Mock) AddMods(mods uint8)     { m.mods |= mods }
func (m *Mock) DelMods(mods uint8)     { m.mods &^= mods }
func (m *Mock) AddWeakMods(mods uint8) { m.weak |= mods }
func (m *Mock) Mods() uint8            { return m.mods }
func (m *Mock) WeakMods() uint8        { return m.weak }
func (m *Mock) SetMods(mods uint8)     { m.mods = mods }
func (m *Mock) SetWeakMods(mods uint8) { m.weak = mods }

func (m *Mock) ClearKeyboard() {
	m.pending = nil
	m.mods = 0
	m.weak = 0
}

func (m *Mock) ClearKeyboardButMods() {
	m.pending = nil
	m.weak = 0
}

func (m *Mock) SendReport() {
	keys := make([]uint8, len(m.pending))
	copy(keys, m.pending)
	m.Reports = append(m.Reports, Report{
		Mods: m.mods | m.weak,
		Keys: keys,
	})
}

// SetHostKeyboardLEDs lets a test simulate the host toggling NumLock,
// CapsLock or ScrollLock.
func (m *Mock) SetHostKeyboardLEDs(bits LEDBits) { m.leds = bits }

func (m *Mock) HostKeyboardLEDs() LEDBits { return m.leds }

// LastReport returns the most recently flushed report, or the zero value if
// none has been sent yet.
func (m *Mock) LastReport() Report {
	if len(m.Reports) == 0 {
		return Report{}
	}
	return m.Reports[len(m.Reports)-1]
}
