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

import (
	"os"
	"syscall"
)

// reportKeys is the number of keycode slots in a boot-protocol keyboard
// report.
const reportKeys = 6

// Gadget is a Bus writing 8-byte boot-protocol keyboard reports to a USB
// gadget HID device node (/dev/hidg0 on a configfs-configured host). The
// host's keyboard LED byte arrives as a 1-byte output report on the same
// node; Gadget polls for it non-blockingly so the main loop never stalls
// on a host that has nothing to say.
type Gadget struct {
	dev *os.File

	mods    uint8
	weak    uint8
	pending []uint8
	leds    LEDBits
}

// NewGadget opens the gadget device node at path for reading and writing.
func NewGadget(path string) (*Gadget, error) {
	dev, err := os.OpenFile(path, os.O_RDWR|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	return &Gadget{dev: dev}, nil
}

// Close releases the device node.
func (g *Gadget) Close() error {
	return g.dev.Close()
}

func (g *Gadget) AddKey(code uint8) {
	if code == 0 || len(g.pending) >= reportKeys {
		return
	}
	g.pending = append(g.pending, code)
}

func (g *Gadget) AddMods(mods uint8)     { g.mods |= mods }
func (g *Gadget) DelMods(mods uint8)     { g.mods &^= mods }
func (g *Gadget) AddWeakMods(mods uint8) { g.weak |= mods }
func (g *Gadget) Mods() uint8            { return g.mods }
func (g *Gadget) WeakMods() uint8        { return g.weak }
func (g *Gadget) SetMods(mods uint8)     { g.mods = mods }
func (g *Gadget) SetWeakMods(mods uint8) { g.weak = mods }

func (g *Gadget) ClearKeyboard() {
	g.pending = g.pending[:0]
	g.mods = 0
	g.weak = 0
}

func (g *Gadget) ClearKeyboardButMods() {
	g.pending = g.pending[:0]
	g.weak = 0
}

// SendReport flushes the pending report: modifier byte, reserved byte, six
// keycode slots (zero-padded). Write errors are swallowed - the device
// stays responsive even if the host has gone away, which is the same
// degrade-to-nothing behaviour every other error path in the core has.
func (g *Gadget) SendReport() {
	var rep [8]uint8
	rep[0] = g.mods | g.weak
	for i, code := range g.pending {
		rep[2+i] = code
	}
	_, _ = g.dev.Write(rep[:])
}

// HostKeyboardLEDs drains any pending 1-byte output report and returns the
// most recent LED byte the host has sent.
func (g *Gadget) HostKeyboardLEDs() LEDBits {
	var b [1]uint8
	for {
		n, err := g.dev.Read(b[:])
		if n != 1 || err != nil {
			break
		}
		g.leds = LEDBits(b[0])
	}
	return g.leds
}
