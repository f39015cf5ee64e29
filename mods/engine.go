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

// Package mods is the modifier & emission engine: it turns a classified
// action.Action into calls against a hid.Bus, owning the one-shot-versus-
// toggle lifecycle of modifier keys and the "nothing to emit" condition the
// LED scheduler blinks a warning for.
package mods

import (
	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/hid"
)

// Engine applies dispatched actions to a hid.Bus.
type Engine struct {
	bus       hid.Bus
	noKeycode bool
}

// NewEngine returns an Engine writing through bus.
func NewEngine(bus hid.Bus) *Engine {
	return &Engine{bus: bus}
}

// Dispatch applies a to the underlying bus. Function and LayerMomentary
// actions are not this engine's concern - callers route those to the
// layer/function dispatch instead - and are silently ignored here.
func (e *Engine) Dispatch(a action.Action) {
	switch a.Kind() {
	case action.None:
		e.noKeycode = true

	case action.Mods:
		// a.Mods() is the 4-bit keypair encoding regardless of kind - the
		// packed wire format only ever reserves a nibble for it - so it
		// needs the AltGr-to-Right-Alt shuffle before it reaches the bus.
		e.emitKeycode(chord.KeypairModsToMods(chord.Mods(a.Mods())), a.Code())

	case action.ModsTap:
		hidMods := chord.KeypairModsToMods(chord.Mods(a.Mods()))
		switch a.Tap() {
		case action.OneShot:
			e.bus.AddWeakMods(hidMods)
			e.noKeycode = false
		case action.Toggle:
			e.toggle(hidMods)
			e.noKeycode = false
		}

	case action.Key:
		e.emitKeycode(0, a.Code())
	}
}

// EmitHID emits an already HID-translated modifier byte and keycode
// directly, bypassing the action.Action kind switch in Dispatch. The macro
// player uses this: a recorded (mods, code) pair already carries the exact
// bytes to re-emit and has no Action of its own to redispatch.
func (e *Engine) EmitHID(mods, code uint8) {
	e.emitKeycode(mods, code)
}

// emitKeycode is the emit_keycode equivalent: apply transient (weak) mods
// alongside a single keycode, flush the report, then release the keycode
// and weak mods while leaving any toggled modifiers in place. A zero
// keycode with no mods is the NO_KEYCODE condition: nothing to report, the
// LED scheduler should blink its warning pattern.
func (e *Engine) emitKeycode(mods, code uint8) {
	if code == 0 && mods == 0 {
		e.noKeycode = true
		return
	}
	e.noKeycode = false

	if mods != 0 {
		e.bus.AddWeakMods(mods)
	}
	if code != 0 {
		e.bus.AddKey(code)
	}
	e.bus.SendReport()
	e.bus.ClearKeyboardButMods()
}

// toggle XORs mods into the persistent modifier state and sends a
// mods-only report reflecting the change.
func (e *Engine) toggle(mods uint8) {
	if mods == 0 {
		return
	}
	on := e.bus.Mods() & mods
	if on != 0 {
		e.bus.DelMods(on)
	}
	if off := mods &^ on; off != 0 {
		e.bus.AddMods(off)
	}
	e.bus.SendReport()
}

// NoKeycodePending reports whether the last dispatched action had nothing
// to emit, the condition the LED scheduler's NO_KEYCODE blink set watches.
func (e *Engine) NoKeycodePending() bool {
	return e.noKeycode
}

// AckNoKeycode clears the NoKeycodePending latch once the LED scheduler (or
// a test) has observed it.
func (e *Engine) AckNoKeycode() {
	e.noKeycode = false
}
