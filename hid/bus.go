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

// Package hid defines the narrow interface the chord engine uses to build
// and flush HID keyboard reports, and to learn the host's keyboard LED
// state. It is the HID transport boundary: the engine only ever sees this
// interface, never a concrete USB stack.
//
// The split mirrors the bus package of a memory-mapped emulator: a
// CPU-facing Bus for the normal read/write path, and a narrower
// DebuggerBus-style affordance (here, LEDBus) for state a debugger or test
// harness peeks at without it being part of the write path itself.
package hid

// LEDBits is the bit layout returned by a LEDBus: bit 0 NumLock, bit 1
// CapsLock, bit 2 ScrollLock.
type LEDBits uint8

const (
	LEDNumLock LEDBits = 1 << iota
	LEDCapsLock
	LEDScrollLock
)

// Bus is the keyboard report assembly surface the chord engine writes
// through. Implementations buffer a report key-by-key and flush it with
// SendReport; AddWeakMods/ClearKeyboardButMods implement the one-shot modifier
// lifecycle the mods package's emission engine relies on.
type Bus interface {
	// AddKey appends a keycode to the pending report. A zero code is a
	// no-op placeholder, matching HID's "no more keys" padding.
	AddKey(code uint8)

	// AddMods ORs mods into the persistent (toggled) modifier state.
	AddMods(mods uint8)

	// DelMods clears mods from the persistent modifier state.
	DelMods(mods uint8)

	// AddWeakMods ORs mods into the one-shot modifier state, which is
	// cleared by ClearKeyboardButMods after the next SendReport.
	AddWeakMods(mods uint8)

	// Mods returns the current persistent modifier byte.
	Mods() uint8

	// WeakMods returns the current one-shot modifier byte.
	WeakMods() uint8

	// SetMods replaces the persistent modifier byte outright.
	SetMods(mods uint8)

	// SetWeakMods replaces the one-shot modifier byte outright.
	SetWeakMods(mods uint8)

	// ClearKeyboard clears every key and every modifier, pending and sent.
	ClearKeyboard()

	// ClearKeyboardButMods clears pending keys and the weak (one-shot)
	// modifiers, leaving persistent (toggled) modifiers untouched.
	ClearKeyboardButMods()

	// SendReport flushes the pending report to the host.
	SendReport()
}

// LEDBus exposes the host-reported keyboard LED byte, read by the LED
// scheduler's blink_mods equivalent to distinguish CapsLock-dependent
// modifier blink patterns.
type LEDBus interface {
	HostKeyboardLEDs() LEDBits
}
