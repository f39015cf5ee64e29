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

// The handful of standard USB HID keyboard usage IDs the core itself needs
// to name directly: KeyA..KeyZ and Key1..Key0 for the printer's own output
// stream, and Enter/Space as filler for characters it can't otherwise
// render. Every other binding in the chord tables is an opaque uint8 the
// core never interprets.
const (
	KeyA         uint8 = 0x04
	Key1         uint8 = 0x1e
	Key0         uint8 = 0x27
	KeyEnter     uint8 = 0x28
	KeyEsc       uint8 = 0x29
	KeyBackspace uint8 = 0x2a
	KeyTab       uint8 = 0x2b
	KeySpace     uint8 = 0x2c
	KeyMinus     uint8 = 0x2d
	KeyDot       uint8 = 0x37
	KeyEnd       uint8 = 0x4d
	KeyPageUp    uint8 = 0x4b
	KeyPageDown  uint8 = 0x4e
	KeyHome      uint8 = 0x4a
	KeyRight     uint8 = 0x4f
	KeyLeft      uint8 = 0x50
	KeyDown      uint8 = 0x51
	KeyUp        uint8 = 0x52
	KeyDelete    uint8 = 0x4c
	KeyPadDiv    uint8 = 0x54
	KeyPadMul    uint8 = 0x55
	KeyPadMinus  uint8 = 0x56
	KeyPadPlus   uint8 = 0x57
	KeyPadEnter  uint8 = 0x58
	KeyPad1      uint8 = 0x59
	KeyPad0      uint8 = 0x62
	KeyPadDot    uint8 = 0x63
	KeyNone      uint8 = 0x00
)

// ASCIIToKeycode maps a lowercase-ASCII printing character to the HID
// keycode that types it with no modifier. Anything outside the small set
// the printer emits - lowercase letters, digits, newline, space, hyphen -
// falls back to KeySpace, matching the AVR firmware's strtocodes
// catch-all.
func ASCIIToKeycode(c byte) uint8 {
	switch {
	case c >= 'a' && c <= 'z':
		return KeyA + (c - 'a')
	case c >= '1' && c <= '9':
		return Key1 + (c - '1')
	case c == '0':
		return Key0
	case c == '\n':
		return KeyEnter
	case c == '-':
		return KeyMinus
	default:
		return KeySpace
	}
}

// IsPrintableLetterOrDigit reports whether code falls in the lowercase
// letter or digit range the printer is willing to embed literally (as
// opposed to rendering only its hex value and name).
func IsPrintableLetterOrDigit(code uint8) bool {
	return (code >= KeyA && code <= KeyA+25) || (code >= Key1 && code <= Key0)
}
