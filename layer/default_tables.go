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

package layer

import (
	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/hid"
)

// toDefault is the bottom-left key of every secondary layer: pressing it
// requests a return to Default, which takes effect when this key is
// released.
func toDefault() action.Action {
	return action.NewFunction(action.FuncChangeLayer, uint8(Default))
}

func keyAction(code uint8) action.Action { return action.NewKey(code) }
func none() action.Action          { return action.NewNone() }

// macroPlay resolves to an action dispatching macro id through the macro
// player, the non-chord equivalent of a chord-triggered MCR_PLAY.
func macroPlay(id uint8) action.Action {
	return action.NewFunction(action.FuncMacroPlay, id)
}

// DefaultNumpad is the numpad layer: a digit block plus operators, with the
// bottom-left key returning to Default.
func DefaultNumpad() *Table {
	return &Table{
		{keyAction(hid.KeyPad1 + 6), keyAction(hid.KeyPad1 + 7), keyAction(hid.KeyPad1 + 8), keyAction(hid.KeyPadDiv)},
		{keyAction(hid.KeyPad1 + 3), keyAction(hid.KeyPad1 + 4), keyAction(hid.KeyPad1 + 5), keyAction(hid.KeyPadMul)},
		{keyAction(hid.KeyPad1 + 0), keyAction(hid.KeyPad1 + 1), keyAction(hid.KeyPad1 + 2), keyAction(hid.KeyPadMinus)},
		{toDefault(), none(), keyAction(hid.KeyPad0), keyAction(hid.KeyPadEnter)},
	}
}

// DefaultNav is the navigation layer: arrow keys around the center, paging
// and editing keys on the outer columns.
func DefaultNav() *Table {
	return &Table{
		{keyAction(hid.KeyHome), keyAction(hid.KeyUp), keyAction(hid.KeyPageUp), keyAction(hid.KeyDelete)},
		{keyAction(hid.KeyLeft), none(), keyAction(hid.KeyRight), keyAction(hid.KeyBackspace)},
		{keyAction(hid.KeyEnd), keyAction(hid.KeyDown), keyAction(hid.KeyPageDown), keyAction(hid.KeyTab)},
		{toDefault(), none(), none(), keyAction(hid.KeyEnter)},
	}
}

// DefaultMouse provides directional movement via the arrow-key codes this
// core already has names for. The AVR firmware's mouse layer drove
// dedicated HID mouse-report action codes (AC_MS_*); this core's hid.Bus
// boundary only models keyboard reports (see hid.Bus), so mouse button/
// movement emission is out of scope here and the layer degrades to
// keyboard-navigation substitutes instead of being dropped outright.
func DefaultMouse() *Table {
	return &Table{
		{none(), keyAction(hid.KeyUp), none(), none()},
		{keyAction(hid.KeyLeft), none(), keyAction(hid.KeyRight), none()},
		{none(), keyAction(hid.KeyDown), none(), none()},
		{toDefault(), none(), none(), none()},
	}
}

// DefaultMacroPad binds the first 8 macro slots directly to the top two
// rows. The third row is unbound, and the bottom row's only binding is the
// bottom-left key back to Default.
func DefaultMacroPad() *Table {
	return &Table{
		{macroPlay(0), macroPlay(1), macroPlay(2), macroPlay(3)},
		{macroPlay(4), macroPlay(5), macroPlay(6), macroPlay(7)},
		{none(), none(), none(), none()},
		{toDefault(), none(), none(), none()},
	}
}

// DefaultTables returns the registry of every secondary layer's table,
// keyed by ID, suitable for passing to NewRuntime.
func DefaultTables() map[ID]*Table {
	return map[ID]*Table{
		Numpad:   DefaultNumpad(),
		Nav:      DefaultNav(),
		Mouse:    DefaultMouse(),
		MacroPad: DefaultMacroPad(),
	}
}
