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

// Package action defines the 16-bit tagged action union looked up from a
// layer's key table or a chord's function table. An Action is a sum type: a
// 4-bit Kind discriminator plus a kind-specific payload. Callers never see
// the packed bit layout directly - they build Actions with the New*
// constructors and read them back with the Kind-specific accessors.
package action

import "github.com/trebb/nan15fw/errors"

// Kind discriminates the payload carried by an Action.
type Kind uint8

const (
	// None is the zero value: no action bound to this slot.
	None Kind = iota

	// Mods reports a fixed HID modifier set plus an optional keycode,
	// used for the thumb-chord-only and plain finger-chord paths.
	Mods

	// ModsTap carries a modifier nibble and a Tap selecting one-shot or
	// toggle semantics. No keycode is emitted for this kind.
	ModsTap

	// Key is a plain keycode with no modifiers, used by the secondary
	// (non-chord) layers.
	Key

	// Function dispatches one of the chord functions (swap, print,
	// macro record, reset, layer change, macro play, layer-momentary).
	Function

	// LayerMomentary holds a sublayer active only while the key is held.
	LayerMomentary
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Mods:
		return "mods"
	case ModsTap:
		return "mods-tap"
	case Key:
		return "key"
	case Function:
		return "function"
	case LayerMomentary:
		return "layer-momentary"
	default:
		return "unknown"
	}
}

// Tap distinguishes one-shot from toggled modifier application. It is only
// meaningful for Kind == ModsTap.
type Tap uint8

const (
	// OneShot mods apply to exactly the next reported keycode and are then
	// cleared automatically.
	OneShot Tap = iota
	// Toggle mods are XORed into the persistent modifier state and remain
	// until toggled off again.
	Toggle
)

// FuncID enumerates the chord functions dispatchable via Kind Function. It
// mirrors the func_id values of the AVR firmware's action_function().
type FuncID uint8

const (
	FuncChangeLayer FuncID = iota
	FuncSwapChords
	FuncMacroRecord
	FuncPrint
	FuncReset
	FuncMacroPlay
	FuncFingerChord
	FuncThumbChord
)

func (f FuncID) String() string {
	switch f {
	case FuncChangeLayer:
		return "change-layer"
	case FuncSwapChords:
		return "swap-chords"
	case FuncMacroRecord:
		return "macro-record"
	case FuncPrint:
		return "print"
	case FuncReset:
		return "reset"
	case FuncMacroPlay:
		return "macro-play"
	case FuncFingerChord:
		return "finger-chord"
	case FuncThumbChord:
		return "thumb-chord"
	default:
		return "unknown"
	}
}

// Action is the 16-bit tagged action union. The zero value is a valid
// "no action bound" value (Kind == None).
type Action struct {
	kind    Kind
	mods    uint8 // 4-bit keypair mods
	code    uint8 // HID keycode, for Mods and Key
	tap     Tap
	funcID  FuncID
	opt     uint8 // 8-bit function parameter
	layerID uint8 // sublayer id, for LayerMomentary
}

// NewNone returns the empty action.
func NewNone() Action {
	return Action{kind: None}
}

// NewMods returns a Mods action: a fixed modifier set applied alongside an
// (optional) keycode.
func NewMods(mods, code uint8) Action {
	return Action{kind: Mods, mods: mods & 0x0f, code: code}
}

// NewModsTap returns a ModsTap action carrying a modifier nibble and its tap
// semantics (one-shot or toggle). No keycode is ever carried by this kind.
func NewModsTap(mods uint8, tap Tap) Action {
	return Action{kind: ModsTap, mods: mods & 0x0f, tap: tap}
}

// NewKey returns a plain keycode action with no modifiers, for secondary
// (non-chord) layer bindings.
func NewKey(code uint8) Action {
	return Action{kind: Key, code: code}
}

// NewFunction returns a Function action dispatching funcID with an 8-bit
// parameter.
func NewFunction(funcID FuncID, opt uint8) Action {
	return Action{kind: Function, funcID: funcID, opt: opt}
}

// NewLayerMomentary returns an action that holds layerID active only while
// the originating key is pressed.
func NewLayerMomentary(layerID uint8) Action {
	return Action{kind: LayerMomentary, layerID: layerID}
}

// Kind returns the action's discriminator.
func (a Action) Kind() Kind { return a.kind }

// Mods returns the 4-bit keypair modifier nibble. Valid for Mods and
// ModsTap.
func (a Action) Mods() uint8 { return a.mods }

// Code returns the HID keycode. Valid for Mods and Key.
func (a Action) Code() uint8 { return a.code }

// Tap returns the one-shot/toggle discriminator. Valid for ModsTap.
func (a Action) Tap() Tap { return a.tap }

// FuncID returns the dispatched chord function. Valid for Function.
func (a Action) FuncID() FuncID { return a.funcID }

// Opt returns the function's 8-bit parameter. Valid for Function.
func (a Action) Opt() uint8 { return a.opt }

// LayerID returns the sublayer held active. Valid for LayerMomentary.
func (a Action) LayerID() uint8 { return a.layerID }

// IsEmpty reports whether the action carries no keycode and no modifiers -
// the chord-engine's definition of "unmapped".
func (a Action) IsEmpty() bool {
	return a.kind == None || (a.kind == Mods && a.mods == 0 && a.code == 0)
}

// Pack encodes the action into its wire form: a 4-bit kind tag in bits
// 12-15, and up to 12 bits of kind-specific payload below it. This matches
// the 16-bit packed representation the AVR firmware tables use, so
// that persisted tables (see the storage and snapshot packages) have a
// single stable encoding regardless of which Kind a given cell holds.
func Pack(a Action) uint16 {
	var payload uint16
	switch a.kind {
	case Mods:
		payload = uint16(a.mods)<<8 | uint16(a.code)
	case ModsTap:
		payload = uint16(a.mods)<<8 | uint16(a.tap)
	case Key:
		payload = uint16(a.code)
	case Function:
		payload = uint16(a.funcID)<<8 | uint16(a.opt)
	case LayerMomentary:
		payload = uint16(a.layerID)
	}
	return uint16(a.kind)<<12 | (payload & 0x0fff)
}

// Unpack decodes a 16-bit wire value produced by Pack back into an Action.
func Unpack(w uint16) (Action, error) {
	kind := Kind(w >> 12)
	payload := w & 0x0fff

	switch kind {
	case None:
		return NewNone(), nil
	case Mods:
		return NewMods(uint8(payload>>8), uint8(payload)), nil
	case ModsTap:
		return NewModsTap(uint8(payload>>8), Tap(payload&0xff)), nil
	case Key:
		return NewKey(uint8(payload)), nil
	case Function:
		return NewFunction(FuncID(payload>>8), uint8(payload)), nil
	case LayerMomentary:
		return NewLayerMomentary(uint8(payload)), nil
	default:
		return Action{}, errors.Errorf(errors.ActionUnknownKindErr, kind)
	}
}
