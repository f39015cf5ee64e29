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

package led

import (
	"github.com/trebb/nan15fw/errors"
	"github.com/trebb/nan15fw/hid"
)

// Set names one of the physical-LED groupings the rest of the core blinks
// as a unit. The LED indices each maps to are verbatim from the AVR
// firmware's ledsets table and its physical layout comment (mirrored
// corner-to-corner around the 4x4 matrix).
type Set uint8

const (
	SetNoKeycode Set = iota
	SetNumLock
	SetScrollLock
	SetSft
	SetCtl
	SetAlt
	SetGui
	SetAllMods
	SetChgLayer
	SetSwapFirst
	SetSwapSecond
	SetRecordMcr
	SetPrint
	SetReset
)

var setMembers = map[Set][]int{
	SetNoKeycode:  {0, 1, 8},
	SetNumLock:    {6},
	SetScrollLock: {7},
	SetSft:        {5},
	SetCtl:        {4, 9},
	SetAlt:        {3, 10},
	SetGui:        {2, 11},
	SetAllMods:    {2, 3, 4, 5, 9, 10, 11},
	SetChgLayer:   {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	SetSwapFirst:  {4, 9},
	SetSwapSecond: {2, 11},
	SetRecordMcr:  {0, 1, 8},
	SetPrint:      {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	SetReset:      {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

// Pattern is an (on-ms, off-ms, cycles) blink tuple. The named Patterns
// below are verbatim from the AVR firmware's BLINK_* macros.
type Pattern struct {
	OnMS, OffMS, Cycles uint8
}

var (
	PatternWaiting            = Pattern{50, 50, Forever}
	PatternStop               = Pattern{0, 0, 0}
	PatternWarning            = Pattern{10, 40, 3}
	PatternMcrWarning         = Pattern{10, 40, Forever}
	PatternError              = Pattern{10, 40, 10}
	PatternOK                 = Pattern{200, 0, 2}
	PatternReset              = Pattern{10, 0, 1}
	PatternSteady             = Pattern{250, 0, Forever}
	PatternOneShotMods        = Pattern{200, 20, Forever}
	PatternReverseOneShotMods = Pattern{20, 200, Forever}
	PatternToggledMods        = PatternSteady
	PatternChgLayer           = Pattern{250, 0, 1}
)

// Blink applies pattern to every LED belonging to set.
func (s *Scheduler) Blink(set Set, pattern Pattern) error {
	members, ok := setMembers[set]
	if !ok {
		return errors.Errorf(errors.LEDUnknownSetErr, set)
	}
	for _, i := range members {
		if err := s.Set(i, pattern); err != nil {
			return err
		}
	}
	return nil
}

// ModsSource is the narrow slice of hid.Bus that BlinkMods reads to decide
// which modifier LEDs should be steady, pulsing, or off. It also reads the
// host's reported keyboard LED byte to drive NumLock/ScrollLock/CapsLock
// and to pick between the ordinary and reversed one-shot-shift patterns.
type ModsSource interface {
	Mods() uint8
	WeakMods() uint8
}

// BlinkMods is the blink_mods equivalent: it inspects persistent and
// one-shot modifier state plus the host LED byte and applies the pattern
// that best represents each modifier's current status. Ctrl/Alt/Gui follow
// the plain toggled-vs-one-shot rule; Shift additionally distinguishes
// CapsLock being active, inverting its one-shot pulse in that case so a
// "shift this letter down" one-shot still reads visually distinct from
// "shift is already on via CapsLock".
func (s *Scheduler) BlinkMods(bus ModsSource, hostLEDs hid.LEDBits) error {
	// Fold right-side modifier bits (upper nibble) down onto the left-side
	// ones: the LED sets don't distinguish which hand wore the modifier.
	m := bus.Mods()
	wm := bus.WeakMods() &^ m
	m = m>>4 | (m & 0x0f)
	wm = wm>>4 | (wm & 0x0f)

	const (
		ctl = 0x01
		sft = 0x02
		alt = 0x04
		gui = 0x08
	)
	capsLock := hostLEDs&hid.LEDCapsLock != 0

	blinkToggle := func(set Set, persistent, weak bool) error {
		if persistent {
			if err := s.Blink(set, PatternToggledMods); err != nil {
				return err
			}
		} else if err := s.Blink(set, PatternStop); err != nil {
			return err
		}
		if weak {
			return s.Blink(set, PatternOneShotMods)
		}
		return nil
	}

	if err := blinkToggle(SetAlt, m&alt != 0, wm&alt != 0); err != nil {
		return err
	}
	if err := blinkToggle(SetGui, m&gui != 0, wm&gui != 0); err != nil {
		return err
	}
	if err := blinkToggle(SetCtl, m&ctl != 0, wm&ctl != 0); err != nil {
		return err
	}

	sftOn := m&sft != 0
	sftWeak := wm&sft != 0
	switch {
	case (sftOn && capsLock) || (!sftOn && !capsLock):
		if sftWeak {
			if err := s.Blink(SetSft, PatternOneShotMods); err != nil {
				return err
			}
		} else if err := s.Blink(SetSft, PatternStop); err != nil {
			return err
		}
	case sftOn && !capsLock:
		if err := s.Blink(SetSft, PatternToggledMods); err != nil {
			return err
		}
	case !sftOn && capsLock:
		if sftWeak {
			if err := s.Blink(SetSft, PatternReverseOneShotMods); err != nil {
				return err
			}
		} else if err := s.Blink(SetSft, PatternToggledMods); err != nil {
			return err
		}
	}

	if hostLEDs&hid.LEDNumLock != 0 {
		if err := s.Blink(SetNumLock, PatternSteady); err != nil {
			return err
		}
	} else if err := s.Blink(SetNumLock, PatternStop); err != nil {
		return err
	}
	if hostLEDs&hid.LEDScrollLock != 0 {
		return s.Blink(SetScrollLock, PatternSteady)
	}
	return s.Blink(SetScrollLock, PatternStop)
}
