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

// Package led implements the 12-LED blink scheduler: every named LED group
// (see Set) can be driven through a blink Pattern, and the Scheduler's Tick
// advances every LED's independent on/off cycle using a 16-bit millisecond
// clock that wraps the way the AVR firmware's timer_elapsed does.
//
// The scheduler models "lit" as software state it owns, separate from
// whatever a PinDriver reports back - the AVR firmware read LED state from
// the port output register, which conflates "driven high" with "lit", and
// keeping our own bit lets tests observe blink behaviour without a real
// driver attached.
package led

import "github.com/trebb/nan15fw/errors"

// NumLEDs is the number of physical LEDs the scheduler drives.
const NumLEDs = 12

// Forever is the Cycles value meaning "blink indefinitely".
const Forever = 0xff

// Record is one LED's blink state: how long it stays on, how long it stays
// off, when it last flipped, and how many on-periods remain.
type Record struct {
	OnMS     uint8
	OffMS    uint8
	LastTick uint16
	Cycles   uint8
	lit      bool
}

// Lit reports whether the LED is currently considered on.
func (r Record) Lit() bool { return r.lit }

// PinDriver is the physical LED interface: 12 addressable LEDs, each
// independently switchable, with its own init step.
type PinDriver interface {
	Init() error
	On(i int) error
	Off(i int) error
}

// Scheduler owns the 12 Records and drives a PinDriver through their
// blink cycles on every Tick, one main-loop iteration at a time.
type Scheduler struct {
	records [NumLEDs]Record
	driver  PinDriver
}

// NewScheduler returns a Scheduler driving driver. A nil driver is valid -
// the scheduler still tracks Lit() state for tests, it just never calls
// out to hardware.
func NewScheduler(driver PinDriver) *Scheduler {
	return &Scheduler{driver: driver}
}

// Init initialises the underlying driver, if any.
func (s *Scheduler) Init() error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Init()
}

// Record returns a copy of LED i's current blink state.
func (s *Scheduler) Record(i int) (Record, error) {
	if i < 0 || i >= NumLEDs {
		return Record{}, errors.Errorf(errors.LEDIndexOutOfRangeErr, i)
	}
	return s.records[i], nil
}

// Set installs pattern on LED i outright, used by Blink for every member of
// a set. (The early/late init hooks light and clear LED 8 with On and Off
// instead.)
func (s *Scheduler) Set(i int, p Pattern) error {
	if i < 0 || i >= NumLEDs {
		return errors.Errorf(errors.LEDIndexOutOfRangeErr, i)
	}
	s.records[i].OnMS = p.OnMS
	s.records[i].OffMS = p.OffMS
	s.records[i].Cycles = p.Cycles
	return nil
}

// On immediately lights LED i and notifies the driver, without touching its
// blink pattern.
func (s *Scheduler) On(i int) error {
	if i < 0 || i >= NumLEDs {
		return errors.Errorf(errors.LEDIndexOutOfRangeErr, i)
	}
	s.records[i].lit = true
	if s.driver != nil {
		return s.driver.On(i)
	}
	return nil
}

// Off immediately darkens LED i and notifies the driver, without touching
// its blink pattern.
func (s *Scheduler) Off(i int) error {
	if i < 0 || i >= NumLEDs {
		return errors.Errorf(errors.LEDIndexOutOfRangeErr, i)
	}
	s.records[i].lit = false
	if s.driver != nil {
		return s.driver.Off(i)
	}
	return nil
}

// elapsed computes now-last as an unsigned 16-bit difference, which wraps
// correctly across the millisecond counter's overflow the same way the
// AVR firmware's timer_elapsed() does.
func elapsed(last, now uint16) uint16 {
	return now - last
}

// Tick advances every LED by one step of its blink cycle against now, a
// free-running millisecond clock. An LED currently lit turns off once its
// on-time has elapsed; an LED currently dark with cycles remaining turns on
// once its off-time has elapsed, consuming one cycle unless Cycles ==
// Forever.
func (s *Scheduler) Tick(now uint16) {
	for i := range s.records {
		r := &s.records[i]
		if r.lit {
			if elapsed(r.LastTick, now) > uint16(r.OnMS) {
				r.lit = false
				r.LastTick = now
				if s.driver != nil {
					s.driver.Off(i)
				}
			}
		} else if elapsed(r.LastTick, now) > uint16(r.OffMS) && r.Cycles > 0 {
			r.lit = true
			r.LastTick = now
			if r.Cycles != Forever {
				r.Cycles--
			}
			if s.driver != nil {
				s.driver.On(i)
			}
		}
	}
}
