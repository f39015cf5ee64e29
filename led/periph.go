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
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphDriver is the real hardware PinDriver backend: NumLEDs GPIO output
// pins, named by the host board's pin names, driven active-high. The
// physical pin mapping stays opaque to the Scheduler; resolving names to
// pins is periph.io/x/host's concern.
type PeriphDriver struct {
	pins [NumLEDs]gpio.PinIO
}

// NewPeriphDriver resolves names (length NumLEDs) to GPIO pins via
// gpioreg. It does not drive any pin until Init is called.
func NewPeriphDriver(names [NumLEDs]string) (*PeriphDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Errorf(errors.LEDUnknownSetErr, err)
	}

	d := &PeriphDriver{}
	for i, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, errors.Errorf(errors.LEDIndexOutOfRangeErr, name)
		}
		d.pins[i] = p
	}
	return d, nil
}

// Init drives every LED pin low (off).
func (d *PeriphDriver) Init() error {
	for i := range d.pins {
		if err := d.pins[i].Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

func (d *PeriphDriver) On(i int) error {
	return d.pins[i].Out(gpio.High)
}

func (d *PeriphDriver) Off(i int) error {
	return d.pins[i].Out(gpio.Low)
}
