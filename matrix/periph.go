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

package matrix

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/trebb/nan15fw/errors"
	"github.com/trebb/nan15fw/hardware/clocks"
)

// PeriphPins is the real hardware Pins backend: Cols column-strobe output
// pins (driven low to select, high-Z otherwise, matching the AVR
// firmware's unselect_cols/select_col) and Rows row-sense input pins read
// with an internal pull-up, active-low.
type PeriphPins struct {
	cols [Cols]gpio.PinIO
	rows [Rows]gpio.PinIO
}

// NewPeriphPins resolves colNames and rowNames to GPIO pins via gpioreg.
func NewPeriphPins(colNames [Cols]string, rowNames [Rows]string) (*PeriphPins, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	p := &PeriphPins{}
	for i, name := range colNames {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, errors.Errorf(errors.MatrixPinNotFoundErr, name)
		}
		p.cols[i] = pin
	}
	for i, name := range rowNames {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, errors.Errorf(errors.MatrixPinNotFoundErr, name)
		}
		p.rows[i] = pin
	}
	return p, nil
}

// Init configures row pins as pull-up inputs and leaves every column
// unselected.
func (p *PeriphPins) Init() error {
	for _, r := range p.rows {
		if err := r.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return err
		}
	}
	return p.UnselectCols()
}

// UnselectCols drives every column pin high-Z (input, no pull), matching
// the AVR firmware's "Hi-Z to unselect" comment.
func (p *PeriphPins) UnselectCols() error {
	for _, c := range p.cols {
		if err := c.In(gpio.Float, gpio.NoEdge); err != nil {
			return err
		}
	}
	return nil
}

// SelectCol drives column col low, leaving the rest untouched (the caller
// always unselects all columns between strobes), then waits for the line
// to settle before the rows are sampled.
func (p *PeriphPins) SelectCol(col int) error {
	if err := p.cols[col].Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(clocks.StrobeSettle)
	return nil
}

// ReadRows samples every row pin, returning bit i set when row i reads
// active (the row input is pulled up and the firmware wiring is
// active-low, so a Low level means pressed).
func (p *PeriphPins) ReadRows() (uint8, error) {
	var v uint8
	for i, r := range p.rows {
		if r.Read() == gpio.Low {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}
