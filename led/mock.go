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

// MockDriver is an in-memory PinDriver recording every On/Off call, used by
// tests that want to assert on the exact sequence of physical LED writes
// rather than just the Scheduler's own Lit() bookkeeping.
type MockDriver struct {
	InitCount int
	Calls     []string
	state     [NumLEDs]bool
}

// NewMockDriver returns an empty MockDriver.
func NewMockDriver() *MockDriver {
	return &MockDriver{}
}

func (d *MockDriver) Init() error {
	d.InitCount++
	return nil
}

func (d *MockDriver) On(i int) error {
	d.state[i] = true
	d.Calls = append(d.Calls, "on")
	return nil
}

func (d *MockDriver) Off(i int) error {
	d.state[i] = false
	d.Calls = append(d.Calls, "off")
	return nil
}

// State reports the last On/Off value written for LED i.
func (d *MockDriver) State(i int) bool {
	return d.state[i]
}
