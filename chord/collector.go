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

package chord

// Collector accumulates the finger and thumb chord bitmasks of a single
// press/release burst and decides the one moment classification should
// run: the first release of the burst. Presses after
// that point only keep the keys-down count honest - the fingerprint is
// already latched and nothing is dispatched a second time until every key
// in the burst has been released and a fresh burst begins.
type Collector struct {
	fng        FingerChord
	thb        ThumbChord
	keysDown   int
	dispatched bool
}

// NewCollector returns an idle Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// PressFinger folds a newly pressed finger key into the in-progress chord.
// row is 1-3 and col is 0-3; the row value is written into the column's
// 2-bit slot, so a later press in the same column on a different row
// overwrites the earlier one rather than blending with it. Once the burst
// has dispatched, further presses only count toward keysDown - the
// fingerprint is already latched.
func (c *Collector) PressFinger(row uint8, col int) {
	if !c.dispatched {
		slot := uint(2 * col)
		c.fng &^= FingerChord(0x3) << slot
		c.fng |= FingerChord(row&0x3) << slot
	}
	c.keysDown++
}

// PressThumb folds a newly pressed thumb-chord bit into the in-progress
// chord, subject to the same mid-flight latch as PressFinger.
func (c *Collector) PressThumb(bit ThumbChord) {
	if !c.dispatched {
		c.thb |= bit
	}
	c.keysDown++
}

// Active reports whether any key of the current burst is still held down.
func (c *Collector) Active() bool {
	return c.keysDown > 0
}

// Release records one key release. It returns the burst's accumulated
// finger and thumb chords together with dispatch == true exactly once per
// burst: on the first call since the accumulator last reset. A release with
// no press before it is such a first call too, and dispatches the empty
// chords (fng == 0, thb == 0). Every later call in the same burst returns
// dispatch == false. Once the last key of the burst is released the
// accumulator resets, ready for the next one.
func (c *Collector) Release() (fng FingerChord, thb ThumbChord, dispatch bool) {
	if c.keysDown > 0 {
		c.keysDown--
	}

	if !c.dispatched {
		c.dispatched = true
		fng, thb, dispatch = c.fng, c.thb, true
	}

	if c.keysDown == 0 {
		c.fng = 0
		c.thb = 0
		c.dispatched = false
	}

	return fng, thb, dispatch
}
