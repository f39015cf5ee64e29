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

// Package printer implements the self-printing chord-map dump: a
// cooperative, one-character-per-tick typist that walks every entry of the
// finger chord table, the function chord table, and the thumb chord table,
// formatting each as a line of text and "typing" it by sending one HID
// report per character. It never blocks: each Tick call does at most one
// unit of work (format the next line, or send the next character of the
// current line), mirroring the AVR firmware's print_chrdmaps state
// machine and this codebase's other cooperative tickers (see package
// future).
package printer

import (
	"fmt"

	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/hid"
	"github.com/trebb/nan15fw/led"
)

type state uint8

const (
	stIdle state = iota
	stDone
	stPrintingLn
	stKeypairHdr
	stKeypair
	stFnActHdr
	stFnAct
	stThbActHdr
	stThbAct
)

var headers = map[state][]string{
	stKeypairHdr: {
		"* finger chords\n",
		"* chrd lower upper\n",
		"* rows mod code name mod code name\n",
	},
	stFnActHdr: {
		"* fn finger chords\n",
		"* chrd modifiers\n",
		"* rows left right code name\n",
	},
	stThbActHdr: {
		"* bottom row chords\n",
		"* chrd modifiers\n",
		"* rows left right code name\n",
	},
}

// line is the codepoint+mods pair sequence printed for one text line, one
// cell per HID report the printer will send.
type line struct {
	codes []uint8
	mods  []uint8
}

func (l *line) writeString(s string) {
	for i := 0; i < len(s); i++ {
		l.codes = append(l.codes, hid.ASCIIToKeycode(s[i]))
		l.mods = append(l.mods, 0)
	}
}

// writeLiteral appends one cell carrying an actual table keycode and the
// HID mods needed to reproduce it (only shift/altgr matter for typing a
// single visible character), rather than an ASCII-translated filler.
func (l *line) writeLiteral(code, mods uint8) {
	if code == 0 {
		l.writeString(" ")
		return
	}
	l.codes = append(l.codes, code)
	l.mods = append(l.mods, mods)
}

// Printer walks the three persistent tables and renders them as text,
// driven one step at a time by Tick.
type Printer struct {
	fingerTable *chord.FingerTable
	funcTable   *chord.FuncTable
	thumbTable  *chord.ThumbTable

	st        state
	scheduled state
	hdrLine   int
	fngIdx    int
	fnIdx     int
	thbIdx    int

	cur *line
	pos int
}

// NewPrinter returns an idle Printer over the three given tables. The
// tables are read, never written.
func NewPrinter(fingerTable *chord.FingerTable, funcTable *chord.FuncTable, thumbTable *chord.ThumbTable) *Printer {
	return &Printer{fingerTable: fingerTable, funcTable: funcTable, thumbTable: thumbTable, st: stIdle}
}

// Active reports whether a print is underway (including a print cancelled
// but not yet drained to Idle).
func (p *Printer) Active() bool {
	return p.st != stIdle
}

// Start begins printing from the top, clearing any previous progress.
func (p *Printer) Start() {
	p.st = stKeypairHdr
	p.hdrLine, p.fngIdx, p.fnIdx, p.thbIdx = 0, 0, 0, 0
	p.cur, p.pos = nil, 0
}

// Cancel stops printing at the next Tick without flushing any partial
// line, matching the AVR firmware's PRINT_CANCEL: DONE then IDLE,
// never mid-line.
func (p *Printer) Cancel() {
	if p.st != stIdle {
		p.st = stDone
	}
}

// Tick advances the printer by exactly one unit of work: formatting the
// next line, or sending the next character of the line in flight.
func (p *Printer) Tick(bus hid.Bus, leds *led.Scheduler) {
	switch p.st {
	case stIdle:
		return

	case stPrintingLn:
		leds.Blink(led.SetPrint, led.PatternSteady)
		if p.pos < len(p.cur.codes) {
			bus.AddKey(p.cur.codes[p.pos])
			bus.AddWeakMods(p.cur.mods[p.pos])
			bus.SendReport()
			bus.ClearKeyboardButMods()
			p.pos++
			return
		}
		p.cur, p.pos = nil, 0
		p.st = p.scheduled

	case stKeypairHdr:
		p.stepHeader(stKeypairHdr, stKeypair)

	case stKeypair:
		if p.fngIdx < chord.FingerTableSize {
			p.cur = fmtKeypair(p.fingerTable, uint8(p.fngIdx))
			p.fngIdx++
			p.scheduled = stKeypair
			p.st = stPrintingLn
		} else {
			p.hdrLine = 0
			p.st = stFnActHdr
		}

	case stFnActHdr:
		p.stepHeader(stFnActHdr, stFnAct)

	case stFnAct:
		if p.fnIdx < chord.FuncTableSize {
			idx := uint8(p.fnIdx)
			p.fnIdx++
			if chord.IsHole(idx) {
				p.scheduled = stFnAct
				p.st = stFnAct
				return
			}
			p.cur = fmtFnAction(p.funcTable, idx)
			p.scheduled = stFnAct
			p.st = stPrintingLn
		} else {
			p.hdrLine = 0
			p.st = stThbActHdr
		}

	case stThbActHdr:
		p.stepHeader(stThbActHdr, stThbAct)

	case stThbAct:
		if p.thbIdx < chord.ThumbTableSize {
			p.cur = fmtThbAction(p.thumbTable, uint8(p.thbIdx))
			p.thbIdx++
			p.scheduled = stThbAct
			p.st = stPrintingLn
		} else {
			p.st = stDone
		}

	case stDone:
		leds.Blink(led.SetPrint, led.PatternStop)
		p.st = stIdle
	}
}

func (p *Printer) stepHeader(hdr, next state) {
	lines := headers[hdr]
	if p.hdrLine < len(lines) {
		l := &line{}
		l.writeString(lines[p.hdrLine])
		p.cur = l
		p.hdrLine++
		p.scheduled = hdr
		p.st = stPrintingLn
	} else {
		p.st = next
	}
}

func modFlags(m chord.Mods) string {
	flag := func(bit chord.Mods, c byte) byte {
		if m&bit != 0 {
			return c
		}
		return '-'
	}
	return string([]byte{
		flag(chord.ModAltGr, 'g'),
		flag(chord.ModLShift, 's'),
		flag(chord.ModLAlt, 'a'),
		flag(chord.ModLCtrl, 'c'),
	})
}

func fmtKeypair(table *chord.FingerTable, chrd uint8) *line {
	kp := table[chrd]
	l := &line{}
	l.writeString(fmt.Sprintf("* %x %s %#02x ", chrd, modFlags(kp.ModsLo), kp.CodeLo))
	if hid.IsPrintableLetterOrDigit(kp.CodeLo) {
		l.writeLiteral(kp.CodeLo, chord.KeypairModsToMods(kp.ModsLo&(chord.ModAltGr|chord.ModLShift)))
	} else {
		l.writeString(" ")
	}
	l.writeString(fmt.Sprintf(" %s %#02x ", modFlags(kp.ModsUp), kp.CodeUp))
	if hid.IsPrintableLetterOrDigit(kp.CodeUp) {
		l.writeLiteral(kp.CodeUp, chord.KeypairModsToMods(kp.ModsUp&(chord.ModAltGr|chord.ModLShift)))
	} else {
		l.writeString(" ")
	}
	l.writeString("\n")
	return l
}

func fmtFnAction(table *chord.FuncTable, chrd uint8) *line {
	a := table[chrd]
	l := &line{}

	switch a.Kind() {
	case action.ModsTap:
		tap := "1"
		if a.Tap() == action.Toggle {
			tap = "t"
		}
		l.writeString(fmt.Sprintf("* %x mods %s\n", chrd, tap))
	case action.Function:
		l.writeString(fmt.Sprintf("* %x func %s\n", chrd, a.FuncID()))
	default:
		l.writeString(fmt.Sprintf("* %x %s %#02x\n", chrd, modFlags(chord.Mods(a.Mods())), a.Code()))
	}
	return l
}

func fmtThbAction(table *chord.ThumbTable, chrd uint8) *line {
	e := table[chrd]
	l := &line{}

	switch e.Kind {
	case chord.ThumbLower:
		l.writeString(fmt.Sprintf("* %x lower\n", chrd))
	case chord.ThumbUpper:
		l.writeString(fmt.Sprintf("* %x upper\n", chrd))
	case chord.ThumbPlainMods:
		l.writeString(fmt.Sprintf("* %x %s %#02x\n", chrd, modFlags(e.Mods), e.Code))
	case chord.ThumbFunctionDirect:
		l.writeString(fmt.Sprintf("* %x func %s\n", chrd, e.Func))
	case chord.ThumbFnChord:
		l.writeString(fmt.Sprintf("* %x hand %d\n", chrd, e.Hand))
	}
	return l
}
