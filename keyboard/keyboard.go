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

// Package keyboard wires every other package into the single cooperative
// state machine the main loop drives: Core owns the matrix scanner, the
// three chord tables and their collector, the modifier/emission engine, the
// swap editor, the macro recorder, the printer, the secondary layer
// runtime, the LED scheduler, and the persistent store they share. Its
// hook methods (HookEarlyInit, HookLateInit, Tick, HookMatrixChange,
// HookKeyboardLEDsChange) replicate the AVR firmware's hook_*/
// action_function dispatch, fanned out across the packages that now each
// own one piece of it.
package keyboard

import (
	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/future"
	"github.com/trebb/nan15fw/hid"
	"github.com/trebb/nan15fw/layer"
	"github.com/trebb/nan15fw/led"
	"github.com/trebb/nan15fw/logger"
	"github.com/trebb/nan15fw/macro"
	"github.com/trebb/nan15fw/matrix"
	"github.com/trebb/nan15fw/mods"
	"github.com/trebb/nan15fw/printer"
	"github.com/trebb/nan15fw/storage"
	"github.com/trebb/nan15fw/swapedit"
)

// FingerRows is the number of physical rows that contribute to the finger
// chord rather than the thumb chord. Row FingerRows (the last one) is the
// thumb row.
const FingerRows = 3

// thumbColBits maps a physical column of the thumb row onto the
// chord.ThumbChord bit it contributes. Verbatim from the AVR
// firmware's PF(row, col, THB_CHRD) column parameters for actionmaps'
// bottom row: physical column 1 is the electrically unused gap between the
// three real thumb keys.
var thumbColBits = [matrix.Cols]chord.ThumbChord{
	chord.ThumbRightFn,
	0,
	chord.ThumbShift,
	chord.ThumbLeftFn,
}

// Core is the assembled keyboard. Construct with NewCore; the zero value is
// not usable.
type Core struct {
	matrix *matrix.Scanner
	layers *layer.Runtime

	fingerTable *chord.FingerTable
	funcTable   *chord.FuncTable
	thumbTable  *chord.ThumbTable
	collector   *chord.Collector

	engine   *mods.Engine
	swap     *swapedit.Editor
	macros   *macro.Recorder
	playback *future.Ticker
	print    *printer.Printer
	leds     *led.Scheduler

	bus hid.Bus
	nv  storage.NV

	fingerBase uint16
	funcBase   uint16
	log        *logger.Logger
	perm       logger.Permission

	lastRow      [matrix.Rows]uint8
	layerPending bool
	pendingLayer layer.ID
}

// NewCore assembles a Core from its collaborators. fingerTable, funcTable
// and thumbTable are shared with the caller (the swap editor and the
// snapshot package both need the same live tables), so Core never copies
// them. fingerBase and funcBase are the NV word addresses of the two
// persistent table regions; the macro store addresses its hole cells
// relative to funcBase.
func NewCore(
	bus hid.Bus,
	matrixPins matrix.Pins,
	ledDriver led.PinDriver,
	nv storage.NV,
	fingerBase uint16,
	funcBase uint16,
	fingerTable *chord.FingerTable,
	funcTable *chord.FuncTable,
	thumbTable *chord.ThumbTable,
	layerTables map[layer.ID]*layer.Table,
	log *logger.Logger,
) *Core {
	return &Core{
		matrix:      matrix.NewScanner(matrixPins),
		layers:      layer.NewRuntime(layerTables),
		fingerTable: fingerTable,
		funcTable:   funcTable,
		thumbTable:  thumbTable,
		collector:   chord.NewCollector(),
		engine:      mods.NewEngine(bus),
		swap:        &swapedit.Editor{},
		macros:      macro.NewRecorder(),
		playback:    future.NewTicker("macro playback"),
		print:       printer.NewPrinter(fingerTable, funcTable, thumbTable),
		leds:        led.NewScheduler(ledDriver),
		bus:         bus,
		nv:          nv,
		fingerBase:  fingerBase,
		funcBase:    funcBase,
		log:         log,
		perm:        logger.Allow,
	}
}

// Engine, Swap, Macros, Printer, LEDs and Layers expose the collaborators a
// host tool (or a test) needs direct access to beyond what the hook methods
// cover - persisting the swapped tables, reading back macro/printer/LED
// state, and so on. Core itself never needs these accessors.
func (k *Core) Engine() *mods.Engine      { return k.engine }
func (k *Core) Swap() *swapedit.Editor    { return k.swap }
func (k *Core) Macros() *macro.Recorder   { return k.macros }
func (k *Core) Printer() *printer.Printer { return k.print }
func (k *Core) LEDs() *led.Scheduler      { return k.leds }
func (k *Core) Layers() *layer.Runtime    { return k.layers }

func (k *Core) logf(tag string, detail interface{}) {
	if k.log == nil {
		return
	}
	k.log.Log(k.perm, tag, detail)
}

// HookEarlyInit runs before the matrix and LEDs are otherwise touched: it
// brings the pin drivers up and lights LED 8 as a "booting" indicator, the
// same signal the AVR firmware's hook_early_init gives before the
// chord tables have even been loaded from storage.
func (k *Core) HookEarlyInit() error {
	if err := k.matrix.Init(); err != nil {
		return err
	}
	if err := k.leds.Init(); err != nil {
		return err
	}
	return k.leds.On(8)
}

// HookLateInit runs once storage-backed state (chord tables, layer tables)
// is loaded and ready: it clears the booting indicator and blinks the
// power-on reset pattern across every LED once.
func (k *Core) HookLateInit() error {
	if err := k.leds.Off(8); err != nil {
		return err
	}
	return k.leds.Blink(led.SetReset, led.PatternReset)
}

// Tick runs one main-loop iteration: scan the matrix, dispatch any key
// events it produced, advance the printer if it's mid-dump, and step the
// LED scheduler. nowMS is the free-running millisecond clock the LED
// scheduler times its blink cycles against.
func (k *Core) Tick(nowMS uint16) error {
	if err := k.matrix.Scan(); err != nil {
		return err
	}

	for row := 0; row < matrix.Rows; row++ {
		bits, err := k.matrix.GetRow(row)
		if err != nil {
			return err
		}
		prev := k.lastRow[row]
		if bits == prev {
			continue
		}
		for col := 0; col < matrix.Cols; col++ {
			mask := uint8(1) << uint(col)
			if bits&mask == prev&mask {
				continue
			}
			if err := k.HookMatrixChange(row, col, bits&mask != 0); err != nil {
				return err
			}
		}
		k.lastRow[row] = bits
	}

	if k.playback.Pending() > 0 {
		// a tick where an entry merely counted down rather than fired is
		// not a failure here
		_ = k.playback.Tick()
	}
	if k.print.Active() {
		k.print.Tick(k.bus, k.leds)
	}
	k.leds.Tick(nowMS)
	return nil
}

// HookKeyboardLEDsChange runs whenever the host reports a new keyboard LED
// byte (NumLock/CapsLock/ScrollLock), driving the NumLock/ScrollLock LEDs
// and re-evaluating the CapsLock-aware shift blink pattern immediately
// rather than waiting for the next Tick.
func (k *Core) HookKeyboardLEDsChange(bits hid.LEDBits) error {
	return k.leds.BlinkMods(k.bus, bits)
}

// HookMatrixChange handles one physical key transition. While a secondary
// layer is active it is looked up directly; on the default layer it feeds
// the chord collector instead, exactly as actionmaps' L_DFLT entries route
// every key through FNG_CHRD/THB_CHRD rather than a plain keycode.
func (k *Core) HookMatrixChange(row, col int, pressed bool) error {
	if k.layers.Current() != layer.Default {
		if pressed {
			return k.dispatchLayerAction(k.layers.Press(row, col))
		}
		k.layers.Release(row, col)
		return nil
	}

	if row < FingerRows {
		if pressed {
			// physical rows 0-2 are finger rows 1-3 in the chord encoding
			k.collector.PressFinger(uint8(row+1), col)
			return nil
		}
		return k.handleChordRelease()
	}

	bit := thumbColBits[col]
	if bit == 0 {
		return nil
	}
	if pressed {
		k.collector.PressThumb(bit)
		return nil
	}
	return k.handleChordRelease()
}

// handleChordRelease is the keys_down-gated tail of every chord release:
// classify (or feed the swap editor) exactly once per burst, then, once the
// whole burst has let go, commit any layer change that classification
// queued up.
func (k *Core) handleChordRelease() error {
	fng, thb, dispatch := k.collector.Release()
	if dispatch {
		if err := k.dispatchBurst(fng, thb); err != nil {
			return err
		}
	}
	if !k.collector.Active() {
		k.commitPendingLayer()
	}
	return nil
}

func (k *Core) dispatchBurst(fng chord.FingerChord, thb chord.ThumbChord) error {
	if k.swap.State() != swapedit.Idle {
		return k.dispatchSwapSelection(fng, thb)
	}

	a, err := chord.Classify(k.fingerTable, k.funcTable, k.thumbTable, fng, thb)
	if err != nil {
		k.logf("chord", err)
		return k.leds.Blink(led.SetNoKeycode, led.PatternWarning)
	}
	return k.dispatchAction(a)
}

// dispatchSwapSelection feeds a completed burst into the armed swap editor
// instead of the ordinary classify/emit path, deciding whether the burst
// was a bare finger chord (selecting that chord's current level) or a
// function-thumb-held chord (selecting a function-table entry) from the
// same thumb table entry Classify itself would have consulted.
func (k *Core) dispatchSwapSelection(fng chord.FingerChord, thb chord.ThumbChord) error {
	entry := k.thumbTable[thb]

	var done bool
	var err error
	var persist func() error
	switch entry.Kind {
	case chord.ThumbLower, chord.ThumbUpper:
		if fng == 0 {
			return nil
		}
		level := chord.Lower
		if entry.Kind == chord.ThumbUpper {
			level = chord.Upper
		}
		done, err = k.swap.SelectFinger(k.fingerTable, uint8(fng), level)
		persist = func() error {
			return chord.StoreFingerTable(k.nv, k.fingerBase, k.fingerTable)
		}
	case chord.ThumbFnChord:
		idx := chord.FuncChordIndex(fng, entry.Hand)
		done, err = k.swap.SelectFunction(k.funcTable, idx)
		persist = func() error {
			return chord.StoreFuncTable(k.nv, k.funcBase, k.funcTable)
		}
	default:
		k.swap.Cancel()
		return k.leds.Blink(led.SetSwapSecond, led.PatternError)
	}

	if err != nil {
		k.logf("swap", err)
		k.swap.Cancel()
		return k.leds.Blink(led.SetSwapSecond, led.PatternError)
	}
	if done {
		if err := persist(); err != nil {
			return err
		}
		k.logf("swap", "complete")
		return k.leds.Blink(led.SetSwapSecond, led.PatternOK)
	}

	// first chord captured: hand the blink over from the "pick the first
	// chord" set to the "pick the second" one
	if err := k.leds.Blink(led.SetSwapFirst, led.PatternStop); err != nil {
		return err
	}
	return k.leds.Blink(led.SetSwapSecond, led.PatternWaiting)
}

// dispatchAction routes a classified chord action to the emission engine or
// the function dispatch, mirroring action_function's id/opt switch.
func (k *Core) dispatchAction(a action.Action) error {
	switch a.Kind() {
	case action.Mods, action.Key:
		k.collectMacro(a)
		k.engine.Dispatch(a)
		return k.refreshModLEDs()
	case action.ModsTap:
		// Never recorded: like the AVR firmware's register_mods/
		// add_oneshot_mods, this never passes through emit_keycode.
		k.engine.Dispatch(a)
		return k.refreshModLEDs()
	case action.Function:
		return k.dispatchFunction(a.FuncID(), a.Opt())
	default:
		// an empty classification (bare thumb shift, unmapped function
		// chord) still reaches the engine so the nothing-to-emit warning
		// fires
		k.engine.Dispatch(a)
		return k.refreshModLEDs()
	}
}

// refreshModLEDs runs after every pass through the emission engine: a
// latched nothing-to-emit condition becomes the NO_KEYCODE warning blink
// (suppressed while a macro is recording, since an empty entry is simply
// not collected), and otherwise the modifier LEDs are re-evaluated so a
// consumed one-shot stops pulsing and a newly armed one starts.
func (k *Core) refreshModLEDs() error {
	if k.engine.NoKeycodePending() {
		k.engine.AckNoKeycode()
		if k.macros.Recording() {
			return nil
		}
		return k.leds.Blink(led.SetNoKeycode, led.PatternWarning)
	}
	if lb, ok := k.bus.(hid.LEDBus); ok {
		return k.leds.BlinkMods(k.bus, lb.HostKeyboardLEDs())
	}
	return k.leds.Blink(led.SetAllMods, led.PatternStop)
}

// dispatchLayerAction routes a secondary-layer Press result. LayerMomentary
// and Function/FuncChangeLayer are already fully handled by layer.Runtime
// itself; only emission and macro playback need Core's help.
func (k *Core) dispatchLayerAction(a action.Action) error {
	switch a.Kind() {
	case action.Mods, action.Key:
		k.collectMacro(a)
		k.engine.Dispatch(a)
		return k.refreshModLEDs()
	case action.ModsTap:
		k.engine.Dispatch(a)
		return k.refreshModLEDs()
	case action.Function:
		if a.FuncID() == action.FuncChangeLayer {
			// Already committed by layer.Runtime's own Release.
			return nil
		}
		return k.dispatchFunction(a.FuncID(), a.Opt())
	}
	return nil
}

// collectMacro feeds a about-to-be-emitted Mods/Key action's (mods, code)
// pair to the recorder. ModsTap actions never reach emit_keycode in the
// AVR firmware either - they arm a one-shot or toggle the persistent
// modifier state directly - so they are never recorded.
func (k *Core) collectMacro(a action.Action) {
	var hidMods, code uint8
	if a.Kind() == action.Mods {
		hidMods = chord.KeypairModsToMods(chord.Mods(a.Mods()))
	}
	code = a.Code()

	if _, full := k.macros.Collect(hidMods, code); full {
		k.logf("macro", "buffer full")
		k.leds.Blink(led.SetRecordMcr, led.PatternMcrWarning)
	}
}

func (k *Core) dispatchFunction(id action.FuncID, opt uint8) error {
	switch id {
	case action.FuncChangeLayer:
		k.pendingLayer = layer.ID(opt)
		k.layerPending = true
		return nil

	case action.FuncSwapChords:
		return k.handleSwapArm()

	case action.FuncMacroRecord:
		k.macros.StartRecord()
		k.logf("macro", "recording started")
		return k.leds.Blink(led.SetRecordMcr, led.PatternWaiting)

	case action.FuncPrint:
		k.print.Start()
		k.logf("print", "started")
		return k.leds.Blink(led.SetPrint, led.PatternSteady)

	case action.FuncReset:
		return k.handleReset()

	case action.FuncMacroPlay:
		return k.macroPlayOrCommit(opt)

	default:
		// FuncFingerChord and FuncThumbChord are collector dispatch tags,
		// never produced by Classify in this implementation: the matrix
		// hook routes finger/thumb presses to the collector directly.
		return nil
	}
}

func (k *Core) handleSwapArm() error {
	if k.swap.Arm() == swapedit.ArmedFirst {
		k.logf("swap", "armed")
		return k.leds.Blink(led.SetSwapFirst, led.PatternWaiting)
	}
	k.logf("swap", "cancelled")
	if err := k.leds.Blink(led.SetSwapFirst, led.PatternStop); err != nil {
		return err
	}
	return k.leds.Blink(led.SetSwapSecond, led.PatternStop)
}

// macroPlayOrCommit is mcr(EXEC, ...): while recording, the macro-play key
// commits the in-progress recording under id instead of playing macro id
// back.
func (k *Core) macroPlayOrCommit(id uint8) error {
	if k.macros.Recording() {
		if err := k.macros.Commit(k.nv, k.funcBase, id); err != nil {
			k.logf("macro", err)
			return k.leds.Blink(led.SetNoKeycode, led.PatternError)
		}
		k.logf("macro", "committed")
		return k.leds.Blink(led.SetRecordMcr, led.PatternOK)
	}

	if err := k.playMacro(id); err != nil {
		k.logf("macro", err)
		return k.leds.Blink(led.SetNoKeycode, led.PatternError)
	}
	return nil
}

// playMacro reads macro id back from storage and schedules one emission per
// main-loop tick rather than flushing every report in a single burst, so
// the host sees the same natural typing stream the printer produces.
func (k *Core) playMacro(id uint8) error {
	return macro.Play(k.nv, k.funcBase, id, func(hidMods, code uint8) {
		delay := k.playback.Pending()
		k.playback.Schedule(delay, func() {
			k.engine.EmitHID(hidMods, code)
		}, "macro step")
	})
}

func (k *Core) handleReset() error {
	k.print.Cancel()
	k.macros.CancelRecord()
	k.playback.DropAll()
	k.swap.Cancel()
	k.bus.ClearKeyboard()
	k.logf("reset", "triggered")
	return k.leds.Blink(led.SetReset, led.PatternReset)
}

// commitPendingLayer applies a CHG_LAYER classified earlier in this burst,
// but only once every key the burst pressed has been released - the same
// keys_down <= 0 gate the AVR firmware's action_function applies
// before touching the active layer.
func (k *Core) commitPendingLayer() {
	if !k.layerPending {
		return
	}
	k.layerPending = false
	k.logf("layer", k.pendingLayer)
	k.layers.SetActive(k.pendingLayer)
	k.leds.Blink(led.SetChgLayer, led.PatternChgLayer)
}
