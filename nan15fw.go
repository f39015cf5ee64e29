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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/trebb/nan15fw/chord"
	"github.com/trebb/nan15fw/hardware/clocks"
	"github.com/trebb/nan15fw/hid"
	"github.com/trebb/nan15fw/keyboard"
	"github.com/trebb/nan15fw/layer"
	"github.com/trebb/nan15fw/led"
	"github.com/trebb/nan15fw/logger"
	"github.com/trebb/nan15fw/matrix"
	"github.com/trebb/nan15fw/storage"
)

// NV word layout: the finger chord table first, the function chord table
// (with the macro store overlaying its holes) directly after.
const (
	fingerBase = 0
	funcBase   = fingerBase + chord.FingerTableWords
	nvWords    = funcBase + chord.FuncTableWords
)

// default pin assignments for a Raspberry Pi Zero wired per the project
// schematic. All of them can be overridden on the command line.
const (
	defaultColPins = "GPIO2,GPIO3,GPIO4,GPIO17"
	defaultRowPins = "GPIO27,GPIO22,GPIO10,GPIO9"
	defaultLEDPins = "GPIO5,GPIO6,GPIO13,GPIO19,GPIO26,GPIO21,GPIO20,GPIO16,GPIO12,GPIO7,GPIO8,GPIO25"
)

func main() {
	hidPath := flag.String("hid", "/dev/hidg0", "USB gadget HID device node")
	nvPath := flag.String("nv", "nan15fw.nv", "persistent table storage file")
	colPins := flag.String("cols", defaultColPins, "column strobe pins, comma separated")
	rowPins := flag.String("rows", defaultRowPins, "row sense pins, comma separated")
	ledPins := flag.String("leds", defaultLEDPins, "indicator LED pins, comma separated")
	logTail := flag.Int("logtail", 50, "log entries to dump on exit")
	flag.Parse()

	log := logger.NewLogger(256)

	if err := run(*hidPath, *nvPath, *colPins, *rowPins, *ledPins, log); err != nil {
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		_ = log.Tail(os.Stderr, *logTail)
		os.Exit(10)
	}
	_ = log.Tail(os.Stderr, *logTail)
}

func splitPins(s string, n int) ([]string, error) {
	names := strings.Split(s, ",")
	if len(names) != n {
		return nil, fmt.Errorf("expected %d pin names, got %d", n, len(names))
	}
	return names, nil
}

func run(hidPath, nvPath, colPins, rowPins, ledPins string, log *logger.Logger) error {
	cols, err := splitPins(colPins, matrix.Cols)
	if err != nil {
		return err
	}
	rows, err := splitPins(rowPins, matrix.Rows)
	if err != nil {
		return err
	}
	ledNames, err := splitPins(ledPins, led.NumLEDs)
	if err != nil {
		return err
	}

	bus, err := hid.NewGadget(hidPath)
	if err != nil {
		return err
	}
	defer bus.Close()

	nv, err := storage.NewFile(nvPath, nvWords)
	if err != nil {
		return err
	}

	var colArr [matrix.Cols]string
	copy(colArr[:], cols)
	var rowArr [matrix.Rows]string
	copy(rowArr[:], rows)
	pins, err := matrix.NewPeriphPins(colArr, rowArr)
	if err != nil {
		return err
	}

	var ledArr [led.NumLEDs]string
	copy(ledArr[:], ledNames)
	driver, err := led.NewPeriphDriver(ledArr)
	if err != nil {
		return err
	}

	fingerTable := chord.DefaultFingerTable()
	funcTable := chord.DefaultFuncTable()
	thumbTable := chord.DefaultThumbTable()

	core := keyboard.NewCore(bus, pins, driver, nv,
		fingerBase, funcBase,
		&fingerTable, &funcTable, &thumbTable,
		layer.DefaultTables(), log)

	if err := core.HookEarlyInit(); err != nil {
		return err
	}

	// storage-backed state loads between the two init hooks, the same
	// ordering the AVR firmware's hook_early_init/hook_late_init pair
	// implies
	if err := chord.LoadFingerTable(nv, fingerBase, &fingerTable); err != nil {
		return err
	}
	if err := chord.LoadFuncTable(nv, funcBase, &funcTable); err != nil {
		return err
	}

	if err := core.HookLateInit(); err != nil {
		return err
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	start := time.Now()
	var hostLEDs hid.LEDBits

	for {
		select {
		case <-intChan:
			return nil
		default:
		}

		now := uint16(time.Since(start).Milliseconds())
		if err := core.Tick(now); err != nil {
			return err
		}

		if bits := bus.HostKeyboardLEDs(); bits != hostLEDs {
			hostLEDs = bits
			if err := core.HookKeyboardLEDsChange(bits); err != nil {
				return err
			}
		}

		time.Sleep(clocks.ScanInterval)
	}
}
