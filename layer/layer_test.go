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

package layer_test

import (
	"testing"

	"github.com/trebb/nan15fw/action"
	"github.com/trebb/nan15fw/layer"
	"github.com/trebb/nan15fw/test"
)

func TestNewRuntimeStartsOnDefault(t *testing.T) {
	r := layer.NewRuntime(layer.DefaultTables())
	test.Equate(t, r.Active(), layer.Default)
	test.Equate(t, r.Current(), layer.Default)
}

func TestLookupOnUnregisteredLayerIsEmpty(t *testing.T) {
	r := layer.NewRuntime(layer.DefaultTables())
	test.Equate(t, r.Lookup(0, 0), action.NewNone())
}

func TestLookupOutOfRangeIsEmpty(t *testing.T) {
	r := layer.NewRuntime(layer.DefaultTables())
	test.Equate(t, r.Lookup(9, 9), action.NewNone())
}

func TestMomentaryLayerOpensAndCloses(t *testing.T) {
	var base layer.Table
	base[3][0] = action.NewLayerMomentary(uint8(layer.Numpad))
	r := layer.NewRuntime(map[layer.ID]*layer.Table{layer.Default: &base})

	test.Equate(t, r.Current(), layer.Default)

	a := r.Press(3, 0)
	test.Equate(t, a.Kind(), action.LayerMomentary)
	test.Equate(t, r.Current(), layer.Numpad)

	r.Release(3, 0)
	test.Equate(t, r.Current(), layer.Default)
	test.Equate(t, r.Active(), layer.Default)
}

func TestNestedMomentaryLayersCloseIndependently(t *testing.T) {
	var base layer.Table
	base[3][0] = action.NewLayerMomentary(uint8(layer.Numpad))
	base[3][1] = action.NewLayerMomentary(uint8(layer.Nav))
	// the Nav key is pressed while Numpad is current, so Numpad carries the
	// same bindings
	r := layer.NewRuntime(map[layer.ID]*layer.Table{layer.Default: &base, layer.Numpad: &base})

	r.Press(3, 0)
	r.Press(3, 1)
	test.Equate(t, r.Current(), layer.Nav)

	r.Release(3, 0)
	test.Equate(t, r.Current(), layer.Nav)

	r.Release(3, 1)
	test.Equate(t, r.Current(), layer.Default)
}

func TestChangeLayerCommitsOnRelease(t *testing.T) {
	var base layer.Table
	base[3][0] = action.NewFunction(action.FuncChangeLayer, uint8(layer.Nav))
	r := layer.NewRuntime(map[layer.ID]*layer.Table{layer.Default: &base})

	r.Press(3, 0)
	test.Equate(t, r.Active(), layer.Default)

	r.Release(3, 0)
	test.Equate(t, r.Active(), layer.Nav)
}

func TestMacroPlayActionIsReturnedUnhandled(t *testing.T) {
	tables := layer.DefaultTables()
	r := layer.NewRuntime(tables)
	r.Release(3, 0) // unknown key: no prior press, a no-op

	r2 := layer.NewRuntime(map[layer.ID]*layer.Table{layer.Default: func() *layer.Table {
		var t layer.Table
		t[0][0] = action.NewFunction(action.FuncMacroPlay, 3)
		return &t
	}()})
	a := r2.Press(0, 0)
	test.Equate(t, a.Kind(), action.Function)
	test.Equate(t, a.FuncID(), action.FuncMacroPlay)
	test.Equate(t, a.Opt(), uint8(3))
}

func TestDefaultNumpadBottomRowHasReturnToDefault(t *testing.T) {
	tables := layer.DefaultTables()
	np := tables[layer.Numpad]
	a := np[3][0]
	test.Equate(t, a.Kind(), action.Function)
	test.Equate(t, a.FuncID(), action.FuncChangeLayer)
	test.Equate(t, a.Opt(), uint8(layer.Default))
}
