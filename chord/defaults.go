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

import "github.com/trebb/nan15fw/action"

// DefaultFingerTable returns a FingerTable with entry 0 left as the
// reserved sentinel and every other entry zeroed - equivalent to an
// unprogrammed chord map. Real deployments load a table from storage (see
// the snapshot package); this constructor only guarantees the sentinel
// invariant.
func DefaultFingerTable() FingerTable {
	return FingerTable{}
}

// DefaultFuncTable returns a FuncTable with every entry empty. The holes
// listed in FuncTableHoles remain reserved for the macro engine even in
// the default table, since nothing else can ever address them.
func DefaultFuncTable() FuncTable {
	return FuncTable{}
}

// DefaultThumbTable returns the 8-entry thumb chord table's factory
// wiring: which thumb key combinations select the finger chord table's
// lower/upper half, which dispatch a chord function directly, and which
// combine with a finger chord via the function chord table. The specific
// function bindings (swap editor, printer, macro record) are an explicit
// open question in the originating firmware and are preserved here as a
// reasonable default rather than resolved from any single authoritative
// source.
func DefaultThumbTable() ThumbTable {
	var t ThumbTable

	t[0] = ThumbEntry{Kind: ThumbLower}
	t[uint8(ThumbShift)] = ThumbEntry{Kind: ThumbUpper}

	t[uint8(ThumbLeftFn)] = ThumbEntry{Kind: ThumbFnChord, Hand: 0}
	t[uint8(ThumbRightFn)] = ThumbEntry{Kind: ThumbFnChord, Hand: 1}

	t[uint8(ThumbLeftFn|ThumbShift)] = ThumbEntry{
		Kind: ThumbFunctionDirect,
		Func: action.FuncSwapChords,
	}
	t[uint8(ThumbRightFn|ThumbShift)] = ThumbEntry{
		Kind: ThumbFunctionDirect,
		Func: action.FuncPrint,
	}
	t[uint8(ThumbLeftFn|ThumbRightFn)] = ThumbEntry{
		Kind: ThumbFunctionDirect,
		Func: action.FuncMacroRecord,
	}
	t[uint8(ThumbLeftFn|ThumbRightFn|ThumbShift)] = ThumbEntry{
		Kind: ThumbFunctionDirect,
		Func: action.FuncReset,
	}

	return t
}
