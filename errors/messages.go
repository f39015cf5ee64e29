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

package errors

// error messages
const (
	// matrix
	MatrixOutOfRangeErr  = "matrix error: row/column out of range (%v, %v)"
	MatrixDebounceErr    = "matrix error: debounce state corrupt at (%v, %v)"
	MatrixPinNotFoundErr = "matrix error: no such gpio pin (%v)"

	// chord classification
	ChordUnmappedErr   = "chord error: no action mapped for chord (%#02x)"
	ChordTableIndexErr = "chord error: table index out of range (%v)"

	// action dispatch
	ActionUnknownKindErr = "action error: unknown action kind (%v)"
	ActionQueueFullErr   = "action error: emission queue full"

	// swap editor
	SwapNotArmedErr    = "swap error: editor is not armed"
	SwapInvalidSlotErr = "swap error: invalid slot selection (%v)"

	// macro engine
	MacroIndexOutOfRangeErr  = "macro error: index out of range (%v)"
	MacroBufferFullErr       = "macro error: recording buffer full"
	MacroNotRecordingErr     = "macro error: not currently recording"
	MacroAlreadyRecordingErr = "macro error: already recording macro (%v)"

	// printer
	PrinterBusyErr = "printer error: already printing"

	// led scheduler
	LEDUnknownSetErr      = "led error: unknown led set (%v)"
	LEDIndexOutOfRangeErr = "led error: index out of range (%v)"

	// storage
	StorageOutOfRangeErr = "storage error: address out of range (%v)"
	StorageCorruptErr    = "storage error: corrupt record at (%v)"

	// snapshot
	SnapshotEncodeErr = "snapshot error: encode failed: %v"
	SnapshotDecodeErr = "snapshot error: decode failed: %v"
)
