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

// Package test collects small assertion helpers shared by every _test.go
// file in this module, in place of a third-party assertion library.
package test

import (
	"math"
	"reflect"
	"testing"
)

// Equate fails the test unless got and want are deeply equal.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("not equal: got %v, wanted %v", got, want)
	}
}

// ExpectSuccess fails the test unless v indicates success: a nil error, a
// true bool, nil, or any value that is neither an error nor a bool.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !truthy(v) {
		t.Errorf("expected success, got %v", v)
	}
}

// ExpectFailure fails the test unless v indicates failure: a non-nil error
// or a false bool. nil and any value that is neither an error nor a bool
// count as success.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if truthy(v) {
		t.Errorf("expected failure, got %v", v)
	}
}

// ExpectEquality is an alias of Equate kept for readability at call sites
// that are asserting equality rather than a fixture/golden value.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	Equate(t, got, want)
}

// ExpectInequality fails the test if got and want are deeply equal.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		t.Errorf("expected inequality: both were %v", got)
	}
}

// ExpectApproximate fails the test unless got is within tolerance of want,
// where tolerance is a fraction of want (0.1 allows 10% either way).
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > math.Abs(want*tolerance) {
		t.Errorf("not approximately equal: got %v, wanted %v (tolerance %v)", got, want, tolerance)
	}
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case error:
		return x == nil
	case bool:
		return x
	default:
		return true
	}
}
