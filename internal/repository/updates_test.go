package repository

import (
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestUpdateSetSkipsNilFields(t *testing.T) {
	var set updateSet
	set.String("name", strPtr("clay"))
	set.String("unit", nil)
	set.Float("qty", f64Ptr(12.5))
	set.Bool("is_active", nil)

	if got, want := set.clause(), "name = ?, qty = ?"; got != want {
		t.Fatalf("clause = %q, want %q", got, want)
	}
	if want := []any{"clay", 12.5}; !reflect.DeepEqual(set.args, want) {
		t.Fatalf("args = %v, want %v", set.args, want)
	}
}

func TestUpdateSetWritesZeroValues(t *testing.T) {
	// A present pointer wins even when it points at a zero value; that is
	// the difference between "clear this field" and "leave it alone".
	var set updateSet
	set.String("notes", strPtr(""))
	set.Float("amount", f64Ptr(0))
	set.Bool("is_active", boolPtr(false))

	if got, want := set.clause(), "notes = ?, amount = ?, is_active = ?"; got != want {
		t.Fatalf("clause = %q, want %q", got, want)
	}
	if want := []any{"", 0.0, false}; !reflect.DeepEqual(set.args, want) {
		t.Fatalf("args = %v, want %v", set.args, want)
	}
}

func TestUpdateSetAlways(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var set updateSet
	set.Always("updated_at", ts)
	if got, want := set.clause(), "updated_at = ?"; got != want {
		t.Fatalf("clause = %q, want %q", got, want)
	}
	if set.args[0] != any(ts) {
		t.Fatalf("args = %v, want %v", set.args, ts)
	}
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		wantSQL    string
		wantArgs   []any
	}{
		{"both bounds", "2026-01-01", "2026-01-31", " AND date >= ? AND date <= ?", []any{"2026-01-01", "2026-01-31"}},
		{"start only", "2026-01-01", "", " AND date >= ?", []any{"2026-01-01"}},
		{"end only", "", "2026-01-31", " AND date <= ?", []any{"2026-01-31"}},
		{"no bounds", "", "", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, args := dateRange(tc.start, tc.end)
			if sql != tc.wantSQL {
				t.Fatalf("sql = %q, want %q", sql, tc.wantSQL)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tc.wantArgs)
			}
		})
	}
}
