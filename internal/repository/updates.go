package repository

import (
	"strings"
	"time"
)

// updateSet accumulates SET columns for partial updates. Only fields whose
// pointer is non-nil are included, which gives every entity the same
// patch semantics: absent fields stay untouched, present fields are written
// as sent (including empty strings and zeros).
type updateSet struct {
	cols []string
	args []any
}

func (u *updateSet) add(col string, v any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, v)
}

func (u *updateSet) String(col string, v *string) {
	if v != nil {
		u.add(col, *v)
	}
}

func (u *updateSet) Float(col string, v *float64) {
	if v != nil {
		u.add(col, *v)
	}
}

func (u *updateSet) Int(col string, v *int) {
	if v != nil {
		u.add(col, *v)
	}
}

func (u *updateSet) Bool(col string, v *bool) {
	if v != nil {
		u.add(col, *v)
	}
}

func (u *updateSet) Time(col string, v *time.Time) {
	if v != nil {
		u.add(col, v.UTC())
	}
}

// Always records a column unconditionally; used for updated_at, which is
// refreshed on every update regardless of which fields were patched.
func (u *updateSet) Always(col string, v any) {
	u.add(col, v)
}

// clause renders "col1 = ?, col2 = ?" in insertion order.
func (u *updateSet) clause() string {
	return strings.Join(u.cols, ", ")
}

// dateRange appends inclusive bounds on a string-comparable date column.
// Empty bounds are skipped. Returns the extra WHERE fragment (starting with
// " AND ...") and its arguments.
func dateRange(start, end string) (string, []any) {
	var b strings.Builder
	var args []any
	if start != "" {
		b.WriteString(" AND date >= ?")
		args = append(args, start)
	}
	if end != "" {
		b.WriteString(" AND date <= ?")
		args = append(args, end)
	}
	return b.String(), args
}
