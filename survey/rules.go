package survey

import (
	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

// RowView gives recoding rules named-column access to a single table row.
type RowView struct {
	t   *tabular.Table
	row int
}

// View returns a RowView over row i of t.
func View(t *tabular.Table, i int) RowView {
	return RowView{t: t, row: i}
}

// Value returns the cell for column, or a missing value when the table has
// no such column.
func (r RowView) Value(column string) tabular.Value {
	v, ok := r.t.Get(r.row, column)
	if !ok {
		return tabular.NA
	}
	return v
}

// Str returns the cell text for column; missing cells read as "".
func (r RowView) Str(column string) string {
	v := r.Value(column)
	if v.Missing {
		return ""
	}
	return v.Str
}

// Predicate is one recoding condition. Missing-cell semantics mirror the
// comparisons the recoding tables were written against: an equality or
// membership test never matches a missing cell, and their negations always
// do.
type Predicate func(RowView) bool

// Eq matches rows whose cell equals want. Missing never matches.
func Eq(column, want string) Predicate {
	return func(r RowView) bool {
		v := r.Value(column)
		return !v.Missing && v.Str == want
	}
}

// NotEq matches rows whose cell differs from want. Missing matches.
func NotEq(column, want string) Predicate {
	return func(r RowView) bool {
		v := r.Value(column)
		return v.Missing || v.Str != want
	}
}

// In matches rows whose cell equals any of want. Missing never matches.
func In(column string, want ...string) Predicate {
	return func(r RowView) bool {
		v := r.Value(column)
		if v.Missing {
			return false
		}
		for _, w := range want {
			if v.Str == w {
				return true
			}
		}
		return false
	}
}

// NotIn matches rows whose cell equals none of want. Missing matches.
func NotIn(column string, want ...string) Predicate {
	return func(r RowView) bool {
		return !In(column, want...)(r)
	}
}

// And combines predicates conjunctively.
func And(ps ...Predicate) Predicate {
	return func(r RowView) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Choice produces the value for a matched condition.
type Choice func(RowView) tabular.Value

// Text is a fixed-string choice.
func Text(s string) Choice {
	return func(RowView) tabular.Value { return tabular.Cell(s) }
}

// Textf is a row-dependent string choice, for fragments that interpolate
// another column's value.
func Textf(fn func(RowView) string) Choice {
	return func(r RowView) tabular.Value { return tabular.Cell(fn(r)) }
}

// Col is a choice that passes the named column's cell through unchanged,
// including missingness.
func Col(column string) Choice {
	return func(r RowView) tabular.Value { return r.Value(column) }
}

// Missing is a choice that yields a missing cell.
func Missing(RowView) tabular.Value {
	return tabular.NA
}

// Case pairs one condition with its choice.
type Case struct {
	When Predicate
	Then Choice
}

// Evaluate runs an ordered condition list over one row: first matching case
// wins, and def supplies the value when nothing matches. Every recoding site
// in the pipeline goes through here, so condition order stays significant in
// exactly one place.
func Evaluate(cases []Case, def Choice, r RowView) tabular.Value {
	for _, c := range cases {
		if c.When(r) {
			return c.Then(r)
		}
	}
	return def(r)
}

// EvaluateText is Evaluate for the narrative-fragment sites, whose default
// is the empty string (never missing): an unmatched category silently
// vanishes from the concatenated narrative.
func EvaluateText(cases []Case, r RowView) string {
	v := Evaluate(cases, Text(""), r)
	if v.Missing {
		return ""
	}
	return v.Str
}
