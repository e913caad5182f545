package survey

import (
	"testing"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

func ruleTable(t *testing.T, cells map[string]tabular.Value) RowView {
	t.Helper()
	columns := make([]string, 0, len(cells))
	for c := range cells {
		columns = append(columns, c)
	}
	tbl, err := tabular.New(columns)
	if err != nil {
		t.Fatalf("tabular.New: %v", err)
	}
	row := make([]tabular.Value, len(columns))
	for i, c := range columns {
		row[i] = cells[c]
	}
	if err := tbl.AppendRow(row); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	return View(tbl, 0)
}

func TestPredicates_MissingSemantics(t *testing.T) {
	t.Parallel()

	r := ruleTable(t, map[string]tabular.Value{
		"A": tabular.Cell("Yes"),
		"B": tabular.NA,
	})

	if !Eq("A", "Yes")(r) || Eq("A", "No")(r) {
		t.Fatalf("Eq on present cell wrong")
	}
	if Eq("B", "Yes")(r) {
		t.Fatalf("Eq matched a missing cell")
	}
	if !NotEq("B", "Yes")(r) {
		t.Fatalf("NotEq should match a missing cell")
	}
	if In("B", "Yes", "No")(r) {
		t.Fatalf("In matched a missing cell")
	}
	if !NotIn("B", "Yes", "No")(r) {
		t.Fatalf("NotIn should match a missing cell")
	}
	if !And(Eq("A", "Yes"), NotIn("B", "x"))(r) {
		t.Fatalf("And conjunction wrong")
	}
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	t.Parallel()

	r := ruleTable(t, map[string]tabular.Value{"A": tabular.Cell("x")})
	cases := []Case{
		{When: Eq("A", "x"), Then: Text("first")},
		{When: Eq("A", "x"), Then: Text("second")},
	}
	if got := Evaluate(cases, Text("default"), r); got.Str != "first" {
		t.Fatalf("got %q, want first", got.Str)
	}
}

func TestEvaluate_DefaultChoices(t *testing.T) {
	t.Parallel()

	r := ruleTable(t, map[string]tabular.Value{"A": tabular.Cell("nope")})
	cases := []Case{{When: Eq("A", "x"), Then: Text("hit")}}

	if got := EvaluateText(cases, r); got != "" {
		t.Fatalf("EvaluateText default=%q, want empty", got)
	}
	if got := Evaluate(cases, Missing, r); !got.Missing {
		t.Fatalf("Evaluate with Missing default returned %+v", got)
	}
	if got := Evaluate(cases, Col("A"), r); got.Str != "nope" {
		t.Fatalf("Evaluate with Col default=%q", got.Str)
	}
}

func TestTextf_Interpolates(t *testing.T) {
	t.Parallel()

	r := ruleTable(t, map[string]tabular.Value{"P": tabular.Cell("NDC")})
	choice := Textf(func(r RowView) string { return "close to " + r.Str("P") })
	if got := choice(r); got.Str != "close to NDC" {
		t.Fatalf("got %q", got.Str)
	}
}
