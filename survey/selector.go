package survey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

// IDColumn is the synthetic respondent identifier prepended by SelectColumns:
// a 1-based sequence in input row order.
const IDColumn = "ID_"

var quoteReplacer = strings.NewReplacer(
	"“", "'", // left curly double quote
	"”", "'", // right curly double quote
	"’", "'", // curly apostrophe
)

// SplitColumnList parses a comma-separated column-name list like
// "Q1, Q100, Q101" into its names.
func SplitColumnList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SelectColumns reduces a raw survey table to the ID column plus the
// demographic and substantive columns, in that order, preserving input order
// within each group. Every row gets a sequential 1-based ID. Curly quotes
// and apostrophes are normalized to a plain apostrophe across the whole
// table, not per column. No rows are dropped here.
//
// A demographic or substantive name absent from the input yields a
// *tabular.MissingColumnError.
func SelectColumns(raw *tabular.Table, demographic, substantive []string) (*tabular.Table, error) {
	if raw == nil {
		return nil, errors.New("SelectColumns: table is nil")
	}
	if len(demographic) == 0 && len(substantive) == 0 {
		return nil, errors.New("SelectColumns: no columns requested")
	}

	columns := make([]string, 0, 1+len(demographic)+len(substantive))
	columns = append(columns, IDColumn)
	columns = append(columns, demographic...)
	columns = append(columns, substantive...)

	work := raw
	if !raw.HasColumn(IDColumn) {
		if err := work.AddColumn(IDColumn, tabular.NA); err != nil {
			return nil, fmt.Errorf("SelectColumns: %w", err)
		}
	}
	for i := 0; i < work.NumRows(); i++ {
		if err := work.Set(i, IDColumn, tabular.Cell(strconv.Itoa(i+1))); err != nil {
			return nil, fmt.Errorf("SelectColumns: %w", err)
		}
	}

	out, err := work.Project(columns)
	if err != nil {
		return nil, err
	}
	out.ReplaceAll(quoteReplacer.Replace)
	return out, nil
}
