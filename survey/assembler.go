package survey

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

// Column names of the long-form output.
const (
	QuestionColumn      = "Question"
	ResponseColumn      = "Response"
	ResponseLevelColumn = "Response_level"
	PromptColumn        = "Prompt"
)

// noLevelsMarker is attached to a long-form row whose question has no
// precomputed response-level set.
const noLevelsMarker = "N/A"

// placeholderPhrases mark non-substantive answers. Matching is
// case-insensitive substring, so "Refused to answer" and "refused" both hit.
var placeholderPhrases = []string{
	"refused",
	"not applicable",
	"don't know",
	"no contact",
	"do not know",
}

// placeholderLiterals is the exact-match variant applied to the final
// Response column. It enumerates the capitalizations observed in the
// instrument rather than folding case, so a genuinely substantive answer
// containing one of the phrases is never dropped by accident.
var placeholderLiterals = map[string]struct{}{
	"Not applicable":    {},
	"Not Applicable":    {},
	"Refused to Answer": {},
	"No contact":        {},
	"Don't Know":        {},
	"Don't know":        {},
	"Refused":           {},
	"Refused to answer": {},
	"Do not know":       {},
}

// IsPlaceholderPhrase reports whether s contains any placeholder phrase,
// case-insensitively.
func IsPlaceholderPhrase(s string) bool {
	ls := strings.ToLower(s)
	for _, p := range placeholderPhrases {
		if strings.Contains(ls, p) {
			return true
		}
	}
	return false
}

// IsPlaceholderLiteral reports whether s exactly equals one of the fixed
// placeholder answer strings.
func IsPlaceholderLiteral(s string) bool {
	_, ok := placeholderLiterals[s]
	return ok
}

// ResponseLevels computes the response-level set for one substantive column:
// every observed answer minus missing cells and placeholder phrases,
// deduplicated, sorted ascending, joined with "; ". The result is invariant
// to the table's row order.
func ResponseLevels(t *tabular.Table, column string) (string, error) {
	if t == nil {
		return "", errors.New("ResponseLevels: table is nil")
	}
	if !t.HasColumn(column) {
		return "", &tabular.MissingColumnError{Column: column}
	}
	seen := make(map[string]struct{})
	levels := make([]string, 0, 8)
	for i := 0; i < t.NumRows(); i++ {
		v, _ := t.Get(i, column)
		if v.Missing || IsPlaceholderPhrase(v.Str) {
			continue
		}
		if _, ok := seen[v.Str]; ok {
			continue
		}
		seen[v.Str] = struct{}{}
		levels = append(levels, v.Str)
	}
	sort.Strings(levels)
	return strings.Join(levels, "; "), nil
}

// AssemblePrompts reshapes a wide table (one column per substantive
// question, demo_base already built) into the long form: one row per
// (respondent, question) pair carrying the question identifier, its free
// text, the response-level set, the composed prompt, and the respondent's
// literal answer. Rows whose answer exactly equals a placeholder literal
// are dropped after composition.
//
// questionTexts annotates the substantive columns positionally and must
// have the same length, else a *LengthMismatchError.
func AssemblePrompts(t *tabular.Table, demographic, substantive, questionTexts []string) (*tabular.Table, error) {
	if t == nil {
		return nil, errors.New("AssemblePrompts: table is nil")
	}
	if len(substantive) == 0 {
		return nil, errors.New("AssemblePrompts: no substantive columns")
	}
	if len(questionTexts) != len(substantive) {
		return nil, &LengthMismatchError{Columns: len(substantive), Questions: len(questionTexts)}
	}
	if !t.HasColumn(BaseColumn) {
		return nil, fmt.Errorf("AssemblePrompts: table has no %s column; run BuildDemographicBase first", BaseColumn)
	}

	// Shared read-only cache: levels per question, computed once over the
	// whole population and looked up during row emission.
	levels := make(map[string]string, len(substantive))
	textByQuestion := make(map[string]string, len(substantive))
	for qi, q := range substantive {
		ls, err := ResponseLevels(t, q)
		if err != nil {
			return nil, fmt.Errorf("AssemblePrompts: %w", err)
		}
		levels[q] = ls
		textByQuestion[q] = questionTexts[qi]
	}

	retained := append([]string{IDColumn}, demographic...)
	for _, c := range retained {
		if !t.HasColumn(c) {
			return nil, &tabular.MissingColumnError{Column: c}
		}
	}

	outColumns := append(append([]string(nil), retained...),
		BaseColumn, QuestionColumn, ResponseLevelColumn, PromptColumn, ResponseColumn)
	out, err := tabular.New(outColumns)
	if err != nil {
		return nil, fmt.Errorf("AssemblePrompts: %w", err)
	}

	// Question-major emission matches a column-by-column unpivot: all
	// respondents for the first question, then the next.
	cells := make([]tabular.Value, len(outColumns))
	for _, q := range substantive {
		for i := 0; i < t.NumRows(); i++ {
			resp, _ := t.Get(i, q)
			if !resp.Missing && IsPlaceholderLiteral(resp.Str) {
				continue
			}

			levelStr := noLevelsMarker
			if ls, ok := levels[q]; ok {
				levelStr = ls
			}
			base, _ := t.Get(i, BaseColumn)
			prompt := fmt.Sprintf("%s '%s' from the following responses: '%s'",
				base.Str, textByQuestion[q], levelStr)

			for ci, c := range retained {
				v, _ := t.Get(i, c)
				cells[ci] = v
			}
			cells[len(retained)] = base
			cells[len(retained)+1] = tabular.Cell(q)
			cells[len(retained)+2] = tabular.Cell(levelStr)
			cells[len(retained)+3] = tabular.Cell(prompt)
			cells[len(retained)+4] = resp
			if err := out.AppendRow(cells); err != nil {
				return nil, fmt.Errorf("AssemblePrompts: %w", err)
			}
		}
	}
	return out, nil
}
