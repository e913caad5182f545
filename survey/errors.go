package survey

import "fmt"

// LengthMismatchError reports a question-text list whose length does not
// match the substantive column list it annotates.
type LengthMismatchError struct {
	Columns   int
	Questions int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("question text list has %d entries for %d substantive columns", e.Questions, e.Columns)
}

// TypeConversionError reports a cell that should be numeric but is not.
type TypeConversionError struct {
	Column string
	Value  string
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("column %s: value %q is not numeric", e.Column, e.Value)
}

// AmbiguousValueError reports a field that should hold exactly one value per
// respondent but holds several distinct ones. The pipeline fails loudly here
// rather than picking one arbitrarily.
type AmbiguousValueError struct {
	RespondentID string
	Field        string
	Values       []string
}

func (e *AmbiguousValueError) Error() string {
	return fmt.Sprintf("respondent %s: field %s has %d distinct values, expected one", e.RespondentID, e.Field, len(e.Values))
}

// IncompleteQuestionSetError reports a long-form table that does not carry
// every question the synthetic interview builder needs.
type IncompleteQuestionSetError struct {
	Want    []string
	Missing []string
}

func (e *IncompleteQuestionSetError) Error() string {
	return fmt.Sprintf("interview input covers %d of %d required questions (missing %v)", len(e.Want)-len(e.Missing), len(e.Want), e.Missing)
}
