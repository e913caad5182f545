package survey

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

// RequiredInterviewQuestions are the substantive questions a respondent must
// have answered (non-missing, post placeholder filtering) to enter the
// synthetic interview set.
var RequiredInterviewQuestions = []string{"Q6C", "Q41A", "Q41D", "Q9A"}

// interviewTurn is one canonical Q/A turn of the synthetic interview.
// Demographic turns pull their answer from a retained wide column; response
// turns pull theirs from the long-form Response of a specific question.
type interviewTurn struct {
	field    string // suffix of the text_/answer_ output columns
	question string // full interviewer line, including the response menu
	column   string // wide column holding the answer ("" for response turns)
	respQ    string // long-form question id ("" for demographic turns)
}

// Canonical transcript order. Leave-one-out transcripts keep this order for
// the nine remaining turns and append the held-out question last.
var interviewTurns = []interviewTurn{
	{field: "age", question: "What is your age in years?", column: "Q1"},
	{field: "gender", question: "What is your gender? Please respond with: Man or Woman.", column: "Q100"},
	{field: "race", question: "What is your race? Please respond with: Black or Coloured.", column: "Q101"},
	{field: "education", question: "What is your highest level of education? Please respond with: university, diploma, secondary, primary school or no formal schooling.", column: "Q94"},
	{field: "political_conv", question: "When you get together with your friends or family, how often would you say you discuss political matters? Please respond with: Occasionally, Never or Frequently.", column: "Q8"},
	{field: "econ_assess", question: "In general, how would you describe: The present economic condition of this country? Please respond with: Very good, Fairly good, Neither good nor bad, Fairly bad or Very bad.", column: "Q4A"},
	{field: "freedom", question: "In this country, how free are you: to say what you think? Please respond with: Completely free, Somewhat free, Not very free or Not at all free.", respQ: "Q9A"},
	{field: "medicine", question: "Over the past year, how often, if ever, have you or anyone in your family gone without: Medicines or medical treatment? Please respond with: Always, Many times, Several times, Just once or twice or Never.", respQ: "Q6C"},
	{field: "clinic", question: "In the past 12 months, have you had contact with a public clinic or hospital? Please respond with: Yes or No.", respQ: "Q41A"},
	{field: "health_trust", question: "In general, when dealing with health workers and clinic or hospital staff, how much do you feel you can trust them? Please respond with: A lot, A little bit, Somewhat, No contact or Not at all.", respQ: "Q41D"},
}

// Output column order mirrors the transcript fields held out latest-first.
var interviewFieldOrder = []string{
	"health_trust", "clinic", "medicine", "freedom", "econ_assess",
	"political_conv", "education", "race", "gender", "age",
}

// Education collapses to five ordered buckets; race to two. Unmatched values
// become missing (not empty) so they can be told apart from a recoded empty
// fragment downstream.
var educationCases = []Case{
	{When: In("Q94", "No formal schooling", "Informal schooling only (including Koranic schooling)"), Then: Text("No formal schooling")},
	{When: In("Q94", "Some primary schooling", "Primary school completed"), Then: Text("Primary school")},
	{When: In("Q94", "Intermediate school or Some secondary school / high school", "Secondary school / high school completed"), Then: Text("Secondary")},
	{When: Eq("Q94", "Post-secondary qualifications, other than university e.g. a diploma or degree from a polytechnic or college"), Then: Text("Diploma")},
	{When: NotIn("Q94", "Don't know", "Refused"), Then: Text("University")},
}

var raceCases = []Case{
	{When: Eq("Q101", "Black / African"), Then: Text("Black")},
	{When: Eq("Q101", "Coloured / Mixed race"), Then: Text("Coloured")},
}

// BuildInterviews turns the long-form prompt table into one row per
// respondent with ten leave-one-out interview transcripts and the ten
// literal answers as ground truth.
//
// Only rows for the four required questions are considered; if the input
// does not cover all four it fails with an *IncompleteQuestionSetError.
// Respondents missing an answer to any required question are excluded. A
// field that should be scalar per respondent but is not fails with an
// *AmbiguousValueError.
func BuildInterviews(long *tabular.Table) (*tabular.Table, error) {
	if long == nil {
		return nil, errors.New("BuildInterviews: table is nil")
	}
	for _, c := range []string{IDColumn, QuestionColumn, ResponseColumn} {
		if !long.HasColumn(c) {
			return nil, &tabular.MissingColumnError{Column: c}
		}
	}

	// Restrict to the required questions and collect row indices per
	// respondent, preserving first-appearance order of IDs.
	required := make(map[string]struct{}, len(RequiredInterviewQuestions))
	for _, q := range RequiredInterviewQuestions {
		required[q] = struct{}{}
	}
	questionsSeen := make(map[string]struct{})
	rowsByID := make(map[string][]int)
	var idOrder []string
	for i := 0; i < long.NumRows(); i++ {
		q, _ := long.Get(i, QuestionColumn)
		if q.Missing {
			continue
		}
		if _, ok := required[q.Str]; !ok {
			continue
		}
		questionsSeen[q.Str] = struct{}{}
		id, _ := long.Get(i, IDColumn)
		if id.Missing {
			continue
		}
		if _, ok := rowsByID[id.Str]; !ok {
			idOrder = append(idOrder, id.Str)
		}
		rowsByID[id.Str] = append(rowsByID[id.Str], i)
	}

	if len(questionsSeen) < len(RequiredInterviewQuestions) {
		var missing []string
		for _, q := range RequiredInterviewQuestions {
			if _, ok := questionsSeen[q]; !ok {
				missing = append(missing, q)
			}
		}
		sort.Strings(missing)
		return nil, &IncompleteQuestionSetError{
			Want:    append([]string(nil), RequiredInterviewQuestions...),
			Missing: missing,
		}
	}

	outColumns := make([]string, 0, 1+2*len(interviewFieldOrder))
	outColumns = append(outColumns, "ID")
	for _, f := range interviewFieldOrder {
		outColumns = append(outColumns, "text_"+f)
	}
	for _, f := range interviewFieldOrder {
		outColumns = append(outColumns, "answer_"+f)
	}
	out, err := tabular.New(outColumns)
	if err != nil {
		return nil, fmt.Errorf("BuildInterviews: %w", err)
	}

	for _, id := range idOrder {
		rows := rowsByID[id]

		// Completeness: every required question answered, not just present.
		answered := make(map[string]struct{}, len(rows))
		for _, ri := range rows {
			resp, _ := long.Get(ri, ResponseColumn)
			if resp.Missing {
				continue
			}
			q, _ := long.Get(ri, QuestionColumn)
			answered[q.Str] = struct{}{}
		}
		if len(answered) < len(RequiredInterviewQuestions) {
			continue
		}

		answers, err := extractAnswers(long, id, rows)
		if err != nil {
			return nil, err
		}

		cells := make([]tabular.Value, 0, len(outColumns))
		cells = append(cells, tabular.Cell(id))
		for _, f := range interviewFieldOrder {
			cells = append(cells, tabular.Cell(transcriptFor(f, answers)))
		}
		for _, f := range interviewFieldOrder {
			cells = append(cells, answers[f])
		}
		if err := out.AppendRow(cells); err != nil {
			return nil, fmt.Errorf("BuildInterviews: %w", err)
		}
	}
	return out, nil
}

// extractAnswers resolves the ten turn answers for one respondent, applying
// the education/race/age conversions and insisting each field is scalar.
func extractAnswers(long *tabular.Table, id string, rows []int) (map[string]tabular.Value, error) {
	answers := make(map[string]tabular.Value, len(interviewTurns))
	for _, turn := range interviewTurns {
		var v tabular.Value
		var err error
		if turn.respQ != "" {
			v, err = scalarResponse(long, id, rows, turn.field, turn.respQ)
		} else {
			v, err = scalarColumn(long, id, rows, turn.field, turn.column)
		}
		if err != nil {
			return nil, err
		}

		switch turn.field {
		case "age":
			if !v.Missing {
				age, err := formatAge(v)
				if err != nil {
					return nil, err
				}
				v = tabular.Cell(age)
			}
		case "education":
			v = Evaluate(educationCases, Missing, View(long, rows[0]))
		case "race":
			v = Evaluate(raceCases, Missing, View(long, rows[0]))
		}
		answers[turn.field] = v
	}
	return answers, nil
}

// scalarColumn returns the single value a retained wide column takes across
// a respondent's long rows.
func scalarColumn(long *tabular.Table, id string, rows []int, field, column string) (tabular.Value, error) {
	if !long.HasColumn(column) {
		return tabular.NA, &tabular.MissingColumnError{Column: column}
	}
	var (
		distinct []string
		seen     = make(map[string]struct{})
		val      tabular.Value
		sawAny   bool
	)
	for _, ri := range rows {
		v, _ := long.Get(ri, column)
		key := "s:" + v.Str
		if v.Missing {
			key = "na"
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, key)
		val = v
		sawAny = true
	}
	if len(distinct) > 1 {
		return tabular.NA, &AmbiguousValueError{RespondentID: id, Field: field, Values: distinct}
	}
	if !sawAny {
		return tabular.NA, nil
	}
	return val, nil
}

// scalarResponse returns the single Response value for one question among a
// respondent's long rows.
func scalarResponse(long *tabular.Table, id string, rows []int, field, question string) (tabular.Value, error) {
	var (
		distinct []string
		seen     = make(map[string]struct{})
		val      tabular.Value
		sawAny   bool
	)
	for _, ri := range rows {
		q, _ := long.Get(ri, QuestionColumn)
		if q.Missing || q.Str != question {
			continue
		}
		v, _ := long.Get(ri, ResponseColumn)
		key := "s:" + v.Str
		if v.Missing {
			key = "na"
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, key)
		val = v
		sawAny = true
	}
	if len(distinct) > 1 {
		return tabular.NA, &AmbiguousValueError{RespondentID: id, Field: field, Values: distinct}
	}
	if !sawAny {
		return tabular.NA, nil
	}
	return val, nil
}

// transcriptFor builds the leave-one-out transcript holding out target: the
// other nine Q/A turns in canonical order, then the held-out question with
// an empty answer line inviting completion.
func transcriptFor(target string, answers map[string]tabular.Value) string {
	var b strings.Builder
	for _, turn := range interviewTurns {
		if turn.field == target {
			continue
		}
		b.WriteString("Interviewer: " + turn.question + "\nMe: " + answerText(answers[turn.field]) + ".\n")
	}
	for _, turn := range interviewTurns {
		if turn.field == target {
			b.WriteString("Interviewer: " + turn.question + "\nMe:")
			break
		}
	}
	return b.String()
}

func answerText(v tabular.Value) string {
	if v.Missing {
		return ""
	}
	return v.Str
}
