package survey

import (
	"errors"
	"fmt"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

// PromptRecord is the stable core of one long-form row: the columns every
// run produces regardless of which demographic columns ride along.
type PromptRecord struct {
	ID            string `json:"ID_"`
	DemoBase      string `json:"demo_base"`
	Question      string `json:"Question"`
	ResponseLevel string `json:"Response_level"`
	Prompt        string `json:"Prompt"`
	Response      string `json:"Response,omitempty"`
}

// PromptRecords extracts the core fields from a long-form table produced by
// AssemblePrompts. Missing responses become the empty string.
func PromptRecords(long *tabular.Table) ([]PromptRecord, error) {
	if long == nil {
		return nil, errors.New("PromptRecords: table is nil")
	}
	for _, c := range []string{IDColumn, BaseColumn, QuestionColumn, ResponseLevelColumn, PromptColumn, ResponseColumn} {
		if !long.HasColumn(c) {
			return nil, &tabular.MissingColumnError{Column: c}
		}
	}
	out := make([]PromptRecord, 0, long.NumRows())
	for i := 0; i < long.NumRows(); i++ {
		r := View(long, i)
		out = append(out, PromptRecord{
			ID:            r.Str(IDColumn),
			DemoBase:      r.Str(BaseColumn),
			Question:      r.Str(QuestionColumn),
			ResponseLevel: r.Str(ResponseLevelColumn),
			Prompt:        r.Str(PromptColumn),
			Response:      r.Str(ResponseColumn),
		})
	}
	return out, nil
}

// InterviewRow is one respondent's synthetic-interview output: ten
// leave-one-out transcripts and the ten literal answers.
type InterviewRow struct {
	ID string `json:"ID"`

	TextHealthTrust   string `json:"text_health_trust"`
	TextClinic        string `json:"text_clinic"`
	TextMedicine      string `json:"text_medicine"`
	TextFreedom       string `json:"text_freedom"`
	TextEconAssess    string `json:"text_econ_assess"`
	TextPoliticalConv string `json:"text_political_conv"`
	TextEducation     string `json:"text_education"`
	TextRace          string `json:"text_race"`
	TextGender        string `json:"text_gender"`
	TextAge           string `json:"text_age"`

	AnswerHealthTrust   string `json:"answer_health_trust"`
	AnswerClinic        string `json:"answer_clinic"`
	AnswerMedicine      string `json:"answer_medicine"`
	AnswerFreedom       string `json:"answer_freedom"`
	AnswerEconAssess    string `json:"answer_econ_assess"`
	AnswerPoliticalConv string `json:"answer_political_conv"`
	AnswerEducation     string `json:"answer_education"`
	AnswerRace          string `json:"answer_race"`
	AnswerGender        string `json:"answer_gender"`
	AnswerAge           string `json:"answer_age"`
}

// InterviewRows converts the BuildInterviews output table into typed rows.
func InterviewRows(t *tabular.Table) ([]InterviewRow, error) {
	if t == nil {
		return nil, errors.New("InterviewRows: table is nil")
	}
	get := func(i int, col string) (string, error) {
		v, ok := t.Get(i, col)
		if !ok {
			return "", &tabular.MissingColumnError{Column: col}
		}
		if v.Missing {
			return "", nil
		}
		return v.Str, nil
	}
	out := make([]InterviewRow, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		row := InterviewRow{}
		fields := []struct {
			col string
			dst *string
		}{
			{"ID", &row.ID},
			{"text_health_trust", &row.TextHealthTrust},
			{"text_clinic", &row.TextClinic},
			{"text_medicine", &row.TextMedicine},
			{"text_freedom", &row.TextFreedom},
			{"text_econ_assess", &row.TextEconAssess},
			{"text_political_conv", &row.TextPoliticalConv},
			{"text_education", &row.TextEducation},
			{"text_race", &row.TextRace},
			{"text_gender", &row.TextGender},
			{"text_age", &row.TextAge},
			{"answer_health_trust", &row.AnswerHealthTrust},
			{"answer_clinic", &row.AnswerClinic},
			{"answer_medicine", &row.AnswerMedicine},
			{"answer_freedom", &row.AnswerFreedom},
			{"answer_econ_assess", &row.AnswerEconAssess},
			{"answer_political_conv", &row.AnswerPoliticalConv},
			{"answer_education", &row.AnswerEducation},
			{"answer_race", &row.AnswerRace},
			{"answer_gender", &row.AnswerGender},
			{"answer_age", &row.AnswerAge},
		}
		for _, f := range fields {
			s, err := get(i, f.col)
			if err != nil {
				return nil, fmt.Errorf("InterviewRows: %w", err)
			}
			*f.dst = s
		}
		out = append(out, row)
	}
	return out, nil
}
