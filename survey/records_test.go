package survey

import (
	"testing"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

func TestPromptRecords(t *testing.T) {
	t.Parallel()

	tbl := fixtureTable(t, completeRespondent("1"))
	if err := BuildDemographicBase(tbl, SecondPerson); err != nil {
		t.Fatalf("BuildDemographicBase: %v", err)
	}
	long, err := AssemblePrompts(tbl, nil, []string{"Q6C"}, []string{"gone without medicine"})
	if err != nil {
		t.Fatalf("AssemblePrompts: %v", err)
	}

	recs, err := PromptRecords(long)
	if err != nil {
		t.Fatalf("PromptRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records=%d, want 1", len(recs))
	}
	r := recs[0]
	if r.ID != "1" || r.Question != "Q6C" || r.Response != "Never" {
		t.Fatalf("got %+v", r)
	}
	if r.Prompt == "" || r.DemoBase == "" {
		t.Fatalf("prompt and base must be populated: %+v", r)
	}
}

func TestPromptRecords_MissingColumn(t *testing.T) {
	t.Parallel()

	tbl := rawTable(t, []string{"ID_"}, []string{"1"})
	if _, err := PromptRecords(tbl); err == nil {
		t.Fatalf("expected an error for a non-long-form table")
	}
}

func TestInterviewRows(t *testing.T) {
	t.Parallel()

	tbl := longFixture(t)
	longRespondent(t, tbl, "1", fullResponses())
	out, err := BuildInterviews(tbl)
	if err != nil {
		t.Fatalf("BuildInterviews: %v", err)
	}
	// Force a missing answer cell to check it reads back as "".
	if err := out.Set(0, "answer_race", tabular.NA); err != nil {
		t.Fatalf("Set: %v", err)
	}

	rows, err := InterviewRows(out)
	if err != nil {
		t.Fatalf("InterviewRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(rows))
	}
	r := rows[0]
	if r.ID != "1" || r.AnswerAge != "35" || r.AnswerGender != "Woman" {
		t.Fatalf("got %+v", r)
	}
	if r.AnswerRace != "" {
		t.Fatalf("AnswerRace=%q, want empty for a missing cell", r.AnswerRace)
	}
	if r.TextAge == "" || r.TextHealthTrust == "" {
		t.Fatalf("transcripts must be populated")
	}
}
