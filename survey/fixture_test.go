package survey

import (
	"testing"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

// fixtureColumns is the wide-table layout the narrative and assembler tests
// share: the demographic columns the base builder reads plus two substantive
// questions.
var fixtureColumns = []string{
	IDColumn,
	"URBRUR", "REGION", "Q1", "Q100", "Q101", "Q2", "Q94", "Q95", "Q84A",
	"Q93A", "Q93B", "EA_FAC_D", "Q91A", "Q92A", "Q90F", "Q90G", "Q4B",
	"Q89A", "Q89B", "Q96", "Q4A", "Q8",
	"Q45PT1", "Q6C", "Q41A",
}

// completeRespondent returns cell values for a respondent with every
// demographic answered. Tests override individual columns as needed.
func completeRespondent(id string) map[string]string {
	return map[string]string{
		IDColumn:   id,
		"URBRUR":   "Urban",
		"REGION":   "Greater Accra",
		"Q1":       "35",
		"Q100":     "Woman",
		"Q101":     "Black / African",
		"Q2":       "Akan",
		"Q94":      "Secondary school / high school completed",
		"Q95":      "Christian",
		"Q84A":     "Ghanaian",
		"Q93A":     "Yes, full time",
		"Q93B":     "Trader",
		"EA_FAC_D": "Yes",
		"Q91A":     "Piped water",
		"Q92A":     "Yes",
		"Q90F":     "Yes (personally owns)",
		"Q90G":     "Yes (Have internet)",
		"Q4B":      "Fairly good",
		"Q89A":     "Yes (feels close to a party)",
		"Q89B":     "NDC",
		"Q96":      "NPP",
		"Q4A":      "Fairly bad",
		"Q8":       "Occasionally",
		"Q45PT1":   "Unemployment",
		"Q6C":      "Never",
		"Q41A":     "Yes",
	}
}

// fixtureTable builds a wide table from per-respondent cell maps. A column
// absent from a map becomes a missing cell.
func fixtureTable(t *testing.T, respondents ...map[string]string) *tabular.Table {
	t.Helper()
	tbl, err := tabular.New(fixtureColumns)
	if err != nil {
		t.Fatalf("tabular.New: %v", err)
	}
	for _, r := range respondents {
		cells := make([]tabular.Value, len(fixtureColumns))
		for i, c := range fixtureColumns {
			if s, ok := r[c]; ok {
				cells[i] = tabular.Cell(s)
			} else {
				cells[i] = tabular.NA
			}
		}
		if err := tbl.AppendRow(cells); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	return tbl
}

func cellAt(t *testing.T, tbl *tabular.Table, row int, column string) tabular.Value {
	t.Helper()
	v, ok := tbl.Get(row, column)
	if !ok {
		t.Fatalf("no cell at row %d column %s", row, column)
	}
	return v
}
