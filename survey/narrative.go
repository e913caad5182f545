package survey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

// NarrativeMode selects the grammatical person of the demographic base
// narrative.
type NarrativeMode int

const (
	// SecondPerson produces "You are ..." narratives addressed to the model.
	SecondPerson NarrativeMode = iota
	// ThirdPerson produces "Consider the following person ..." narratives
	// with she/he pronouns derived from the gender column.
	ThirdPerson
)

// Derived column names written by BuildDemographicBase.
const (
	BaseColumn = "demo_base"

	emplColumn   = "empl"
	elecColumn   = "elec"
	mobileColumn = "mobile"
	clinicColumn = "clinic"
	partyColumn  = "party"
	voteColumn   = "vote"

	pronounNomColumn = "pronoun_nom"
	pronounPosColumn = "pronoun_pos"
)

// Condition lists shared by both narrative modes. Order is significant: the
// employment list distinguishes four mutually exclusive codes, but the
// mobile-phone and voting lists rely on earlier, narrower conditions
// shadowing later catch-alls.
var (
	emplConds = []Predicate{
		Eq("Q93A", "No (not looking)"),
		Eq("Q93A", "No (looking)"),
		Eq("Q93A", "Yes, part time"),
		Eq("Q93A", "Yes, full time"),
	}
	elecConds = []Predicate{
		Eq("Q92A", "No"),
		Eq("Q92A", "Yes"),
	}
	mobileConds = []Predicate{
		And(Eq("Q90F", "Yes (personally owns)"), Eq("Q90G", "No (Does not have internet access)")),
		And(Eq("Q90F", "Yes (personally owns)"), Eq("Q90G", "Yes (Have internet)")),
		Eq("Q90F", "Yes (personally owns)"),
		Eq("Q90F", "Someone else in household owns"),
		Eq("Q90F", "No, no one in the household owns"),
	}
	clinicConds = []Predicate{
		Eq("EA_FAC_D", "No"),
		Eq("EA_FAC_D", "Yes"),
	}
	partyConds = []Predicate{
		And(Eq("Q89A", "Yes (feels close to a party)"), NotIn("Q89B", "Refused", "Don't know")),
		Eq("Q89A", "Yes (feels close to a party)"),
		Eq("Q89A", "No (does NOT feel close to ANY party)"),
		Eq("Q89A", "Don't know"),
	}
	// The last voting condition is the negation of the third: a catch-all
	// for every remaining category, interpolating the chosen party name.
	voteConds = []Predicate{
		Eq("Q96", "Would not vote"),
		Eq("Q96", "Don't know"),
		Eq("Q96", "Refused to answer"),
		NotEq("Q96", "Refused to answer"),
	}
)

func pairCases(conds []Predicate, choices []Choice) []Case {
	if len(conds) != len(choices) {
		panic(fmt.Sprintf("pairCases: %d conditions, %d choices", len(conds), len(choices)))
	}
	out := make([]Case, len(conds))
	for i := range conds {
		out[i] = Case{When: conds[i], Then: choices[i]}
	}
	return out
}

var secondPersonFragments = map[string][]Case{
	emplColumn: pairCases(emplConds, []Choice{
		Text("You are unemployed and not looking for a job."),
		Text("You are unemployed and looking for a job."),
		Text("You have a part-time job."),
		Text("You have a full-time job."),
	}),
	elecColumn: pairCases(elecConds, []Choice{
		Text("You don't live in a home with electricity connection."),
		Text("You live in a home with electricity connection."),
	}),
	mobileColumn: pairCases(mobileConds, []Choice{
		Text("You personally own a mobile phone but your phone doesn't have an Internet access."),
		Text("You personally own a mobile phone and your phone has an Internet access."),
		Text("You personally own a mobile phone."),
		Text("You don't personally own a mobile phone but someone else in the household owns a mobile phone."),
		Text("No one in your household owns a mobile phone."),
	}),
	clinicColumn: pairCases(clinicConds, []Choice{
		Text("There's no health clinic near home."),
		Text("There's a health clinic near home."),
	}),
	partyColumn: pairCases(partyConds, []Choice{
		Textf(func(r RowView) string { return "You feel close to " + r.Str("Q89B") + "." }),
		Text("You have a political party you feel close."),
		Text("You don't feel close to any particular party."),
		Text("You don't know if you feel close to any particular party."),
	}),
	voteColumn: pairCases(voteConds, []Choice{
		Text("You would not vote if a presidential election is held tomorrow."),
		Text("You don't know who you would vote for if a presidential election is held tomorrow."),
		Text(""),
		Textf(func(r RowView) string {
			return "The political party of your preferred presidential candidate is " + r.Str("Q96") + "."
		}),
	}),
}

// Third-person fragments read the pronoun columns, which are filled before
// any fragment is evaluated. An unknown gender leaves both pronouns empty,
// which degrades the grammar but never fails.
var thirdPersonFragments = map[string][]Case{
	emplColumn: pairCases(emplConds, []Choice{
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " is unemployed and not looking for a job." }),
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " is unemployed and looking for a job." }),
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " has a part-time job." }),
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " has a full-time job." }),
	}),
	elecColumn: pairCases(elecConds, []Choice{
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " doesn't live in a home with electricity connection." }),
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " lives in a home with electricity connection." }),
	}),
	mobileColumn: pairCases(mobileConds, []Choice{
		Textf(func(r RowView) string {
			return r.Str(pronounNomColumn) + " personally owns a mobile phone but " + r.Str(pronounPosColumn) + " phone doesn't have an Internet access."
		}),
		Textf(func(r RowView) string {
			return r.Str(pronounNomColumn) + " personally owns a mobile phone and " + r.Str(pronounPosColumn) + " phone has an Internet access."
		}),
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " personally owns a mobile phone." }),
		Textf(func(r RowView) string {
			return r.Str(pronounNomColumn) + " doesn't personally own a mobile phone but someone else in the household owns a mobile phone."
		}),
		Textf(func(r RowView) string { return "No one in " + r.Str(pronounPosColumn) + " household owns a mobile phone." }),
	}),
	clinicColumn: pairCases(clinicConds, []Choice{
		Textf(func(r RowView) string { return "There's no health clinic near " + r.Str(pronounPosColumn) + " home." }),
		Textf(func(r RowView) string { return "There's a health clinic near " + r.Str(pronounPosColumn) + " home." }),
	}),
	partyColumn: pairCases(partyConds, []Choice{
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " feels close to " + r.Str("Q89B") + "." }),
		Textf(func(r RowView) string {
			return r.Str(pronounNomColumn) + " has a political party " + r.Str(pronounNomColumn) + " feels close."
		}),
		Textf(func(r RowView) string { return r.Str(pronounNomColumn) + " doesn't feel close to any particular party." }),
		Textf(func(r RowView) string {
			return r.Str(pronounNomColumn) + " doesn't know if " + r.Str(pronounNomColumn) + " feels close to any particular party."
		}),
	}),
	voteColumn: pairCases(voteConds, []Choice{
		Textf(func(r RowView) string {
			return r.Str(pronounNomColumn) + " would not vote if a presidential election is held tomorrow."
		}),
		Textf(func(r RowView) string {
			return r.Str(pronounNomColumn) + " doesn't know who " + r.Str(pronounNomColumn) + " would vote for if a presidential election is held tomorrow."
		}),
		Text(""),
		Textf(func(r RowView) string {
			return "The political party of " + r.Str(pronounPosColumn) + " preferred presidential candidate is " + r.Str("Q96") + "."
		}),
	}),
}

var fragmentOrder = []string{emplColumn, elecColumn, mobileColumn, clinicColumn, partyColumn, voteColumn}

// Priority recode of the open-ended "most important problem" answer (Q45PT1)
// into three coarse buckets, overwriting the column in place. The small
// exclusion set keeps its literal answers.
var priorityCases = []Case{
	{
		When: In("Q45PT1", "Health", "AIDS", "COVID-19", "Sickness / Disease"),
		Then: Text("Health-related issues such as health, sickness/disease, COVID-19 and AIDS"),
	},
	{
		When: In("Q45PT1", "Nothing/ no problems", "Refused", "Don't know"),
		Then: Col("Q45PT1"),
	},
	{
		When: NotIn("Q45PT1", "Nothing/ no problems", "Refused", "Don't know"),
		Then: Text("Issues other than health such as the economy, food/agriculture, infrastructure, public services, country's governance and climate"),
	},
}

var genderPronouns = []Case{
	{When: Eq("Q100", "Woman"), Then: Text("She")},
	{When: Eq("Q100", "Man"), Then: Text("He")},
}

var genderPossessives = []Case{
	{When: Eq("Q100", "Woman"), Then: Text("Her")},
	{When: Eq("Q100", "Man"), Then: Text("His")},
}

// BuildDemographicBase recodes the raw demographic answers into narrative
// fragments and writes the per-respondent base narrative into the demo_base
// column, in the grammatical person selected by mode. The fragment columns
// (empl, elec, mobile, clinic, party, vote, and for ThirdPerson the pronoun
// pair) are kept on the table. It also applies the priority recode to
// Q45PT1.
//
// A non-numeric age cell (Q1) yields a *TypeConversionError.
func BuildDemographicBase(t *tabular.Table, mode NarrativeMode) error {
	if t == nil {
		return errors.New("BuildDemographicBase: table is nil")
	}

	fragments := secondPersonFragments
	derived := fragmentOrder
	if mode == ThirdPerson {
		fragments = thirdPersonFragments
		derived = append([]string{pronounNomColumn, pronounPosColumn}, fragmentOrder...)
	}
	for _, c := range derived {
		if !t.HasColumn(c) {
			if err := t.AddColumn(c, tabular.Cell("")); err != nil {
				return fmt.Errorf("BuildDemographicBase: %w", err)
			}
		}
	}
	if !t.HasColumn(BaseColumn) {
		if err := t.AddColumn(BaseColumn, tabular.Cell("")); err != nil {
			return fmt.Errorf("BuildDemographicBase: %w", err)
		}
	}

	for i := 0; i < t.NumRows(); i++ {
		r := View(t, i)

		if mode == ThirdPerson {
			nom := Evaluate(genderPronouns, Text(""), r)
			pos := Evaluate(genderPossessives, Text(""), r)
			if err := t.Set(i, pronounNomColumn, nom); err != nil {
				return fmt.Errorf("BuildDemographicBase: %w", err)
			}
			if err := t.Set(i, pronounPosColumn, pos); err != nil {
				return fmt.Errorf("BuildDemographicBase: %w", err)
			}
		}

		for _, col := range fragmentOrder {
			if err := t.Set(i, col, tabular.Cell(EvaluateText(fragments[col], r))); err != nil {
				return fmt.Errorf("BuildDemographicBase: %w", err)
			}
		}

		base, err := composeBase(r, mode)
		if err != nil {
			return err
		}
		if err := t.Set(i, BaseColumn, tabular.Cell(base)); err != nil {
			return fmt.Errorf("BuildDemographicBase: %w", err)
		}

		if err := t.Set(i, "Q45PT1", Evaluate(priorityCases, Col("Q45PT1"), r)); err != nil {
			return fmt.Errorf("BuildDemographicBase: %w", err)
		}
	}
	return nil
}

func composeBase(r RowView, mode NarrativeMode) (string, error) {
	age, err := formatAge(r.Value("Q1"))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if mode == SecondPerson {
		b.WriteString("You are Ghanaian and you live in a " + r.Str("URBRUR"))
		b.WriteString(" area in the " + r.Str("REGION"))
		b.WriteString(" region of Ghana. You are " + age)
		b.WriteString(" years old. You are a " + r.Str("Q100"))
		b.WriteString(" and your race is " + r.Str("Q101"))
		b.WriteString(". The primary language you speak at home is " + r.Str("Q2"))
		b.WriteString(". Your highest level of education is " + r.Str("Q94"))
		b.WriteString(". Your religion is " + r.Str("Q95"))
		b.WriteString(". You identify as " + r.Str("Q84A") + ". ")
		b.WriteString(r.Str(emplColumn))
		b.WriteString(" Your last occupation is " + r.Str("Q93B"))
		b.WriteString(". Your household's main source of water is " + r.Str("Q91A"))
		b.WriteString(". " + r.Str(elecColumn))
		b.WriteString(" " + r.Str(mobileColumn))
		b.WriteString(" " + r.Str(clinicColumn))
		b.WriteString(" You feel " + r.Str("Q4B"))
		b.WriteString(" about your present living condition. " + r.Str(partyColumn))
		b.WriteString(" " + r.Str(voteColumn))
		b.WriteString(" Answer the question")
		return b.String(), nil
	}

	nom := r.Str(pronounNomColumn)
	pos := r.Str(pronounPosColumn)
	b.WriteString("Consider the following person: A Ghanaian who lives in a " + r.Str("URBRUR"))
	b.WriteString(" area in the " + r.Str("REGION"))
	b.WriteString(" region of Ghana. " + nom + " is " + age)
	b.WriteString(" years old. " + nom + " is a " + r.Str("Q100"))
	b.WriteString(" and " + pos + " race is " + r.Str("Q101"))
	b.WriteString(". The primary language " + nom + " speaks at home is " + r.Str("Q2"))
	b.WriteString(". " + pos + " highest level of education is " + r.Str("Q94"))
	b.WriteString(". " + pos + " religion is " + r.Str("Q95"))
	b.WriteString(". " + nom + " identifies as " + r.Str("Q84A") + ". ")
	b.WriteString(r.Str(emplColumn))
	b.WriteString(" " + pos + " last occupation is " + r.Str("Q93B"))
	b.WriteString(". " + pos + " household's main source of water is " + r.Str("Q91A"))
	b.WriteString(". " + r.Str(elecColumn))
	b.WriteString(" " + r.Str(mobileColumn))
	b.WriteString(" " + r.Str(clinicColumn))
	b.WriteString(" " + nom + " feels " + r.Str("Q4B"))
	b.WriteString(" about " + pos + " present living condition. " + r.Str(partyColumn))
	b.WriteString(" " + r.Str(voteColumn))
	b.WriteString(" How do you think " + nom + " would answer the question")
	return b.String(), nil
}

// formatAge renders the age cell as an integer string. Survey exports store
// it either as "35" or as a float like "35.0"; the fractional part is
// truncated, matching integer coercion in the source data's codebook tools.
func formatAge(v tabular.Value) (string, error) {
	if v.Missing {
		return "", &TypeConversionError{Column: "Q1", Value: ""}
	}
	s := strings.TrimSpace(v.Str)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", &TypeConversionError{Column: "Q1", Value: v.Str}
	}
	return strconv.Itoa(int(f)), nil
}
