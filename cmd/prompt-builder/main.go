package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/theimaginaryfoundation/surveyprompt/survey"
	"github.com/theimaginaryfoundation/surveyprompt/survey/tabular"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	if cfg.DumpSchema {
		if err := printSchema(&survey.PromptRecord{}); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	questionTexts := defaultQuestionTexts
	if cfg.QuestionsFile != "" {
		questionTexts, err = loadQuestionTexts(cfg.QuestionsFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(2)
		}
	}

	mode := survey.SecondPerson
	if strings.ToLower(strings.TrimSpace(cfg.Person)) == "third" {
		mode = survey.ThirdPerson
	}

	raw, err := tabular.Load(cfg.InPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	demo := survey.SplitColumnList(cfg.DemoColumns)
	resp := survey.SplitColumnList(cfg.RespColumns)

	selected, err := survey.SelectColumns(raw, demo, resp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := survey.BuildDemographicBase(selected, mode); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	long, err := survey.AssemblePrompts(selected, demo, resp, questionTexts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if cfg.OutCSV != "" {
		if err := tabular.WriteCSV(cfg.OutCSV, long, cfg.Overwrite); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
	if cfg.OutJSONL != "" {
		if err := tabular.WriteJSONL(cfg.OutJSONL, long, cfg.Overwrite); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	batchLines := 0
	if cfg.BatchOut != "" {
		records, err := survey.PromptRecords(long)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		n, err := writeBatchRequests(cfg.BatchOut, records, cfg.Model, cfg.Overwrite)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		batchLines = n
	}

	fmt.Fprintf(os.Stdout, "respondents=%d prompt_rows=%d person=%s batch_lines=%d\n",
		selected.NumRows(), long.NumRows(), cfg.Person, batchLines)
}

func printSchema(v any) error {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(v)
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("printSchema: marshal: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(b))
	return nil
}
