package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

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
		reflector := jsonschema.Reflector{DoNotReference: true}
		b, err := json.MarshalIndent(reflector.Reflect(&survey.InterviewRow{}), "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("marshal schema: %w", err).Error())
			os.Exit(1)
		}
		fmt.Fprintln(os.Stdout, string(b))
		return
	}

	long, err := tabular.Load(cfg.InPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	interviews, err := survey.BuildInterviews(long)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if cfg.OutCSV != "" {
		if err := tabular.WriteCSV(cfg.OutCSV, interviews, cfg.Overwrite); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
	if cfg.OutJSONL != "" {
		if err := tabular.WriteJSONL(cfg.OutJSONL, interviews, cfg.Overwrite); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stdout, "input_rows=%d interview_rows=%d\n", long.NumRows(), interviews.NumRows())
}
