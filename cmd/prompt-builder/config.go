package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	InPath    string
	OutCSV    string
	OutJSONL  string
	BatchOut  string
	Model     string
	Person    string
	Overwrite bool

	DemoColumns   string
	RespColumns   string
	QuestionsFile string

	DumpSchema bool
}

func (c Config) Validate() error {
	if c.DumpSchema {
		return nil
	}
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutCSV == "" && c.OutJSONL == "" && c.BatchOut == "" {
		return errors.New("need at least one of -out, -jsonl, -batch-out")
	}
	switch strings.ToLower(strings.TrimSpace(c.Person)) {
	case "second", "third":
	default:
		return errors.New("-person must be second or third")
	}
	if strings.TrimSpace(c.DemoColumns) == "" {
		return errors.New("-demo-columns is empty")
	}
	if strings.TrimSpace(c.RespColumns) == "" {
		return errors.New("-resp-columns is empty")
	}
	if c.BatchOut != "" && strings.TrimSpace(c.Model) == "" {
		return errors.New("-batch-out needs -model")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Person:      "second",
		Model:       "gpt-4o-mini",
		DemoColumns: defaultDemoColumns,
		RespColumns: defaultRespColumns,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to the survey data file (.csv, .tsv, .xls, .xlsx)")
	fs.StringVar(&cfg.OutCSV, "out", cfg.OutCSV, "Output path for the long-form prompt table as CSV")
	fs.StringVar(&cfg.OutJSONL, "jsonl", cfg.OutJSONL, "Optional output path for the long-form prompt table as JSONL")
	fs.StringVar(&cfg.BatchOut, "batch-out", cfg.BatchOut, "Optional output path for an OpenAI Batch API request JSONL (nothing is sent anywhere)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Model name written into batch request bodies")
	fs.StringVar(&cfg.Person, "person", cfg.Person, "Narrative mode: second (\"You are\") or third (\"Consider the following person\")")
	fs.BoolVar(&cfg.Overwrite, "overwrite", false, "Overwrite existing output files")
	fs.StringVar(&cfg.DemoColumns, "demo-columns", cfg.DemoColumns, "Comma-separated demographic column names")
	fs.StringVar(&cfg.RespColumns, "resp-columns", cfg.RespColumns, "Comma-separated substantive column names (order must match the question texts)")
	fs.StringVar(&cfg.QuestionsFile, "questions-file", cfg.QuestionsFile, "Optional JSON file with the question text list (default: the built-in Ghana Round 9 texts)")
	fs.BoolVar(&cfg.DumpSchema, "schema", false, "Print the JSON schema of the emitted prompt records and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.InPath != "" {
		cfg.InPath = filepath.Clean(cfg.InPath)
	}
	return cfg, nil
}
