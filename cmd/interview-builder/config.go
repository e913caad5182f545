package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	InPath    string
	OutCSV    string
	OutJSONL  string
	Overwrite bool

	DumpSchema bool
}

func (c Config) Validate() error {
	if c.DumpSchema {
		return nil
	}
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutCSV == "" && c.OutJSONL == "" {
		return errors.New("need at least one of -out, -jsonl")
	}
	return nil
}

func defaultConfig() Config {
	return Config{}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to the long-form prompt table (CSV written by prompt-builder)")
	fs.StringVar(&cfg.OutCSV, "out", cfg.OutCSV, "Output path for the interview table as CSV")
	fs.StringVar(&cfg.OutJSONL, "jsonl", cfg.OutJSONL, "Optional output path for the interview table as JSONL")
	fs.BoolVar(&cfg.Overwrite, "overwrite", false, "Overwrite existing output files")
	fs.BoolVar(&cfg.DumpSchema, "schema", false, "Print the JSON schema of the emitted interview rows and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.InPath != "" {
		cfg.InPath = filepath.Clean(cfg.InPath)
	}
	return cfg, nil
}
