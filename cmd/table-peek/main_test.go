package main

import (
	"flag"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("table-peek", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{"-in", "data.csv"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Rows != 5 {
		t.Fatalf("Rows=%d, want 5", cfg.Rows)
	}
	if cfg.InPath != "data.csv" {
		t.Fatalf("InPath=%q", cfg.InPath)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("expected error for missing -in")
	}
	if err := (Config{InPath: "x.csv", Rows: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative -rows")
	}
	if err := (Config{InPath: "x.csv", Rows: 0}).Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
