package tabular

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writerFixture(t *testing.T) *Table {
	t.Helper()
	tbl, err := New([]string{"ID_", "Response"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.AppendRow([]Value{Cell("1"), Cell("Never")}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	if err := tbl.AppendRow([]Value{Cell("2"), NA}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	return tbl
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(path, writerFixture(t), false); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.NumRows() != 2 {
		t.Fatalf("rows=%d", back.NumRows())
	}
	v, _ := back.Get(1, "Response")
	if !v.Missing {
		t.Fatalf("missing cell did not survive the round trip: %+v", v)
	}
}

func TestWriteCSV_RefusesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteCSV(path, writerFixture(t), false); err == nil {
		t.Fatalf("expected an exists error without overwrite")
	}
	if err := WriteCSV(path, writerFixture(t), true); err != nil {
		t.Fatalf("overwrite should succeed: %v", err)
	}
}

func TestWriteJSONL_NullForMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := WriteJSONL(path, writerFixture(t), false); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%d, want 2", len(lines))
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &obj); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if obj["ID_"] != "2" {
		t.Fatalf("ID_=%v", obj["ID_"])
	}
	if v, ok := obj["Response"]; !ok || v != nil {
		t.Fatalf("Response=%v (present=%v), want explicit null", v, ok)
	}
}
