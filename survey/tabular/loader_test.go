package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "survey.csv", "Q1,Q100,Q6C\n35,Woman,Never\n40,,Often\n")
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns(), []string{"Q1", "Q100", "Q6C"}) {
		t.Fatalf("columns=%v", tbl.Columns())
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("rows=%d", tbl.NumRows())
	}
	v, _ := tbl.Get(1, "Q100")
	if !v.Missing {
		t.Fatalf("empty field should load as missing, got %+v", v)
	}
	v, _ = tbl.Get(1, "Q6C")
	if v.Str != "Often" {
		t.Fatalf("Q6C=%q", v.Str)
	}
}

func TestLoad_TSV(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "survey.tsv", "Q1\tQ100\n35\tWoman\n")
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v, _ := tbl.Get(0, "Q100")
	if v.Str != "Woman" {
		t.Fatalf("Q100=%q", v.Str)
	}
}

func TestLoad_CSVWithBOM(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "bom.csv", "\ufeffQ1,Q100\n35,Woman\n")
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tbl.HasColumn("Q1") {
		t.Fatalf("BOM not stripped from first header cell: %v", tbl.Columns())
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := Load("data.parquet")
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("err=%v, want UnsupportedFormatError", err)
	}
	if ufe.Extension != ".parquet" {
		t.Fatalf("Extension=%q", ufe.Extension)
	}
}

func TestLoad_KnownFormatWithoutReader(t *testing.T) {
	t.Parallel()

	_, err := Load("ghana_r9.sav")
	if err == nil || !strings.Contains(err.Error(), "RegisterReader") {
		t.Fatalf("err=%v, want registration hint", err)
	}
	var ufe *UnsupportedFormatError
	if errors.As(err, &ufe) {
		t.Fatalf("a recognized extension must not report UnsupportedFormatError")
	}
}

func TestLoad_RegisteredReader(t *testing.T) {
	// Mutates the package-level registry; not parallel.
	RegisterReader(".rdata", func(path string) (*Table, error) {
		tbl, err := New([]string{"Q1"})
		if err != nil {
			return nil, err
		}
		return tbl, tbl.AppendRow([]Value{Cell("35")})
	})
	defer delete(registry, ".rdata")

	tbl, err := Load("ghana_r9.RData")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v, _ := tbl.Get(0, "Q1")
	if v.Str != "35" {
		t.Fatalf("Q1=%q", v.Str)
	}
}

func TestTableFromRecords_PadsShortRows(t *testing.T) {
	t.Parallel()

	tbl, err := tableFromRecords([][]string{
		{"A", "B", "C"},
		{"1", "2"},
	}, "sheet.xlsx")
	if err != nil {
		t.Fatalf("tableFromRecords: %v", err)
	}
	v, _ := tbl.Get(0, "C")
	if !v.Missing {
		t.Fatalf("padded cell should be missing, got %+v", v)
	}
}

func TestTableFromRecords_RejectsLongRows(t *testing.T) {
	t.Parallel()

	_, err := tableFromRecords([][]string{
		{"A"},
		{"1", "2"},
	}, "bad.csv")
	if err == nil {
		t.Fatalf("overlong row should fail")
	}
}

func TestTableFromRecords_NoHeader(t *testing.T) {
	t.Parallel()

	if _, err := tableFromRecords(nil, "empty.csv"); err == nil {
		t.Fatalf("empty input should fail")
	}
}
