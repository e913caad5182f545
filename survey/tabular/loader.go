package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// UnsupportedFormatError reports a file extension the loader does not
// recognize at all.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q", e.Extension)
}

// ReaderFunc loads one file into a Table. Readers for statistical formats
// must return categorical values as their text labels, not as category codes.
type ReaderFunc func(path string) (*Table, error)

// registry holds caller-provided readers for formats without a native Go
// implementation (.sav, .rdata). Keyed by lower-case extension with dot.
var registry = map[string]ReaderFunc{}

// RegisterReader installs a reader for an extension (e.g. ".sav"). Later
// registrations replace earlier ones for the same extension.
func RegisterReader(ext string, fn ReaderFunc) {
	registry[strings.ToLower(ext)] = fn
}

// Load reads a survey data file into a Table, dispatching on the file
// extension (case-insensitive). CSV, TSV, XLS and XLSX are read natively.
// SPSS .sav and R .rdata are recognized but need a registered ReaderFunc;
// there is no fetchable pure-Go reader for either format.
func Load(path string) (*Table, error) {
	if path == "" {
		return nil, errors.New("Load: path is empty")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if fn, ok := registry[ext]; ok {
		return fn(path)
	}
	switch ext {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".xlsx":
		return readXLSX(path)
	case ".xls":
		return readXLS(path)
	case ".sav", ".rdata":
		return nil, fmt.Errorf("Load: no reader registered for %q: convert the file to CSV or call RegisterReader", ext)
	default:
		return nil, &UnsupportedFormatError{Extension: ext}
	}
}

func readDelimited(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("readDelimited: open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("readDelimited: parse %s: %w", filepath.Base(path), err)
	}
	return tableFromRecords(records, path)
}

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("readXLSX: open: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("readXLSX: workbook has no sheets")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("readXLSX: read sheet %q: %w", sheet, err)
	}
	return tableFromRecords(records, path)
}

func readXLS(path string) (*Table, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("readXLS: open: %w", err)
	}
	records := wb.ReadAllCells(1 << 20)
	return tableFromRecords(records, path)
}

// tableFromRecords builds a Table out of header+data records. Empty cells
// become missing; short rows (spreadsheet readers trim trailing blanks) are
// padded with missing cells.
func tableFromRecords(records [][]string, path string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("tableFromRecords: %s has no header row", filepath.Base(path))
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t, err := New(header)
	if err != nil {
		return nil, fmt.Errorf("tableFromRecords: %s header: %w", filepath.Base(path), err)
	}
	for rn, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("tableFromRecords: %s row %d has %d cells, header has %d", filepath.Base(path), rn+2, len(rec), len(header))
		}
		cells := make([]Value, len(header))
		for i := range cells {
			if i >= len(rec) || rec[i] == "" {
				cells[i] = NA
				continue
			}
			cells[i] = Cell(rec[i])
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, fmt.Errorf("tableFromRecords: %w", err)
		}
	}
	return t, nil
}
