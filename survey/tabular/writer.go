package tabular

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WriteCSV writes the table as a comma-delimited file with a header row.
// Missing cells are written as empty fields. The write is atomic: a temp
// file in the destination directory renamed into place.
func WriteCSV(path string, t *Table, overwrite bool) error {
	if path == "" {
		return errors.New("WriteCSV: path is empty")
	}
	if t == nil {
		return errors.New("WriteCSV: table is nil")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("WriteCSV: file exists: %s", path)
		}
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(t.Columns()); err != nil {
		return fmt.Errorf("WriteCSV: header: %w", err)
	}
	rec := make([]string, len(t.cols))
	for _, row := range t.rows {
		for i, v := range row {
			if v.Missing {
				rec[i] = ""
			} else {
				rec[i] = v.Str
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("WriteCSV: row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("WriteCSV: flush: %w", err)
	}
	return writeFileAtomic(path, []byte(b.String()), 0o644)
}

// WriteJSONL writes one JSON object per row, keyed by column name. Missing
// cells are emitted as null so consumers can tell absence from the empty
// string.
func WriteJSONL(path string, t *Table, overwrite bool) error {
	if path == "" {
		return errors.New("WriteJSONL: path is empty")
	}
	if t == nil {
		return errors.New("WriteJSONL: table is nil")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("WriteJSONL: file exists: %s", path)
		}
	}

	var b strings.Builder
	for _, row := range t.rows {
		obj := make(map[string]any, len(t.cols))
		for i, c := range t.cols {
			if row[i].Missing {
				obj[c] = nil
			} else {
				obj[c] = row[i].Str
			}
		}
		line, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("WriteJSONL: marshal row: %w", err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return writeFileAtomic(path, []byte(b.String()), 0o644)
}

func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp_table_*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
