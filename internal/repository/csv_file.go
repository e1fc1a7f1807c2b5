package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvFile is a flat comma-delimited table stored as UTF-8 with a BOM.
// The first line is always the header.
type csvFile struct {
	path   string
	header []string
}

// ensure writes a header-only file when the file is missing or empty.
func (f csvFile) ensure() error {
	info, err := os.Stat(f.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", f.path, err)
	}
	return f.write(nil)
}

// read returns every data row, header excluded. Short rows are padded to the
// header width so callers can index columns safely.
func (f csvFile) read() ([][]string, error) {
	if err := f.ensure(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	rows := records[1:]
	for i, row := range rows {
		for len(row) < len(f.header) {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows, nil
}

// write replaces the whole file with header + rows. The content goes to a
// temporary file first and is renamed over the target.
func (f csvFile) write(rows [][]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(utf8BOM); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(f.header); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
