package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/errors"
)

// ReadCSV reads a dataset from CSV. The first record is the header and
// defines the schema; every cell is parsed into a typed value and every
// row receives a fresh identifier.
func ReadCSV(r io.Reader) (*Dataset, error) {
	return readCSV(r, "")
}

// DecodeFile reads a dataset from a CSV file.
func DecodeFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	return readCSV(f, path)
}

func readCSV(r io.Reader, file string) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.ErrEmptyDataset
	}
	if err != nil {
		return nil, errors.WrapParse("csv", file, err)
	}

	seen := make(map[string]bool, len(header))
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if seen[key] {
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    file,
				Line:    1,
				Message: "duplicate column " + name,
			}
		}
		seen[key] = true
		columns[i] = name
	}

	dataset := NewDataset(columns...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", file, err)
		}

		row := NewRow()
		for i, cell := range record {
			row.Set(columns[i], Parse(cell))
		}
		if err := dataset.Append(row); err != nil {
			return nil, err
		}
	}
	return dataset, nil
}

// WriteCSV writes the dataset as CSV in schema order.
func (d *Dataset) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(d.columns); err != nil {
		return errors.WrapIO("write", "csv header", err)
	}

	record := make([]string, len(d.columns))
	for _, row := range d.rows {
		for i, column := range d.columns {
			record[i] = row.Get(column).String()
		}
		if err := writer.Write(record); err != nil {
			return errors.WrapIO("write", "csv record", err)
		}
	}

	writer.Flush()
	return errors.WrapIO("write", "csv", writer.Error())
}

// EncodeFile writes the dataset to a CSV file, creating the directory
// as needed. The write goes through a temporary file in the same
// directory and lands with a rename, so readers never observe a partial
// file.
func (d *Dataset) EncodeFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if err := d.WriteCSV(tempFile); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return err
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", tempPath, err)
	}

	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
