package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DatasetIndexColumn is the column uploaded datasets are indexed by.
const DatasetIndexColumn = "Id"

var ErrNoIDColumn = fmt.Errorf("dataset has no %q column", DatasetIndexColumn)

// Dataset is a CSV table keyed by its Id column.
type Dataset struct {
	Index   string       `json:"index"`
	Columns []string     `json:"columns"`
	Rows    []DatasetRow `json:"rows"`
}

type DatasetRow struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

// ParseDataset reads a CSV with a header row. Input that is not valid UTF-8
// is decoded as Windows-1252.
func ParseDataset(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		raw, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	idCol := -1
	for i, h := range header {
		if strings.TrimSpace(h) == DatasetIndexColumn {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, ErrNoIDColumn
	}

	ds := &Dataset{Index: DatasetIndexColumn}
	for i, h := range header {
		if i != idCol {
			ds.Columns = append(ds.Columns, strings.TrimSpace(h))
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		row := DatasetRow{Values: make([]string, 0, len(ds.Columns))}
		for i := range header {
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			if i == idCol {
				row.ID = cell
				continue
			}
			row.Values = append(row.Values, cell)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// LoadDataset parses the CSV at path.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ParseDataset(f)
}
