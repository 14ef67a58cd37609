// Package lookup holds the read-only phishing -> legitimate site table.
package lookup

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Mapping is built once at startup and never mutated, so it is safe for
// concurrent readers.
type Mapping struct {
	entries map[string]string
}

// New copies pairs into a Mapping, dropping blank suggestions.
func New(pairs map[string]string) *Mapping {
	m := &Mapping{entries: make(map[string]string, len(pairs))}
	for k, v := range pairs {
		m.add(k, v)
	}
	return m
}

func (m *Mapping) add(phishing, legitimate string) {
	phishing = strings.TrimSpace(phishing)
	legitimate = strings.TrimSpace(legitimate)
	if phishing == "" || legitimate == "" {
		return
	}
	m.entries[phishing] = legitimate
}

// Get is an exact-string lookup: no case folding, scheme or slash normalisation.
func (m *Mapping) Get(url string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.entries[url]
	return v, ok
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Load reads a two-column source without a header row: column one is the
// phishing URL, column two the legitimate one. The format follows the file
// extension (.xlsx or .csv).
func Load(path string) (*Mapping, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open mapping: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported mapping format %q", filepath.Ext(path))
	}
}

func loadXLSX(path string) (*Mapping, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("mapping workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read mapping sheet: %w", err)
	}
	return fromRows(rows), nil
}

// ReadCSV parses a headerless two-column CSV mapping.
func ReadCSV(r io.Reader) (*Mapping, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read mapping csv: %w", err)
	}
	return fromRows(rows), nil
}

func fromRows(rows [][]string) *Mapping {
	m := &Mapping{entries: make(map[string]string, len(rows))}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		m.add(row[0], row[1])
	}
	return m
}
