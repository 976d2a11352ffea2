package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows, as read from a sheet or CSV file.
type Table struct {
	Header []string
	Rows   [][]string
	// Lines holds the source line of each row (the header is line 1).
	Lines []int
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// line returns the source line of row.
func (t *Table) line(row int) int {
	if row < len(t.Lines) {
		return t.Lines[row]
	}
	return row + 2
}

// cell returns the trimmed value at row/col; short rows read as empty.
func (t *Table) cell(row, col int) string {
	if col < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// optional returns nil for an empty cell.
func (t *Table) optional(row, col int) *string {
	v := t.cell(row, col)
	if v == "" {
		return nil
	}
	return &v
}

// ReadTable fetches source (a local path or http(s) URL) and decodes it.
// ".xlsx" sources read the first sheet; anything else is parsed as CSV.
func ReadTable(ctx context.Context, source string) (*Table, error) {
	data, name, err := fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx", ".xlsm":
		return decodeXLSX(data)
	default:
		return DecodeCSV(bytes.NewReader(data))
	}
}

// fetch returns the raw bytes of source and the name used to pick a decoder.
func fetch(ctx context.Context, source string) ([]byte, string, error) {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, "", fmt.Errorf("build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("fetch %s: unexpected status %s", source, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", source, err)
		}
		return data, u.Path, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", source, err)
	}
	return data, source, nil
}

func decodeXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return newTable(rows, nil)
}

// DecodeCSV parses CSV content with a header row. A leading UTF-8 BOM, as
// written by REDCap exports, is dropped.
func DecodeCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		rows  [][]string
		lines []int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return newTable(rows, lines)
}

// newTable splits off the header and drops blank rows. lines, when set,
// holds the source line of each entry in rows.
func newTable(rows [][]string, lines []int) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}
	t := &Table{Header: rows[0]}
	for i, r := range rows[1:] {
		if blankRow(r) {
			continue
		}
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		t.Rows = append(t.Rows, r)
		t.Lines = append(t.Lines, line)
	}
	return t, nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
