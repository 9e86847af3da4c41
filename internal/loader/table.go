// Package loader reads the spot and congestion CSV files into immutable tables.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	errByteOrderMark = errors.New("unexpected byte order mark")
)

// Table is a parsed CSV file. Values are never modified after ReadTable returns;
// transforms build a new Table.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
	Lines  []int // source line of each row, for error messages
}

// Cell returns the value at row i, column col, or "" when the row is short.
func (t *Table) Cell(i, col int) string {
	if col < 0 || col >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][col]
}

// ReadTable reads a CSV file, trying UTF-8 first and BOM-prefixed UTF-8 second.
func ReadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read %s", path)
	}

	text, err := decodeText(path, raw)
	if err != nil {
		return nil, err
	}

	return parseTable(path, text)
}

func decodeText(path string, raw []byte) (string, error) {
	text, primaryErr := decodeUTF8(raw)
	if primaryErr == nil {
		return text, nil
	}

	text, fallbackErr := decodeUTF8BOM(raw)
	if fallbackErr != nil {
		return "", &DecodeError{Path: path, Primary: primaryErr, Fallback: fallbackErr}
	}
	return text, nil
}

// decodeUTF8 rejects a leading BOM since it would end up inside the first header.
func decodeUTF8(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, utf8BOM) {
		return "", errByteOrderMark
	}
	out, _, err := transform.Bytes(encoding.UTF8Validator, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeUTF8BOM(raw []byte) (string, error) {
	t := transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	out, _, err := transform.Bytes(t, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func parseTable(path, text string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &DataFormatError{Path: path, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &DataFormatError{Path: path, Line: 1, Reason: err.Error()}
	}

	if len(header) == 1 {
		return nil, &DataFormatError{
			Path:   path,
			Reason: "only one column was read; check the delimiter and encoding",
		}
	}

	t := &Table{Path: path, Header: make([]string, len(header))}
	for i, h := range header {
		t.Header[i] = strings.TrimSpace(h)
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &DataFormatError{Path: path, Line: parseErr.Line, Reason: parseErr.Err.Error()}
			}
			return nil, eris.Wrapf(err, "loader: parse %s", path)
		}
		line, _ := r.FieldPos(0)
		t.Rows = append(t.Rows, record)
		t.Lines = append(t.Lines, line)
	}

	return t, nil
}
