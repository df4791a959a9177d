package importer

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrEmptyFile is returned when the uploaded file has no non-blank lines
var ErrEmptyFile = errors.New("file is empty")

// Row is one parsed data line: lower-cased header name to raw field value.
// Rows exist only for the duration of an import run.
type Row map[string]string

// Parse turns an uploaded delimited file into rows. The delimiter comes from
// the file extension: ".csv" is comma-delimited; ".txt" tries tab first and
// falls back to comma when the tab split yields a single-column header.
//
// The first non-blank line is the header row (tokens lower-cased and
// trimmed). A data line with fewer fields than headers is dropped silently.
// Fields may be wrapped in double quotes to carry literal delimiters; doubled
// quotes inside a quoted field are not unescaped.
func Parse(data []byte, filename string) ([]Row, error) {
	_, rows, err := parse(data, filename)
	return rows, err
}

// Headers returns the lower-cased, trimmed header tokens of the file in
// column order, custom columns included.
func Headers(data []byte, filename string) ([]string, error) {
	headers, _, err := parse(data, filename)
	return headers, err
}

func parse(data []byte, filename string) ([]string, []Row, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, nil, ErrEmptyFile
	}

	delimiter := ','
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		delimiter = '\t'
		if len(splitFields(lines[0], delimiter)) <= 1 {
			delimiter = ','
		}
	}

	headers := splitFields(lines[0], delimiter)
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}

	var rows []Row
	for _, line := range lines[1:] {
		fields := splitFields(line, delimiter)
		if len(fields) < len(headers) {
			continue
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			row[header] = fields[i]
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// Preview returns the first rows for display; nothing is mutated at preview
// time.
func Preview(rows []Row, limit int) []Row {
	if limit <= 0 {
		limit = 5
	}
	if len(rows) <= limit {
		return rows
	}
	return rows[:limit]
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields splits a line on the delimiter, keeping delimiters that sit
// inside a matching pair of double quotes. Each field is trimmed and stripped
// of a single surrounding quote pair.
func splitFields(line string, delimiter rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			field.WriteRune(r)
		case r == delimiter && !inQuotes:
			fields = append(fields, cleanField(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(field.String()))
	return fields
}

func cleanField(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}
