package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Load reads a comma-delimited dataset file and parses it into a Table of
// text cells. The first non-blank line is the header; every following line is
// a row matched to the header positionally.
//
// An absent file returns *MissingFileError; any other read failure is wrapped.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	table := Parse(string(data))
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("dataset %s: no header row", path)
	}

	slog.Debug("Loaded dataset", "path", path, "columns", len(table.Headers), "rows", len(table.Rows))
	return table, nil
}

// Parse splits raw CSV text into a Table. Blank lines are skipped; ragged
// rows are kept as-is (fields beyond or short of the header are left to the
// coercion step to align).
func Parse(raw string) *Table {
	table := &Table{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		fields := SplitLine(line)
		if table.Headers == nil {
			table.Headers = fields
			continue
		}
		table.Rows = append(table.Rows, fields)
	}
	return table
}

// SplitLine tokenizes one dataset line. Two modes:
//
//   - a line starting with a quote character has exactly its first and last
//     character removed (one pair of wrapping quotes), then splits on commas;
//   - any other line splits on commas directly.
//
// This is deliberately not an RFC 4180 parser: commas inside quoted fields
// and escaped quotes are not handled, and malformed rows silently misalign.
// Upgrading it would change which rows the tool accepts.
func SplitLine(line string) []string {
	if strings.HasPrefix(line, `"`) {
		// A degenerate lone quote strips to nothing and yields one empty
		// field, same as stripping the first and last character would.
		inner := ""
		if len(line) > 1 {
			inner = line[1 : len(line)-1]
		}
		return strings.Split(inner, ",")
	}
	return strings.Split(line, ",")
}
