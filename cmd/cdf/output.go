package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cleardemon/cdf/coerce"
	"github.com/cleardemon/cdf/sqldb"
)

// printRows writes a result set in the requested format. Driver byte
// slices are presented as strings so output stays readable.
func printRows(w io.Writer, rows []sqldb.Row, format string) error {
	if strings.EqualFold(format, "json") {
		return printJSON(w, rows)
	}
	return printText(w, rows)
}

func printText(w io.Writer, rows []sqldb.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}
	for i, row := range rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w, "---"); err != nil {
				return err
			}
		}
		for _, name := range sortedColumns(row) {
			if _, err := fmt.Fprintf(w, "%s: %s\n", name, displayValue(row[name])); err != nil {
				return err
			}
		}
	}
	return nil
}

func printJSON(w io.Writer, rows []sqldb.Row) error {
	cleaned := make([]map[string]any, len(rows))
	for i, row := range rows {
		entry := make(map[string]any, len(row))
		for name, value := range row {
			if b, ok := value.([]byte); ok {
				entry[name] = string(b)
				continue
			}
			entry[name] = value
		}
		cleaned[i] = entry
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cleaned)
}

func sortedColumns(row sqldb.Row) []string {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func displayValue(value any) string {
	if value == nil {
		return "NULL"
	}
	return coerce.AsString(value)
}
