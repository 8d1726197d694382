package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV builds a Frame from CSV data. The first row is the header; column
// types are inferred from the values (int, then float, then bool, then
// string). Empty cells become nil.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header := records[0]
	body := records[1:]

	schema := make(Schema, len(header))
	for j, name := range header {
		schema[j] = Column{Name: strings.TrimSpace(name), Type: inferColumnType(body, j)}
	}

	f, err := New(schema)
	if err != nil {
		return nil, err
	}
	for i, row := range body {
		rec := make(Record, len(row))
		for j, cell := range row {
			v, err := parseCell(schema[j].Type, cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i+1, schema[j].Name, err)
			}
			rec[j] = v
		}
		if err := f.Append(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return f, nil
}

// WriteCSV writes the frame as CSV with a header row.
func (f *Frame) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := make([]string, len(f.schema))
	for i, c := range f.schema {
		header[i] = c.Name
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range f.rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// inferColumnType picks the narrowest type that parses every non-empty cell
// in column j. A column with no values defaults to string.
func inferColumnType(rows [][]string, j int) string {
	isInt, isFloat, isBool := true, true, true
	seen := false
	for _, row := range rows {
		if j >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[j])
		if cell == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(cell); err != nil {
			isBool = false
		}
	}
	switch {
	case !seen:
		return TypeString
	case isInt:
		return TypeInt
	case isFloat:
		return TypeFloat
	case isBool:
		return TypeBool
	default:
		return TypeString
	}
}

func parseCell(colType, cell string) (any, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	switch colType {
	case TypeInt:
		return strconv.ParseInt(cell, 10, 64)
	case TypeFloat:
		return strconv.ParseFloat(cell, 64)
	case TypeBool:
		return strconv.ParseBool(cell)
	default:
		return cell, nil
	}
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
