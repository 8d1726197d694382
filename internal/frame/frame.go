// Package frame provides a small in-memory table with a named, typed column
// schema and validated record appends.
package frame

import (
	"fmt"
	"strings"

	"dslab/internal/domain"
)

// Column type constants.
const (
	TypeFloat  = "float"
	TypeInt    = "int"
	TypeBool   = "bool"
	TypeString = "string"
)

var validColumnTypes = map[string]bool{
	TypeFloat:  true,
	TypeInt:    true,
	TypeBool:   true,
	TypeString: true,
}

// Column describes a single named, typed column.
type Column struct {
	Name string
	Type string
}

// Schema is an ordered list of columns.
type Schema []Column

// Validate checks that the schema is non-empty and has unique, non-blank
// column names with known types.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return domain.ErrValidation("schema must declare at least one column")
	}
	seen := map[string]bool{}
	for i, c := range s {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return domain.ErrValidation("column %d: name is required", i)
		}
		if seen[name] {
			return domain.ErrValidation("duplicate column name %q", name)
		}
		seen[name] = true
		if !validColumnTypes[c.Type] {
			return domain.ErrValidation("column %q: unknown type %q", c.Name, c.Type)
		}
	}
	return nil
}

// Record is an ordered list of field values aligned with a schema.
type Record []any

// Frame is an in-memory table: a schema plus rows. Rows are only mutated
// through Append, which enforces the schema on every candidate record.
type Frame struct {
	schema Schema
	rows   []Record
}

// New creates an empty Frame with the given schema.
func New(schema Schema) (*Frame, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	cols := make(Schema, len(schema))
	copy(cols, schema)
	return &Frame{schema: cols}, nil
}

// Schema returns a copy of the frame's schema.
func (f *Frame) Schema() Schema {
	out := make(Schema, len(f.schema))
	copy(out, f.schema)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.schema) }

// Row returns a copy of the i-th row.
func (f *Frame) Row(i int) (Record, error) {
	if i < 0 || i >= len(f.rows) {
		return nil, domain.ErrNotFound("row %d out of range (frame has %d rows)", i, len(f.rows))
	}
	out := make(Record, len(f.rows[i]))
	copy(out, f.rows[i])
	return out, nil
}

// Rows returns a copy of all rows.
func (f *Frame) Rows() []Record {
	out := make([]Record, len(f.rows))
	for i, r := range f.rows {
		row := make(Record, len(r))
		copy(row, r)
		out[i] = row
	}
	return out
}

// Validate reports whether rec conforms to the schema: the field count must
// equal the column count and every field must match its column's type.
// Nil fields are accepted for any column type.
func (f *Frame) Validate(rec Record) error {
	if len(rec) != len(f.schema) {
		return domain.ErrValidation("record has %d fields, schema declares %d columns",
			len(rec), len(f.schema))
	}
	for i, v := range rec {
		if v == nil {
			continue
		}
		if err := checkValue(f.schema[i].Type, v); err != nil {
			return domain.ErrValidation("column %q: %v", f.schema[i].Name, err)
		}
	}
	return nil
}

// Append validates rec and, if valid, appends it as a new row. An invalid
// record leaves the frame unchanged.
func (f *Frame) Append(rec Record) error {
	if err := f.Validate(rec); err != nil {
		return err
	}
	row := make(Record, len(rec))
	copy(row, rec)
	f.rows = append(f.rows, row)
	return nil
}

// Column extracts the named column as a float64 slice. The column must have
// type float or int, and no row may hold a nil value for it.
func (f *Frame) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range f.schema {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound("column %q not found (available: %s)", name, f.columnNames())
	}
	col := f.schema[idx]
	if col.Type != TypeFloat && col.Type != TypeInt {
		return nil, domain.ErrValidation("column %q has type %s, need float or int", name, col.Type)
	}
	out := make([]float64, 0, len(f.rows))
	for i, r := range f.rows {
		switch v := r[idx].(type) {
		case float64:
			out = append(out, v)
		case int64:
			out = append(out, float64(v))
		case nil:
			return nil, domain.ErrValidation("column %q: row %d has no value", name, i)
		default:
			return nil, domain.ErrValidation("column %q: row %d holds unexpected %T", name, i, v)
		}
	}
	return out, nil
}

func (f *Frame) columnNames() string {
	names := make([]string, len(f.schema))
	for i, c := range f.schema {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// checkValue verifies that v is assignable to a column of the given type.
func checkValue(colType string, v any) error {
	switch colType {
	case TypeFloat:
		switch v.(type) {
		case float64, int64:
			return nil
		}
	case TypeInt:
		if _, ok := v.(int64); ok {
			return nil
		}
	case TypeBool:
		if _, ok := v.(bool); ok {
			return nil
		}
	case TypeString:
		if _, ok := v.(string); ok {
			return nil
		}
	}
	return fmt.Errorf("value %v (%T) does not match column type %s", v, v, colType)
}
