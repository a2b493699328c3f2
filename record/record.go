package record

import (
	"fmt"
	"time"

	"github.com/cleardemon/cdf/coerce"
	"github.com/cleardemon/cdf/sqldb"
	"github.com/cleardemon/cdf/sqlval"
)

// Record is a reusable typed row mapper. Entities declare their columns
// once, in order; that order determines column enumeration in every
// generated statement.
type Record struct {
	table string
	cols  []*Column
	index map[string]*Column
	errs  []ValidationError
	local func(*Record)
}

// New creates a record for the given table with its declared columns.
// An empty table name is allowed as long as every query-building call
// supplies one explicitly.
func New(table string, cols ...*Column) *Record {
	r := &Record{table: table, index: make(map[string]*Column)}
	r.AddColumns(cols...)
	return r
}

// AddColumns appends column declarations, preserving order. Declaring a
// name twice keeps the first declaration.
func (r *Record) AddColumns(cols ...*Column) {
	for _, col := range cols {
		if col == nil {
			continue
		}
		if _, exists := r.index[col.name]; exists {
			continue
		}
		r.cols = append(r.cols, col)
		r.index[col.name] = col
	}
}

// SetTable configures the table name used by the query builders.
func (r *Record) SetTable(name string) {
	r.table = name
}

// Table returns the configured table name, which may be empty.
func (r *Record) Table() string {
	return r.table
}

// Columns returns the declared columns in declaration order.
func (r *Record) Columns() []*Column {
	return r.cols
}

// Column looks up a declared column by name.
func (r *Record) Column(name string) (*Column, bool) {
	col, ok := r.index[name]
	return col, ok
}

// mustColumn resolves a getter's column. Reading an undeclared column
// is a programmer mistake and panics.
func (r *Record) mustColumn(name string, want ...sqlval.Type) *Column {
	col, ok := r.index[name]
	if !ok {
		panic(fmt.Sprintf("record: unknown column %q", name))
	}
	for _, t := range want {
		if col.typ == t {
			return col
		}
	}
	panic(fmt.Sprintf("record: column %q is %s, not %s", name, col.typ, want[0]))
}

// setColumn applies a typed setter. Setting an undeclared column is a
// silent no-op so optional extension columns can be tolerated; setting
// a column of the wrong declared type is a programmer mistake.
func (r *Record) setColumn(name string, value any, want ...sqlval.Type) {
	col, ok := r.index[name]
	if !ok {
		return
	}
	matched := false
	for _, t := range want {
		if col.typ == t {
			matched = true
			break
		}
	}
	if !matched {
		panic(fmt.Sprintf("record: column %q is %s, not %s", name, col.typ, want[0]))
	}
	if err := col.set(value); err != nil {
		panic(fmt.Sprintf("record: column %q: %v", name, err))
	}
}

// SetString assigns a string or text column.
func (r *Record) SetString(name, value string) {
	r.setColumn(name, value, sqlval.TypeString, sqlval.TypeText)
}

// SetInteger assigns an integer column.
func (r *Record) SetInteger(name string, value int64) {
	r.setColumn(name, value, sqlval.TypeInteger)
}

// SetFloat assigns a float column.
func (r *Record) SetFloat(name string, value float64) {
	r.setColumn(name, value, sqlval.TypeFloat)
}

// SetBool assigns a boolean column.
func (r *Record) SetBool(name string, value bool) {
	r.setColumn(name, value, sqlval.TypeBool)
}

// SetTime assigns a timestamp column. Timestamp columns coerce any
// input through the date/time coercion rules, so strings and Unix
// timestamps are accepted.
func (r *Record) SetTime(name string, value any) {
	r.setColumn(name, value, sqlval.TypeTimestamp)
}

// SetData assigns a binary column.
func (r *Record) SetData(name string, value []byte) {
	r.setColumn(name, value, sqlval.TypeData)
}

// SetNull clears a column of any declared type.
func (r *Record) SetNull(name string) {
	col, ok := r.index[name]
	if !ok {
		return
	}
	col.setNull()
}

// GetString reads a string or text column; null reads as "".
func (r *Record) GetString(name string) string {
	col := r.mustColumn(name, sqlval.TypeString, sqlval.TypeText)
	if col.IsNull() {
		return ""
	}
	return coerce.AsString(col.value)
}

// GetInteger reads an integer column; null reads as 0.
func (r *Record) GetInteger(name string) int64 {
	col := r.mustColumn(name, sqlval.TypeInteger)
	if col.IsNull() {
		return 0
	}
	return coerce.AsInt64(col.value)
}

// GetFloat reads a float column; null reads as 0.
func (r *Record) GetFloat(name string) float64 {
	col := r.mustColumn(name, sqlval.TypeFloat)
	if col.IsNull() {
		return 0
	}
	return coerce.AsFloat(col.value)
}

// GetBool reads a boolean column; null reads as false.
func (r *Record) GetBool(name string) bool {
	col := r.mustColumn(name, sqlval.TypeBool)
	if col.IsNull() {
		return false
	}
	return coerce.AsBool(col.value)
}

// GetTime reads a timestamp column; null reads as the epoch.
func (r *Record) GetTime(name string) time.Time {
	col := r.mustColumn(name, sqlval.TypeTimestamp)
	return coerce.AsTime(col.value)
}

// GetData reads a binary column; null reads as nil.
func (r *Record) GetData(name string) []byte {
	col := r.mustColumn(name, sqlval.TypeData)
	if col.IsNull() {
		return nil
	}
	return col.value.([]byte)
}

// IsNull reports whether the named column holds no value.
func (r *Record) IsNull(name string) bool {
	col, ok := r.index[name]
	if !ok {
		panic(fmt.Sprintf("record: unknown column %q", name))
	}
	return col.IsNull()
}

// BindParameters pushes each column's (type, value) onto the client's
// pending-parameter queue in declaration order, always skipping the
// identity column. A non-nil keys slice whitelists (include true) or
// blacklists (include false) specific columns.
func (r *Record) BindParameters(client *sqldb.Client, keys []string, include bool) error {
	for _, col := range r.cols {
		if col.isIdentity() {
			continue
		}
		if keys != nil && containsName(keys, col.name) != include {
			continue
		}
		if err := client.AddParameter(col.typ, col.value); err != nil {
			return fmt.Errorf("record: bind column %q: %w", col.name, err)
		}
	}
	return nil
}

// Load copies values from a result row into matching columns by name,
// coercing each incoming value against the column's declared type.
// Columns absent from the row are left unchanged. Reports false for an
// empty or absent row.
func (r *Record) Load(row sqldb.Row) bool {
	if len(row) == 0 {
		return false
	}
	for _, col := range r.cols {
		raw, ok := row[col.name]
		if !ok {
			continue
		}
		if raw == nil {
			col.setNull()
			continue
		}
		if err := col.set(raw); err != nil {
			panic(fmt.Sprintf("record: load column %q: %v", col.name, err))
		}
	}
	return true
}
