// Package record maps named, typed columns onto MySQL rows. A Record
// composes an ordered set of Column definitions, moves values between
// the columns and query parameters or result rows, generates
// insert/update/select/delete statements and runs declarative
// validation. Concrete entity types hold a Record rather than inherit
// from one.
package record

import (
	"strings"

	"github.com/cleardemon/cdf/coerce"
	"github.com/cleardemon/cdf/sqlval"
)

// Column is a typed, validated container for one field's value. It is
// owned by exactly one Record; constraint setters chain so a schema
// reads as a declaration.
type Column struct {
	name     string
	typ      sqlval.Type
	value    any
	notNull  bool
	required bool

	// Length bounds apply to string, text and data columns; zero means
	// unbounded.
	minLength int
	maxLength int

	// Range bounds apply to integer, float and timestamp columns, the
	// latter compared by Unix seconds.
	minRange    float64
	maxRange    float64
	hasMinRange bool
	hasMaxRange bool
}

func newColumn(name string, typ sqlval.Type) *Column {
	return &Column{name: name, typ: typ}
}

// NewString declares a single-line string column.
func NewString(name string) *Column {
	return newColumn(name, sqlval.TypeString)
}

// NewText declares a long-form text column.
func NewText(name string) *Column {
	return newColumn(name, sqlval.TypeText)
}

// NewInteger declares an integer column.
func NewInteger(name string) *Column {
	return newColumn(name, sqlval.TypeInteger)
}

// NewFloat declares a floating-point column.
func NewFloat(name string) *Column {
	return newColumn(name, sqlval.TypeFloat)
}

// NewBool declares a boolean column.
func NewBool(name string) *Column {
	return newColumn(name, sqlval.TypeBool)
}

// NewTime declares a timestamp column.
func NewTime(name string) *Column {
	return newColumn(name, sqlval.TypeTimestamp)
}

// NewData declares a binary column.
func NewData(name string) *Column {
	return newColumn(name, sqlval.TypeData)
}

// NewIdentity declares the auto-increment primary-key column. Any
// column named "Id" (case-insensitive) is treated identically; this
// constructor just makes the convention explicit.
func NewIdentity() *Column {
	return newColumn("Id", sqlval.TypeInteger)
}

// NotNull forbids a null value during validation.
func (c *Column) NotNull() *Column {
	c.notNull = true
	return c
}

// Required demands a set value during validation: empty strings and
// epoch timestamps count as not set.
func (c *Column) Required() *Column {
	c.required = true
	return c
}

// LengthRange bounds the value length of a string, text or data
// column. Zero leaves the corresponding bound open.
func (c *Column) LengthRange(min, max int) *Column {
	c.minLength = min
	c.maxLength = max
	return c
}

// ValueRange bounds the numeric value of an integer, float or
// timestamp column.
func (c *Column) ValueRange(min, max float64) *Column {
	c.minRange = min
	c.maxRange = max
	c.hasMinRange = true
	c.hasMaxRange = true
	return c
}

// MinValue bounds the column value from below only.
func (c *Column) MinValue(min float64) *Column {
	c.minRange = min
	c.hasMinRange = true
	return c
}

// MaxValue bounds the column value from above only.
func (c *Column) MaxValue(max float64) *Column {
	c.maxRange = max
	c.hasMaxRange = true
	return c
}

// Name returns the column's declared name.
func (c *Column) Name() string {
	return c.name
}

// Type returns the column's declared SQL data type.
func (c *Column) Type() sqlval.Type {
	return c.typ
}

// Value returns the held value in its canonical representation, or nil
// when the column is null.
func (c *Column) Value() any {
	return c.value
}

// IsNull reports whether the column holds no value.
func (c *Column) IsNull() bool {
	return c.value == nil
}

// set stores a value after coercing it against the declared type.
func (c *Column) set(value any) error {
	coerced, err := sqlval.Coerce(c.typ, value)
	if err != nil {
		return err
	}
	c.value = coerced
	return nil
}

func (c *Column) setNull() {
	c.value = nil
}

// isIdentity reports whether this is the reserved auto-increment
// primary-key column.
func (c *Column) isIdentity() bool {
	return strings.EqualFold(c.name, "Id")
}

// length measures the held value for length validation.
func (c *Column) length() int {
	switch v := c.value.(type) {
	case nil:
		return 0
	case string:
		return len(v)
	case []byte:
		return len(v)
	default:
		return len(coerce.AsString(v))
	}
}

// numericValue projects the held value onto the validation axis shared
// by integer, float and timestamp columns.
func (c *Column) numericValue() float64 {
	if c.typ == sqlval.TypeTimestamp {
		return float64(coerce.AsTime(c.value).Unix())
	}
	return coerce.AsFloat(c.value)
}
