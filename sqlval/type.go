// Package sqlval defines the closed set of SQL data types the library
// works with and converts typed Go values into MySQL literal fragments.
// Every column and every bound parameter carries exactly one Type for
// its lifetime; the Type drives both input coercion and output
// formatting.
package sqlval

import (
	"errors"
	"fmt"
)

// Type identifies one of the supported SQL data types.
type Type int

const (
	TypeString Type = iota
	TypeInteger
	TypeFloat
	TypeText
	TypeTimestamp
	TypeBool
	TypeData
)

// ErrUnknownType reports a Type value outside the closed enum.
var ErrUnknownType = errors.New("sqlval: unknown data type")

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeText:
		return "text"
	case TypeTimestamp:
		return "timestamp"
	case TypeBool:
		return "bool"
	case TypeData:
		return "data"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Valid reports whether t is a member of the closed enum.
func (t Type) Valid() bool {
	return t >= TypeString && t <= TypeData
}

// IsTextual reports whether values of t are stored and measured as
// character or byte sequences.
func (t Type) IsTextual() bool {
	return t == TypeString || t == TypeText || t == TypeData
}

// IsNumeric reports whether values of t are ordered on a numeric axis,
// which includes timestamps compared by their absolute instant.
func (t Type) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat || t == TypeTimestamp
}

// MismatchError reports a value whose runtime type cannot be carried by
// the declared SQL data type.
type MismatchError struct {
	Type  Type
	Value any
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("sqlval: %T is not assignable to %s", e.Value, e.Type)
}
