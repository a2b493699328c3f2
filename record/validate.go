package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/cleardemon/cdf/coerce"
	"github.com/cleardemon/cdf/sqlval"
)

// ErrValidationNotStarted reports an attempt to append a validation
// error before any validation pass has begun.
var ErrValidationNotStarted = errors.New("record: validation has not begun")

// Code classifies one validation finding.
type Code int

const (
	CodeNullNotAllowed Code = iota + 1
	CodeNotSet
	CodeTooShort
	CodeTooLong
	CodeOutOfRange
	CodeCustom
)

func (c Code) message() string {
	switch c {
	case CodeNullNotAllowed:
		return "value cannot be null"
	case CodeNotSet:
		return "value not set"
	case CodeTooShort:
		return "value too short"
	case CodeTooLong:
		return "value too long"
	case CodeOutOfRange:
		return "value out of range"
	default:
		return "invalid value"
	}
}

// ValidationError is one per-column finding from a validation pass. It
// is accumulated and queried, never returned through the error channel.
type ValidationError struct {
	Column  string
	Code    Code
	Message string
}

// Validate runs the declarative checks over every declared column,
// skipping the identity column and, when filter is non-nil, any column
// not named in it. Each failing check appends a ValidationError;
// stopOnFirst aborts the pass at the first finding. The record's
// LocalValidation hook runs after the column pass. Reports whether any
// error was recorded.
func (r *Record) Validate(filter []string, stopOnFirst bool) bool {
	r.errs = []ValidationError{}
	for _, col := range r.cols {
		if col.isIdentity() {
			continue
		}
		if filter != nil && !containsName(filter, col.name) {
			continue
		}
		if r.validateColumn(col, stopOnFirst) && stopOnFirst {
			return true
		}
	}
	if r.local != nil {
		r.local(r)
	}
	return r.HasErrors()
}

// validateColumn appends every finding for one column and reports
// whether any was recorded. With stopOnFirst it returns at the first
// finding, mid-column.
func (r *Record) validateColumn(col *Column, stopOnFirst bool) bool {
	found := false
	report := func(code Code) bool {
		r.errs = append(r.errs, ValidationError{Column: col.name, Code: code, Message: code.message()})
		found = true
		return stopOnFirst
	}

	if col.notNull && col.IsNull() {
		if report(CodeNullNotAllowed) {
			return true
		}
	}
	if col.required && !col.isSet() {
		if report(CodeNotSet) {
			return true
		}
	}
	if col.typ.IsTextual() && !col.IsNull() {
		length := col.length()
		if col.minLength > 0 && length < col.minLength {
			if report(CodeTooShort) {
				return true
			}
		}
		if col.maxLength > 0 && length > col.maxLength {
			if report(CodeTooLong) {
				return true
			}
		}
	}
	if col.typ.IsNumeric() && !col.IsNull() {
		v := col.numericValue()
		if (col.hasMinRange && v < col.minRange) || (col.hasMaxRange && v > col.maxRange) {
			if report(CodeOutOfRange) {
				return true
			}
		}
	}
	return found
}

// isSet reports whether the column holds a usable value for the
// required check: textual columns need a non-empty value, timestamps an
// instant after the epoch.
func (c *Column) isSet() bool {
	if c.IsNull() {
		return false
	}
	if c.typ.IsTextual() {
		return c.length() > 0
	}
	if c.typ == sqlval.TypeTimestamp {
		t, ok := c.value.(time.Time)
		return ok && t.After(coerce.Epoch())
	}
	return true
}

// AddError appends a validation error from a LocalValidation hook or
// other object-specific check. It must be called after a validation
// pass has begun.
func (r *Record) AddError(column string, code Code) error {
	return r.AddErrorMessage(column, code, code.message())
}

// AddErrorMessage is AddError with a caller-supplied message.
func (r *Record) AddErrorMessage(column string, code Code, message string) error {
	if r.errs == nil {
		return fmt.Errorf("%w: cannot add error for column %q", ErrValidationNotStarted, column)
	}
	r.errs = append(r.errs, ValidationError{Column: column, Code: code, Message: message})
	return nil
}

// Errors returns the findings of the most recent validation pass.
func (r *Record) Errors() []ValidationError {
	return r.errs
}

// HasErrors reports whether the most recent validation pass recorded
// any finding.
func (r *Record) HasErrors() bool {
	return len(r.errs) > 0
}

// SetLocalValidation installs a hook for object-specific cross-field
// checks, run at the end of every Validate pass. The hook appends its
// findings through AddError.
func (r *Record) SetLocalValidation(fn func(*Record)) {
	r.local = fn
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
