package record

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cleardemon/cdf/sqldb"
	"github.com/cleardemon/cdf/sqlval"
)

// Operator joins or groups where-clause conditions.
type Operator string

const (
	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
)

// Condition matches one column against one or more values. A nil value
// becomes an IS NULL predicate instead of a bound parameter.
type Condition struct {
	Column string
	Values []any
}

// Equal builds a single-value condition.
func Equal(column string, value any) Condition {
	return Condition{Column: column, Values: []any{value}}
}

// In builds a multi-value condition whose values group with the where
// clause's group operator.
func In(column string, values ...any) Condition {
	return Condition{Column: column, Values: values}
}

// Where is the canonical where-clause shape: an ordered sequence of
// conditions joined by Join (default AND), each condition's values
// grouped by Group (default OR). Mixing different join operators within
// one clause is not supported; that is a known limitation carried over
// deliberately.
type Where struct {
	Join       Operator
	Group      Operator
	Conditions []Condition
}

// WhereEqual is a convenience constructor from a name→value map. Map
// order is not defined, so conditions are emitted in sorted column
// order; callers that care about ordering should build a Where
// directly. A []any value expands to a grouped multi-value condition.
func WhereEqual(values map[string]any) *Where {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	w := &Where{}
	for _, name := range names {
		if multi, ok := values[name].([]any); ok {
			w.Conditions = append(w.Conditions, In(name, multi...))
			continue
		}
		w.Conditions = append(w.Conditions, Equal(name, values[name]))
	}
	return w
}

// join returns the operator between conditions, defaulting to AND.
func (w *Where) join() Operator {
	if w.Join == "" {
		return OpAnd
	}
	return w.Join
}

// group returns the operator within a multi-value condition, defaulting
// to OR.
func (w *Where) group() Operator {
	if w.Group == "" {
		return OpOr
	}
	return w.Group
}

// build renders the clause (without the leading "where") and collects
// the parameters its placeholders consume, in order.
func (w *Where) build() (string, []sqldb.Parameter, error) {
	if w == nil || len(w.Conditions) == 0 {
		return "", nil, nil
	}
	var parts []string
	var params []sqldb.Parameter
	for _, cond := range w.Conditions {
		if cond.Column == "" {
			return "", nil, fmt.Errorf("record: where condition missing column name")
		}
		ident := sqlval.QuoteIdentifier(cond.Column)
		if len(cond.Values) == 0 {
			return "", nil, fmt.Errorf("record: where condition on %q has no values", cond.Column)
		}
		var terms []string
		for _, value := range cond.Values {
			if value == nil {
				terms = append(terms, ident+" IS NULL")
				continue
			}
			typ, err := parameterType(value)
			if err != nil {
				return "", nil, fmt.Errorf("record: where condition on %q: %w", cond.Column, err)
			}
			terms = append(terms, ident+"=?")
			params = append(params, sqldb.Parameter{Type: typ, Value: value})
		}
		if len(terms) == 1 {
			parts = append(parts, terms[0])
			continue
		}
		parts = append(parts, "("+strings.Join(terms, " "+string(w.group())+" ")+")")
	}
	return strings.Join(parts, " "+string(w.join())+" "), params, nil
}

// Order is one ordering clause for a select.
type Order struct {
	Column    string
	Ascending bool
}

// orderBy renders an ORDER BY clause, or "" when no ordering is asked
// for.
func orderBy(orders []Order) string {
	if len(orders) == 0 {
		return ""
	}
	parts := make([]string, len(orders))
	for i, o := range orders {
		direction := "desc"
		if o.Ascending {
			direction = "asc"
		}
		parts[i] = sqlval.QuoteIdentifier(o.Column) + " " + direction
	}
	return " order by " + strings.Join(parts, ",")
}

// parameterType infers the declared SQL type for a where-clause value
// from its runtime type.
func parameterType(value any) (sqlval.Type, error) {
	switch value.(type) {
	case string:
		return sqlval.TypeString, nil
	case []byte:
		return sqlval.TypeData, nil
	case bool:
		return sqlval.TypeBool, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return sqlval.TypeInteger, nil
	case float32, float64:
		return sqlval.TypeFloat, nil
	case time.Time:
		return sqlval.TypeTimestamp, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}
