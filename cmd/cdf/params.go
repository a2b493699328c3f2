package main

import (
	"fmt"
	"strings"

	"github.com/cleardemon/cdf/coerce"
	"github.com/cleardemon/cdf/sqlval"
)

// parseParam converts one --param flag of the form "type:value" into a
// typed query parameter. The bare word "null" carries no value.
func parseParam(spec string) (sqlval.Type, any, error) {
	kind, raw, ok := strings.Cut(spec, ":")
	if !ok {
		return 0, nil, fmt.Errorf("parameter %q is not in type:value form", spec)
	}
	var typ sqlval.Type
	switch strings.ToLower(kind) {
	case "string", "str":
		typ = sqlval.TypeString
	case "text":
		typ = sqlval.TypeText
	case "int", "integer":
		typ = sqlval.TypeInteger
	case "float":
		typ = sqlval.TypeFloat
	case "bool":
		typ = sqlval.TypeBool
	case "time", "timestamp":
		typ = sqlval.TypeTimestamp
	case "data":
		typ = sqlval.TypeData
	default:
		return 0, nil, fmt.Errorf("unknown parameter type %q", kind)
	}
	if raw == "null" {
		return typ, nil, nil
	}
	switch typ {
	case sqlval.TypeInteger:
		return typ, coerce.AsInt64(raw), nil
	case sqlval.TypeFloat:
		return typ, coerce.AsFloat(raw), nil
	case sqlval.TypeBool:
		return typ, coerce.AsBool(raw), nil
	case sqlval.TypeTimestamp:
		return typ, coerce.AsTime(raw), nil
	case sqlval.TypeData:
		return typ, []byte(raw), nil
	default:
		return typ, raw, nil
	}
}
