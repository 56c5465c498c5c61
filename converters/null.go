package converters

import (
	"reflect"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

var (
	nullStringType  = reflect.TypeOf(null.String{})
	nullIntType     = reflect.TypeOf(null.Int{})
	nullInt64Type   = reflect.TypeOf(null.Int64{})
	nullFloat64Type = reflect.TypeOf(null.Float64{})
	nullBoolType    = reflect.TypeOf(null.Bool{})
	nullTimeType    = reflect.TypeOf(null.Time{})
)

// IsNullType reports whether t is one of the null types handled by this package.
func IsNullType(t reflect.Type) bool {
	switch t {
	case nullStringType, nullIntType, nullInt64Type, nullFloat64Type, nullBoolType, nullTimeType:
		return true
	}
	return false
}

// IsNullTime reports whether t is null.Time.
func IsNullTime(t reflect.Type) bool {
	return t == nullTimeType
}

// NullToString renders a null.String, null.Int, null.Int64, null.Float64 or
// null.Bool. Invalid values render as an empty string.
func NullToString(src any) (string, error) {
	const op errors.Op = "converters.NullToString"
	switch v := src.(type) {
	case null.String:
		if !v.Valid {
			return "", nil
		}
		return v.String, nil
	case null.Int:
		if !v.Valid {
			return "", nil
		}
		return ValueToString(v.Int)
	case null.Int64:
		if !v.Valid {
			return "", nil
		}
		return ValueToString(v.Int64)
	case null.Float64:
		if !v.Valid {
			return "", nil
		}
		return ValueToString(v.Float64)
	case null.Bool:
		if !v.Valid {
			return "", nil
		}
		return ValueToString(v.Bool)
	}
	return "", errors.New(op).Errorf("%s, got %T", ErrMsgUnsupportedNull, src)
}

// StringToNull parses text into a value of the null type t. Empty text yields
// the invalid (null) value of t.
func StringToNull(text string, t reflect.Type) (any, error) {
	const op errors.Op = "converters.StringToNull"
	if !IsNullType(t) || t == nullTimeType {
		return nil, errors.New(op).Errorf("%s, got %s", ErrMsgUnsupportedNull, t)
	}
	if text == "" {
		return reflect.Zero(t).Interface(), nil
	}

	switch t {
	case nullStringType:
		return null.StringFrom(text), nil
	case nullIntType:
		v, err := StringToKind(text, reflect.Int64)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		return null.IntFrom(int(v.(int64))), nil
	case nullInt64Type:
		v, err := StringToKind(text, reflect.Int64)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		return null.Int64From(v.(int64)), nil
	case nullFloat64Type:
		v, err := StringToKind(text, reflect.Float64)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		return null.Float64From(v.(float64)), nil
	default:
		v, err := StringToKind(text, reflect.Bool)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		return null.BoolFrom(v.(bool)), nil
	}
}
