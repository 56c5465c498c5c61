package converters

import (
	"reflect"

	"github.com/Station-Manager/errors"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
)

var jsonColumnType = reflect.TypeOf(boilertypes.JSON{})

// IsJSONType reports whether t is the sqlboiler JSON column type.
func IsJSONType(t reflect.Type) bool {
	return t == jsonColumnType
}

// JSONToString renders a types.JSON column as its raw document text.
func JSONToString(src any) (string, error) {
	const op errors.Op = "converters.JSONToString"
	v, ok := src.(boilertypes.JSON)
	if !ok {
		return "", errors.New(op).Errorf("Given parameter not a types.JSON, got %T", src)
	}
	return string(v), nil
}

// StringToJSON validates text as a JSON document and returns it as types.JSON.
// Empty text yields a nil document.
func StringToJSON(text string) (boilertypes.JSON, error) {
	const op errors.Op = "converters.StringToJSON"
	if text == "" {
		return nil, nil
	}
	if !json.Valid([]byte(text)) {
		return nil, errors.New(op).Msg(ErrMsgBadJSONFormat)
	}
	return boilertypes.JSON(text), nil
}

// ValueToJSON renders an arbitrary value as compact JSON. Top-level strings are
// written without quotes so a plain string-backed type stays readable.
func ValueToJSON(src any) (string, error) {
	const op errors.Op = "converters.ValueToJSON"
	if s, ok := src.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(src)
	if err != nil {
		return "", errors.New(op).Err(err)
	}
	return string(data), nil
}

// JSONToValue decodes text into a new value of type t. Text that is not valid
// JSON is retried as a JSON string literal.
func JSONToValue(text string, t reflect.Type) (any, error) {
	const op errors.Op = "converters.JSONToValue"
	ptr := reflect.New(t)
	data := []byte(text)
	if !json.Valid(data) {
		quoted, err := json.Marshal(text)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		data = quoted
	}
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		return nil, errors.New(op).Err(err).Msg(ErrMsgBadJSONFormat)
	}
	return ptr.Elem().Interface(), nil
}
