package converters

import (
	"reflect"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/spf13/cast"
)

// ValueToString renders a string, bool, integer or floating-point value in its
// natural text form.
func ValueToString(src any) (string, error) {
	const op errors.Op = "converters.ValueToString"
	s, err := cast.ToStringE(src)
	if err != nil {
		return "", errors.New(op).Err(err)
	}
	return s, nil
}

// StringToKind coerces text into a value of the given basic kind. The result is
// a string, bool, int64, uint64 or float64; callers narrow it to the field type.
// Empty text yields the zero value for non-string kinds.
func StringToKind(text string, kind reflect.Kind) (any, error) {
	const op errors.Op = "converters.StringToKind"
	if kind == reflect.String {
		return text, nil
	}
	text = strings.TrimSpace(text)

	switch kind {
	case reflect.Bool:
		if text == "" {
			return false, nil
		}
		v, err := cast.ToBoolE(text)
		if err != nil {
			return nil, errors.New(op).Err(err).Msg(ErrMsgBadBoolFormat)
		}
		return v, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if text == "" {
			return int64(0), nil
		}
		text, err := integerText(op, text)
		if err != nil {
			return nil, err
		}
		v, err := cast.ToInt64E(text)
		if err != nil {
			return nil, errors.New(op).Err(err).Msg(ErrMsgBadNumberFormat)
		}
		return v, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if text == "" {
			return uint64(0), nil
		}
		text, err := integerText(op, text)
		if err != nil {
			return nil, err
		}
		v, err := cast.ToUint64E(text)
		if err != nil {
			return nil, errors.New(op).Err(err).Msg(ErrMsgBadNumberFormat)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		if text == "" {
			return float64(0), nil
		}
		v, err := cast.ToFloat64E(text)
		if err != nil {
			return nil, errors.New(op).Err(err).Msg(ErrMsgBadNumberFormat)
		}
		return v, nil
	}
	return nil, errors.New(op).Errorf("%s: %s", ErrMsgUnsupportedKind, kind)
}

// integerText prepares integer text for cast, which parses in base 0. Leading
// zeros of plain decimal text are dropped so "010" reads as ten; prefixed
// forms such as "0x1F" are kept. Text with a fractional part is rejected.
func integerText(op errors.Op, text string) (string, error) {
	if strings.ContainsAny(text, ".,") {
		return "", errors.New(op).Msg(ErrMsgFractionalInteger)
	}
	sign, digits := "", text
	if digits[0] == '+' || digits[0] == '-' {
		sign, digits = digits[:1], digits[1:]
	}
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return text, nil
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return sign + digits, nil
}
