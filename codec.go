package rowmap

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/Station-Manager/rowmap/converters"
)

// decodeOutcome is the result of decoding one column into one field.
type decodeOutcome int

const (
	decodeSet    decodeOutcome = iota // value assigned
	decodeSkip                        // nothing to assign, field keeps its default
	decodeFailed                      // coercion or assignment failed, field keeps its default
)

// encodeField renders field f of record rv. A nil embedded pointer on the
// access path renders as an empty column.
func (m *Mapper) encodeField(f *Field, rv reflect.Value) (string, error) {
	fv, ok := f.value(rv)
	if !ok {
		return "", nil
	}
	if c, ok := m.codecFor(rv.Type(), f.Name); ok && c.Encode != nil {
		return c.Encode(fv.Interface(), f.Column.Format)
	}
	return encodeValue(f, fv)
}

// encodeValue is the built-in encoder.
func encodeValue(f *Field, fv reflect.Value) (string, error) {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return "", nil
		}
		fv = fv.Elem()
	}

	switch f.Kind {
	case KindTime:
		return converters.TimeToString(fv.Interface(), f.layout)
	case KindNull:
		if f.isTime() {
			return converters.NullTimeToString(fv.Interface(), f.layout)
		}
		return converters.NullToString(fv.Interface())
	case KindJSON:
		return converters.JSONToString(fv.Interface())
	case KindText:
		tm, ok := textMarshaler(fv)
		if !ok {
			return "", fmt.Errorf("%s does not implement encoding.TextMarshaler", fv.Type())
		}
		b, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case KindString:
		return fv.String(), nil
	case KindBool:
		return converters.ValueToString(fv.Bool())
	case KindInt:
		return converters.ValueToString(fv.Int())
	case KindUint:
		return converters.ValueToString(fv.Uint())
	case KindFloat:
		if fv.Kind() == reflect.Float32 {
			return converters.ValueToString(float32(fv.Float()))
		}
		return converters.ValueToString(fv.Float())
	}
	return converters.ValueToJSON(fv.Interface())
}

func textMarshaler(fv reflect.Value) (encoding.TextMarshaler, bool) {
	if tm, ok := fv.Interface().(encoding.TextMarshaler); ok {
		return tm, true
	}
	ptr := reflect.New(fv.Type())
	ptr.Elem().Set(fv)
	tm, ok := ptr.Interface().(encoding.TextMarshaler)
	return tm, ok
}

// decodeField parses text and assigns it to field f of record rv.
func (m *Mapper) decodeField(f *Field, rv reflect.Value, text string) (decodeOutcome, error) {
	var (
		value   any
		outcome decodeOutcome
		err     error
	)
	if c, ok := m.codecFor(rv.Type(), f.Name); ok && c.Decode != nil {
		value, err = c.Decode(text, f.Column.Format)
		switch {
		case err != nil:
			outcome = decodeFailed
		case value == nil:
			outcome = decodeSkip
		default:
			outcome = decodeSet
		}
	} else {
		value, outcome, err = m.decodeValue(f, text)
	}
	if outcome != decodeSet {
		return outcome, err
	}

	if err := assign(f, rv, reflect.ValueOf(value)); err != nil {
		return decodeFailed, err
	}
	return decodeSet, nil
}

// decodeValue is the built-in decoder. Empty text leaves pointer, time, null,
// JSON and composite fields unset.
func (m *Mapper) decodeValue(f *Field, text string) (any, decodeOutcome, error) {
	if text == "" && (f.isPtr() || f.Kind == KindTime || f.Kind == KindNull || f.Kind == KindJSON || f.Kind == KindOther) {
		return nil, decodeSkip, nil
	}

	base := f.baseType()
	var (
		value any
		err   error
	)
	switch f.Kind {
	case KindTime:
		value, err = converters.StringToTime(text, f.layout, m.options.Location)
	case KindNull:
		if f.isTime() {
			value, err = converters.StringToNullTime(text, f.layout, m.options.Location)
		} else {
			value, err = converters.StringToNull(text, base)
		}
	case KindJSON:
		value, err = converters.StringToJSON(text)
	case KindText:
		ptr := reflect.New(base)
		err = ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		value = ptr.Elem().Interface()
	case KindString, KindBool, KindInt, KindUint, KindFloat:
		value, err = converters.StringToKind(text, base.Kind())
	default:
		value, err = converters.JSONToValue(text, base)
	}
	if err != nil {
		return nil, decodeFailed, err
	}
	return value, decodeSet, nil
}

// assign stores v into field f of rv, converting between kinds where it is
// lossless and allocating pointer fields.
func assign(f *Field, rv reflect.Value, v reflect.Value) error {
	dst, err := f.settable(rv)
	if err != nil {
		return err
	}
	if !v.IsValid() {
		return fmt.Errorf("invalid value for field %s", f.Name)
	}

	if dst.Kind() == reflect.Ptr && !v.Type().AssignableTo(dst.Type()) {
		cv, err := coerce(v, dst.Type().Elem())
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		ptr := reflect.New(dst.Type().Elem())
		ptr.Elem().Set(cv)
		dst.Set(ptr)
		return nil
	}

	cv, err := coerce(v, dst.Type())
	if err != nil {
		return fmt.Errorf("field %s: %w", f.Name, err)
	}
	dst.Set(cv)
	return nil
}

// coerce converts v to t, rejecting overflow and number-to-string conversions.
func coerce(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if !v.Type().ConvertibleTo(t) {
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
	}
	if t.Kind() == reflect.String && v.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
	}

	zero := reflect.Zero(t)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if zero.OverflowInt(v.Int()) {
				return reflect.Value{}, fmt.Errorf("value %d overflows %s", v.Int(), t)
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if v.Uint() > 1<<63-1 || zero.OverflowInt(int64(v.Uint())) {
				return reflect.Value{}, fmt.Errorf("value %d overflows %s", v.Uint(), t)
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch v.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if zero.OverflowUint(v.Uint()) {
				return reflect.Value{}, fmt.Errorf("value %d overflows %s", v.Uint(), t)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.Int() < 0 || zero.OverflowUint(uint64(v.Int())) {
				return reflect.Value{}, fmt.Errorf("value %d overflows %s", v.Int(), t)
			}
		}
	case reflect.Float32:
		if v.Kind() == reflect.Float64 && zero.OverflowFloat(v.Float()) {
			return reflect.Value{}, fmt.Errorf("value %g overflows %s", v.Float(), t)
		}
	}
	return v.Convert(t), nil
}
