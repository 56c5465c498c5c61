package rowmap

import "reflect"

// Generic helpers live at the top level since methods cannot take type parameters.

// ReadAll decodes every row of r into a T. T may be a struct or a pointer to
// a struct.
func ReadAll[T any](m *Mapper, r RowReader, skipHeader bool) ([]T, error) {
	var out []T
	if err := m.ReadAllInto(r, &out, skipHeader); err != nil {
		return nil, err
	}
	return out, nil
}

// Write encodes records and writes them to w in one batch.
func Write[T any](m *Mapper, w RowWriter, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return m.WriteMany(w, records)
}

// HeaderOf returns the header row of T.
func HeaderOf[T any](m *Mapper) ([]string, error) { return m.Header(reflect.TypeFor[T]()) }

// WriteHeaderOf writes the header row of T to w.
func WriteHeaderOf[T any](m *Mapper, w RowWriter) error {
	return m.WriteHeader(w, reflect.TypeFor[T]())
}

// Make decodes a single row into a new T.
func Make[T any](m *Mapper, row []string) (T, error) {
	var d T
	err := m.Decode(row, &d)
	return d, err
}
