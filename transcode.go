package rowmap

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// Operations run to completion and take no context; events are emitted
// against the background context.
var bg = context.Background()

// Header returns the header row for a record value, pointer or reflect.Type:
// the column names in ascending order-key order. A nil record yields an
// empty header.
func (m *Mapper) Header(record any) ([]string, error) {
	if record == nil {
		return []string{}, nil
	}
	l, err := m.Layout(record)
	if err != nil {
		return nil, err
	}
	return l.Header(), nil
}

// WriteHeader writes the header row of the record type to w. The layout is
// resolved from the type alone; no record needs to exist.
func (m *Mapper) WriteHeader(w RowWriter, record any) error {
	header, err := m.Header(record)
	if err != nil {
		return err
	}
	name := typeName(recordType(record))
	if err := w.Write(header); err != nil {
		return m.ioFailure(ErrWrite, name, err)
	}
	if f, ok := w.(flusher); ok {
		f.Flush()
		if err := f.Error(); err != nil {
			return m.ioFailure(ErrWrite, name, err)
		}
	}
	return nil
}

// WriteOne encodes a single record and writes it to w. A nil record writes
// nothing.
func (m *Mapper) WriteOne(w RowWriter, record any) error {
	if _, ok := recordValue(reflect.ValueOf(record)); !ok {
		return nil
	}
	return m.WriteMany(w, []any{record})
}

// WriteMany encodes every record of a slice or array and writes the rows to w
// in one batch. The layout comes from the runtime type of the first record. A
// nil or empty batch, or one holding only nil records, writes nothing. Any
// other non-slice value is written as a single record; nil records later in
// the batch are skipped and reported.
//
// Fields that cannot be encoded become empty columns and are reported as
// diagnostics; only configuration errors (and, with WithPropagateIOErrors,
// sink errors) are returned.
func (m *Mapper) WriteMany(w RowWriter, records any) error {
	if records == nil {
		return nil
	}
	rv := reflect.ValueOf(records)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return m.WriteOne(w, records)
	}
	if rv.Len() == 0 {
		return nil
	}

	var first reflect.Value
	for i := 0; i < rv.Len() && !first.IsValid(); i++ {
		first, _ = recordValue(rv.Index(i))
	}
	if !first.IsValid() {
		return nil
	}
	l, err := m.Layout(first.Type())
	if err != nil {
		return err
	}

	start := time.Now()
	name := typeName(l.typ)
	rows := make([][]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		rec, ok := recordValue(rv.Index(i))
		if !ok {
			m.emitRecordSkipped(bg, name, i, fmt.Errorf("record %d is nil", i))
			continue
		}
		rows = append(rows, m.encodeRecord(l, rec, i))
	}

	if err := w.WriteAll(rows); err != nil {
		return m.ioFailure(ErrWrite, name, err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Error(); err != nil {
			return m.ioFailure(ErrWrite, name, err)
		}
	}
	emitRowsWritten(bg, name, len(rows), time.Since(start))
	return nil
}

// Encode renders one record as a row.
func (m *Mapper) Encode(record any) ([]string, error) {
	rec, ok := recordValue(reflect.ValueOf(record))
	if !ok {
		return nil, newConfigError(ErrNotStruct, "<nil>", "", "record is nil")
	}
	l, err := m.Layout(rec.Type())
	if err != nil {
		return nil, err
	}
	return m.encodeRecord(l, rec, 0), nil
}

// encodeRecord renders rec in layout order. A record whose type differs from
// the layout's yields empty columns.
func (m *Mapper) encodeRecord(l *Layout, rec reflect.Value, row int) []string {
	out := make([]string, len(l.fields))
	sameType := rec.Type() == l.typ
	for i := range l.fields {
		f := &l.fields[i]
		if !sameType {
			m.emitFieldFailed(bg, &FieldError{Err: ErrEncode, Type: typeName(l.typ), Field: f.Name, Column: f.Column.Name, Row: row,
				Cause: fmt.Errorf("record is %s", rec.Type())})
			continue
		}
		s, err := m.encodeField(f, rec)
		if err != nil {
			m.emitFieldFailed(bg, &FieldError{Err: ErrEncode, Type: typeName(l.typ), Field: f.Name, Column: f.Column.Name, Row: row, Cause: err})
			s = ""
		}
		out[i] = s
	}
	return out
}

// ReadAllInto reads every row from r and appends one decoded record per row to
// the slice dst points to. dst must be a pointer to a slice of structs or of
// pointers to structs. When skipHeader is set and at least one row was read,
// the first row is dropped.
//
// Column i is decoded into the i-th field of the layout. A row shorter than the
// layout aborts the whole read with a *RowError. Cells that cannot be decoded
// leave their field at its default and are reported as diagnostics. A failing
// source is reported and yields an empty result.
func (m *Mapper) ReadAllInto(r RowReader, dst any, skipHeader bool) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() || dv.Elem().Kind() != reflect.Slice {
		return newConfigError(ErrInvalidTarget, fmt.Sprintf("%T", dst), "", "")
	}
	sliceType := dv.Elem().Type()
	elemType := sliceType.Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	rt := elemType
	if isPtr {
		rt = elemType.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return newConfigError(ErrNotStruct, typeName(rt), "", "")
	}
	l, err := m.getOrBuildLayout(rt)
	if err != nil {
		return err
	}

	start := time.Now()
	name := typeName(rt)
	rows, err := r.ReadAll()
	if err != nil {
		dv.Elem().Set(reflect.MakeSlice(sliceType, 0, 0))
		return m.ioFailure(ErrRead, name, err)
	}
	offset := 0
	if skipHeader && len(rows) > 0 {
		rows = rows[1:]
		offset = 1
	}

	out := reflect.MakeSlice(sliceType, 0, len(rows))
	for i, row := range rows {
		ptr := reflect.New(rt)
		if err := m.decodeRecord(l, ptr.Elem(), row, i+offset); err != nil {
			return err
		}
		if isPtr {
			out = reflect.Append(out, ptr)
		} else {
			out = reflect.Append(out, ptr.Elem())
		}
	}
	dv.Elem().Set(out)
	emitRowsRead(bg, name, len(rows), time.Since(start))
	return nil
}

// Decode assigns the columns of row to the record dst points to.
func (m *Mapper) Decode(row []string, dst any) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() || dv.Elem().Kind() != reflect.Struct {
		return newConfigError(ErrNotStruct, fmt.Sprintf("%T", dst), "", "Decode needs a non-nil pointer to a struct")
	}
	l, err := m.getOrBuildLayout(dv.Elem().Type())
	if err != nil {
		return err
	}
	return m.decodeRecord(l, dv.Elem(), row, 0)
}

// decodeRecord fills rec from row. Field failures are reported and skipped;
// only a short row is returned as an error.
func (m *Mapper) decodeRecord(l *Layout, rec reflect.Value, row []string, line int) error {
	if len(row) < len(l.fields) {
		return &RowError{Err: ErrShortRow, Row: line, Columns: len(row), Want: len(l.fields)}
	}
	for i := range l.fields {
		f := &l.fields[i]
		outcome, err := m.decodeField(f, rec, row[i])
		switch outcome {
		case decodeSet, decodeSkip:
		case decodeFailed:
			m.emitFieldFailed(bg, &FieldError{Err: ErrDecode, Type: typeName(l.typ), Field: f.Name, Column: f.Column.Name, Row: line, Cause: err})
		}
	}
	return nil
}

// ioFailure reports a row source or sink failure and returns it only when
// WithPropagateIOErrors is set.
func (m *Mapper) ioFailure(sentinel error, name string, cause error) error {
	ioe := &IOError{Err: sentinel, Type: name, Cause: cause}
	m.emitIOFailed(bg, ioe)
	if m.options.PropagateIOErrors {
		return ioe
	}
	return nil
}

// recordValue dereferences interfaces and pointers down to a struct value.
func recordValue(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	return v, true
}
