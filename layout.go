package rowmap

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/Station-Manager/rowmap/converters"
)

// Column is the declarative metadata attached to a field. Empty attributes
// take their defaults: Name and OrderKey default to the field identifier,
// Format defaults to empty.
type Column struct {
	Name     string // header display name
	OrderKey string // sort and uniqueness key
	Format   string // date pattern for time fields
}

// FieldKind is the semantic type of a mapped field.
type FieldKind int

const (
	KindOther FieldKind = iota
	KindString
	KindBool
	KindInt
	KindUint
	KindFloat
	KindTime
	KindNull
	KindJSON
	KindText
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	case KindNull:
		return "null"
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	}
	return "other"
}

var (
	timeType            = reflect.TypeOf(time.Time{})
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Field describes one mapped field of a record type.
type Field struct {
	Name   string       // Go field identifier
	Column Column       // resolved metadata, defaults applied
	Type   reflect.Type // declared field type
	Kind   FieldKind

	index  []int  // reflect.Value.FieldByIndex access path
	layout string // Go time layout for time fields
}

// value returns the field of rv. ok is false when an embedded pointer on the
// path is nil.
func (f *Field) value(rv reflect.Value) (reflect.Value, bool) {
	val := rv
	for i, x := range f.index {
		if i > 0 && val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return reflect.Value{}, false
			}
			val = val.Elem()
		}
		val = val.Field(x)
	}
	return val, true
}

// settable returns the field of rv, allocating nil embedded pointers on the path.
func (f *Field) settable(rv reflect.Value) (reflect.Value, error) {
	val := rv
	for i, x := range f.index {
		if i > 0 && val.Kind() == reflect.Ptr {
			if val.IsNil() {
				if !val.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate embedded %s", val.Type())
				}
				val.Set(reflect.New(val.Type().Elem()))
			}
			val = val.Elem()
		}
		val = val.Field(x)
	}
	if !val.CanSet() {
		return reflect.Value{}, fmt.Errorf("cannot set field %s (unexported or unsettable)", f.Name)
	}
	return val, nil
}

// Layout is the resolved, ordered column mapping of one record type: fields
// sorted by ascending order key, order keys unique.
type Layout struct {
	typ    reflect.Type
	fields []Field
}

// Type returns the record type the layout was built for.
func (l *Layout) Type() reflect.Type { return l.typ }

// Len returns the number of columns.
func (l *Layout) Len() int { return len(l.fields) }

// Fields returns a copy of the field descriptors in column order.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)
	return out
}

// Header returns the column display names in column order.
func (l *Layout) Header() []string {
	header := make([]string, len(l.fields))
	for i := range l.fields {
		header[i] = l.fields[i].Column.Name
	}
	return header
}

// candidate is a marked field found while walking a record type.
type candidate struct {
	sf     reflect.StructField
	index  []int
	column Column
}

// buildLayout resolves the marked fields of rt, orders them by order key and
// rejects duplicate keys.
func (m *Mapper) buildLayout(rt reflect.Type) (*Layout, error) {
	name := typeName(rt)
	registered := m.registeredColumns(rt)

	var found []candidate
	if err := m.resolveFields(rt, nil, registered, map[reflect.Type]bool{}, &found); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(found))
	fields := make([]Field, 0, len(found))
	for _, c := range found {
		col := c.column
		if col.Name == "" {
			col.Name = c.sf.Name
		}
		if col.OrderKey == "" {
			col.OrderKey = c.sf.Name
		}
		if prev, dup := seen[col.OrderKey]; dup {
			return nil, newConfigError(ErrDuplicateOrderKey, name, c.sf.Name,
				fmt.Sprintf("%q (also used by %s)", col.OrderKey, prev))
		}
		seen[col.OrderKey] = c.sf.Name

		f := Field{
			Name:   c.sf.Name,
			Column: col,
			Type:   c.sf.Type,
			Kind:   fieldKind(c.sf.Type),
			index:  c.index,
		}
		if f.isTime() {
			pattern := col.Format
			if pattern == "" {
				pattern = m.options.DefaultTimeFormat
			}
			layout, err := converters.Layout(pattern)
			if err != nil {
				return nil, &ConfigError{Err: ErrInvalidFormat, Type: name, Field: f.Name, Detail: fmt.Sprintf("%q: %v", pattern, err)}
			}
			f.layout = layout
		}
		fields = append(fields, f)
	}

	slices.SortFunc(fields, func(a, b Field) int {
		return strings.Compare(a.Column.OrderKey, b.Column.OrderKey)
	})
	return &Layout{typ: rt, fields: fields}, nil
}

// resolveFields appends the marked fields declared on rt, then the marked
// fields of every embedded struct, recursively. An embedded type already on
// the current path is not entered again.
func (m *Mapper) resolveFields(rt reflect.Type, prefix []int, registered map[string]Column, path map[reflect.Type]bool, out *[]candidate) error {
	path[rt] = true
	defer delete(path, rt)

	var embedded []reflect.StructField
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag, tagged := sf.Tag.Lookup(m.options.TagName)
		if tagged && tag == "-" {
			continue
		}
		if sf.Anonymous && isFlattened(sf.Type) {
			embedded = append(embedded, sf)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		col, registeredCol := registered[sf.Name]
		if !registeredCol {
			if !tagged {
				continue
			}
			parsed, err := parseTag(tag)
			if err != nil {
				return newConfigError(ErrInvalidTag, typeName(rt), sf.Name, err.Error())
			}
			col = parsed
		}
		idx := append(append([]int(nil), prefix...), i)
		*out = append(*out, candidate{sf: sf, index: idx, column: col})
	}

	for _, sf := range embedded {
		ft := sf.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if path[ft] {
			continue
		}
		idx := append(append([]int(nil), prefix...), sf.Index...)
		if err := m.resolveFields(ft, idx, registered, path, out); err != nil {
			return err
		}
	}
	return nil
}

// isFlattened reports whether an embedded field contributes its own fields
// rather than being a column itself.
func isFlattened(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && fieldKind(t) == KindOther
}

// parseTag parses `name,order=key,format=pattern`. The format option takes the
// rest of the tag, so patterns may contain commas.
func parseTag(tag string) (Column, error) {
	parts := strings.Split(tag, ",")
	col := Column{Name: strings.TrimSpace(parts[0])}
	for i := 1; i < len(parts); i++ {
		k, v, ok := strings.Cut(parts[i], "=")
		k = strings.TrimSpace(k)
		if !ok {
			return Column{}, fmt.Errorf("option %q has no value", k)
		}
		switch k {
		case "name":
			col.Name = v
		case "order":
			col.OrderKey = v
		case "format":
			col.Format = strings.Join(append([]string{v}, parts[i+1:]...), ",")
			return col, nil
		default:
			return Column{}, fmt.Errorf("unknown option %q", k)
		}
	}
	return col, nil
}

// fieldKind classifies a field type; pointer types classify as their element.
func fieldKind(t reflect.Type) FieldKind {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == timeType:
		return KindTime
	case converters.IsNullType(t):
		return KindNull
	case converters.IsJSONType(t):
		return KindJSON
	case reflect.PointerTo(t).Implements(textUnmarshalerType) &&
		(t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)):
		return KindText
	}
	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	}
	return KindOther
}

func (f *Field) isTime() bool {
	return f.Kind == KindTime || (f.Kind == KindNull && converters.IsNullTime(f.baseType()))
}

func (f *Field) isPtr() bool {
	return f.Type.Kind() == reflect.Ptr
}

func (f *Field) baseType() reflect.Type {
	if f.Type.Kind() == reflect.Ptr {
		return f.Type.Elem()
	}
	return f.Type
}

// recordType strips pointers from the type of record. record may itself be a
// reflect.Type.
func recordType(record any) reflect.Type {
	var rt reflect.Type
	switch v := record.(type) {
	case nil:
		return nil
	case reflect.Type:
		rt = v
	default:
		rt = reflect.TypeOf(record)
	}
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt
}

// structType is recordType restricted to struct types.
func structType(record any) (reflect.Type, error) {
	rt := recordType(record)
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, newConfigError(ErrNotStruct, typeName(rt), "", "")
	}
	return rt, nil
}

func typeName(rt reflect.Type) string {
	if rt == nil {
		return "<nil>"
	}
	return rt.String()
}
