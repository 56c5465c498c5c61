package rowmap

import "reflect"

// Builder provides a fluent API to construct a Mapper with options, codecs and
// columns pre-registered.
type Builder struct {
	opts      []Option
	codecsG   map[string]Codec
	codecsT   map[reflect.Type]map[string]Codec
	columnsT  map[reflect.Type]map[string]Column
	warmTypes []any
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{
		codecsG:  make(map[string]Codec),
		codecsT:  make(map[reflect.Type]map[string]Codec),
		columnsT: make(map[reflect.Type]map[string]Column),
	}
}

// WithOptions appends mapper options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder { b.opts = append(b.opts, opts...); return b }

// AddCodec registers a global codec by field name.
func (b *Builder) AddCodec(field string, c Codec) *Builder {
	b.codecsG[field] = c
	return b
}

// AddCodecFor registers a codec for a record type and field name.
func (b *Builder) AddCodecFor(record any, field string, c Codec) *Builder {
	rt := recordType(record)
	m := b.codecsT[rt]
	if m == nil {
		m = make(map[string]Codec)
		b.codecsT[rt] = m
	}
	m[field] = c
	return b
}

// AddColumn attaches column metadata to a field of a record type.
func (b *Builder) AddColumn(record any, field string, col Column) *Builder {
	rt := recordType(record)
	m := b.columnsT[rt]
	if m == nil {
		m = make(map[string]Column)
		b.columnsT[rt] = m
	}
	m[field] = col
	return b
}

// Warm records example types whose layouts Build resolves up front.
func (b *Builder) Warm(examples ...any) *Builder {
	b.warmTypes = append(b.warmTypes, examples...)
	return b
}

// Build constructs a Mapper using a single registry swap for codecs and
// columns. A configuration error in a warmed type is returned.
func (b *Builder) Build() (*Mapper, error) {
	m := NewWithOptions(b.opts...)
	creg := &codecRegistry{global: make(map[string]Codec, len(b.codecsG)), byType: make(map[reflect.Type]map[string]Codec, len(b.codecsT))}
	for k, v := range b.codecsG {
		creg.global[k] = v
	}
	for t, sm := range b.codecsT {
		sub := make(map[string]Codec, len(sm))
		for k, v := range sm {
			sub[k] = v
		}
		creg.byType[t] = sub
	}
	m.codecs.Store(creg)

	lreg := &columnRegistry{byType: make(map[reflect.Type]map[string]Column, len(b.columnsT))}
	for t, sm := range b.columnsT {
		sub := make(map[string]Column, len(sm))
		for k, v := range sm {
			sub[k] = v
		}
		lreg.byType[t] = sub
	}
	m.columns.Store(lreg)

	if err := m.WarmLayouts(b.warmTypes...); err != nil {
		return nil, err
	}
	return m, nil
}
