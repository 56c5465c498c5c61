package rowmap

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTagName is the struct tag that marks a field as a column.
const DefaultTagName = "csv"

// EncoderFunc renders a field value as column text. format is the column's
// format string, possibly empty.
type EncoderFunc func(value any, format string) (string, error)

// DecoderFunc parses column text into a value assignable (or convertible) to
// the field. Returning a nil value with a nil error leaves the field untouched.
type DecoderFunc func(text string, format string) (any, error)

// Codec overrides the built-in text conversion for a field. Either half may be
// nil, in which case the built-in conversion is used for that direction.
type Codec struct {
	Encode EncoderFunc
	Decode DecoderFunc
}

// Options configures a Mapper.
type Options struct {
	TagName           string           // struct tag holding column metadata, default "csv"
	DefaultTimeFormat string           // pattern for time fields without a format, default RFC 3339
	Location          *time.Location   // zone for parsing dates without zone info, default UTC
	PropagateIOErrors bool             // when true, row source/sink failures are returned instead of only reported
	Diagnostics       func(Diagnostic) // receives every recovered failure
}

type Option func(*Options)

func WithTagName(name string) Option { return func(o *Options) { o.TagName = name } }
func WithDefaultTimeFormat(pattern string) Option {
	return func(o *Options) { o.DefaultTimeFormat = pattern }
}
func WithLocation(loc *time.Location) Option { return func(o *Options) { o.Location = loc } }
func WithPropagateIOErrors(v bool) Option { return func(o *Options) { o.PropagateIOErrors = v } }
func WithDiagnostics(fn func(Diagnostic)) Option { return func(o *Options) { o.Diagnostics = fn } }

// codecRegistry stores codecs at two scopes and is swapped atomically (copy-on-write).
type codecRegistry struct {
	global map[string]Codec
	byType map[reflect.Type]map[string]Codec
}

func (r *codecRegistry) clone() *codecRegistry {
	out := &codecRegistry{
		global: make(map[string]Codec, len(r.global)+1),
		byType: make(map[reflect.Type]map[string]Codec, len(r.byType)+1),
	}
	for k, v := range r.global {
		out.global[k] = v
	}
	for t, m := range r.byType {
		sub := make(map[string]Codec, len(m))
		for k, v := range m {
			sub[k] = v
		}
		out.byType[t] = sub
	}
	return out
}

// columnRegistry holds columns attached to fields without struct tags.
type columnRegistry struct {
	byType map[reflect.Type]map[string]Column
}

func (r *columnRegistry) clone() *columnRegistry {
	out := &columnRegistry{byType: make(map[reflect.Type]map[string]Column, len(r.byType)+1)}
	for t, m := range r.byType {
		sub := make(map[string]Column, len(m))
		for k, v := range m {
			sub[k] = v
		}
		out.byType[t] = sub
	}
	return out
}

type layoutEntry struct {
	layout  *Layout
	err     error
	version uint64 // columns version the layout was built from
}

// Mapper encodes records into rows and decodes rows into records.
//
// A Mapper is safe for concurrent use. Layouts are resolved once per record
// type and cached; registering a column drops the cache.
type Mapper struct {
	codecs  atomic.Value  // holds *codecRegistry
	columns atomic.Value  // holds *columnRegistry
	regMu   sync.Mutex    // serializes registry swaps
	version atomic.Uint64 // bumped after every columns swap
	layouts sync.Map      // map[reflect.Type]*layoutEntry
	options Options
}

// New creates a Mapper with default options.
func New() *Mapper { return NewWithOptions() }

// NewWithOptions creates a new Mapper with provided options.
func NewWithOptions(opts ...Option) *Mapper {
	m := &Mapper{}
	optsState := Options{TagName: DefaultTagName, DefaultTimeFormat: time.RFC3339, Location: time.UTC}
	for _, f := range opts {
		f(&optsState)
	}
	if optsState.TagName == "" {
		optsState.TagName = DefaultTagName
	}
	if optsState.DefaultTimeFormat == "" {
		optsState.DefaultTimeFormat = time.RFC3339
	}
	if optsState.Location == nil {
		optsState.Location = time.UTC
	}
	m.options = optsState
	m.codecs.Store(&codecRegistry{global: make(map[string]Codec), byType: make(map[reflect.Type]map[string]Codec)})
	m.columns.Store(&columnRegistry{byType: make(map[reflect.Type]map[string]Column)})
	return m
}

// RegisterCodec adds a codec for fieldName on any record type.
func (m *Mapper) RegisterCodec(fieldName string, c Codec) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	reg := m.codecs.Load().(*codecRegistry).clone()
	reg.global[fieldName] = c
	m.codecs.Store(reg)
}

// RegisterCodecFor adds a codec for fieldName on the given record type only.
// record may be a value, a pointer or a reflect.Type. Type-scoped codecs take
// precedence over global ones.
func (m *Mapper) RegisterCodecFor(record any, fieldName string, c Codec) {
	rt := recordType(record)
	m.regMu.Lock()
	defer m.regMu.Unlock()
	reg := m.codecs.Load().(*codecRegistry).clone()
	sub := reg.byType[rt]
	if sub == nil {
		sub = make(map[string]Codec)
		reg.byType[rt] = sub
	}
	sub[fieldName] = c
	m.codecs.Store(reg)
}

// RegisterColumn marks fieldName of the record type as a column without a
// struct tag, or replaces the tag's metadata. Empty Column attributes take the
// usual defaults.
func (m *Mapper) RegisterColumn(record any, fieldName string, col Column) {
	rt := recordType(record)
	m.regMu.Lock()
	defer m.regMu.Unlock()
	reg := m.columns.Load().(*columnRegistry).clone()
	sub := reg.byType[rt]
	if sub == nil {
		sub = make(map[string]Column)
		reg.byType[rt] = sub
	}
	sub[fieldName] = col
	m.columns.Store(reg)
	m.version.Add(1)
	m.layouts.Range(func(k, _ any) bool {
		m.layouts.Delete(k)
		return true
	})
}

// WarmLayouts pre-builds layouts for the provided example values or types.
// The first configuration error is returned.
func (m *Mapper) WarmLayouts(examples ...any) error {
	for _, e := range examples {
		if e == nil {
			continue
		}
		if _, err := m.Layout(e); err != nil {
			return err
		}
	}
	return nil
}

// Layout returns the resolved column layout for a record value, pointer or
// reflect.Type.
func (m *Mapper) Layout(record any) (*Layout, error) {
	rt, err := structType(record)
	if err != nil {
		return nil, err
	}
	return m.getOrBuildLayout(rt)
}

// getOrBuildLayout returns the cached layout of rt. Entries built from an
// older columns registry are rebuilt.
func (m *Mapper) getOrBuildLayout(rt reflect.Type) (*Layout, error) {
	v := m.version.Load()
	if cached, ok := m.layouts.Load(rt); ok {
		if e := cached.(*layoutEntry); e.version == v {
			return e.layout, e.err
		}
	}
	l, err := m.buildLayout(rt)
	e := &layoutEntry{layout: l, err: err, version: v}
	if actual, loaded := m.layouts.LoadOrStore(rt, e); loaded {
		if prev := actual.(*layoutEntry); prev.version >= v {
			return prev.layout, prev.err
		}
		m.layouts.Store(rt, e)
	}
	if err == nil {
		emitLayoutBuilt(bg, typeName(rt), l.Len())
	}
	return l, err
}

func (m *Mapper) codecFor(rt reflect.Type, fieldName string) (Codec, bool) {
	reg := m.codecs.Load().(*codecRegistry)
	if c, ok := reg.byType[rt][fieldName]; ok {
		return c, true
	}
	c, ok := reg.global[fieldName]
	return c, ok
}

func (m *Mapper) registeredColumns(rt reflect.Type) map[string]Column {
	return m.columns.Load().(*columnRegistry).byType[rt]
}
