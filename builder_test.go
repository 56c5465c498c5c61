package rowmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bRecord struct {
	Name string `csv:"name,order=2"`
	Code string
}

type bOther struct {
	Name string `csv:"name"`
}

func TestBuilder_ScopedPrecedence(t *testing.T) {
	upper := Codec{Encode: func(v any, _ string) (string, error) { return strings.ToUpper(v.(string)), nil }}
	lower := Codec{Encode: func(v any, _ string) (string, error) { return strings.ToLower(v.(string)), nil }}

	m, err := NewBuilder().
		AddCodec("Name", upper).
		AddCodecFor(bRecord{}, "Name", lower).
		AddColumn(bRecord{}, "Code", Column{Name: "code", OrderKey: "1"}).
		Build()
	require.NoError(t, err)

	row, err := m.Encode(bRecord{Name: "MiXed", Code: "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "mixed"}, row)

	row, err = m.Encode(bOther{Name: "MiXed"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MIXED"}, row)
}

func TestBuilder_Options(t *testing.T) {
	type rec struct {
		Name string `col:"n"`
	}
	m, err := NewBuilder().WithOptions(WithTagName("col")).Build()
	require.NoError(t, err)

	header, err := m.Header(rec{})
	require.NoError(t, err)
	assert.Equal(t, []string{"n"}, header)
}

func TestBuilder_WarmReportsConfigErrors(t *testing.T) {
	m, err := NewBuilder().Warm(Worker{}, dupRecord{}).Build()
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrDuplicateOrderKey))

	m, err = NewBuilder().Warm(Worker{}).Build()
	require.NoError(t, err)
	l, err := m.Layout(Worker{})
	require.NoError(t, err)
	assert.Equal(t, len(workerHeader), l.Len())
}

func TestBuilder_DoesNotShareRegistries(t *testing.T) {
	b := NewBuilder().AddColumn(bRecord{}, "Code", Column{Name: "code", OrderKey: "1"})
	m1, err := b.Build()
	require.NoError(t, err)

	b.AddColumn(bRecord{}, "Code", Column{Name: "other", OrderKey: "1"})
	m2, err := b.Build()
	require.NoError(t, err)

	h1, err := m1.Header(bRecord{})
	require.NoError(t, err)
	h2, err := m2.Header(bRecord{})
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "name"}, h1)
	assert.Equal(t, []string{"other", "name"}, h2)
}
