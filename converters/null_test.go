package converters

import (
	"reflect"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNullType(t *testing.T) {
	assert.True(t, IsNullType(reflect.TypeOf(null.String{})))
	assert.True(t, IsNullType(reflect.TypeOf(null.Time{})))
	assert.False(t, IsNullType(reflect.TypeOf("")))
	assert.True(t, IsNullTime(reflect.TypeOf(null.Time{})))
	assert.False(t, IsNullTime(reflect.TypeOf(time.Time{})))
}

func TestNullToString(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{name: "valid string", input: null.StringFrom("M0CMC"), want: "M0CMC"},
		{name: "invalid string", input: null.String{}, want: ""},
		{name: "valid int", input: null.IntFrom(59), want: "59"},
		{name: "valid int64", input: null.Int64From(-1), want: "-1"},
		{name: "invalid int64", input: null.Int64{}, want: ""},
		{name: "valid float", input: null.Float64From(14.32), want: "14.32"},
		{name: "valid bool", input: null.BoolFrom(true), want: "true"},
		{name: "invalid bool", input: null.Bool{}, want: ""},
		{name: "not a null type", input: "plain", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NullToString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringToNull(t *testing.T) {
	got, err := StringToNull("M0CMC", reflect.TypeOf(null.String{}))
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("M0CMC"), got)

	got, err = StringToNull("", reflect.TypeOf(null.String{}))
	require.NoError(t, err)
	assert.Equal(t, null.String{}, got)

	got, err = StringToNull("59", reflect.TypeOf(null.Int{}))
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(59), got)

	got, err = StringToNull("1234567890123", reflect.TypeOf(null.Int64{}))
	require.NoError(t, err)
	assert.Equal(t, null.Int64From(1234567890123), got)

	got, err = StringToNull("14.32", reflect.TypeOf(null.Float64{}))
	require.NoError(t, err)
	assert.Equal(t, null.Float64From(14.32), got)

	got, err = StringToNull("false", reflect.TypeOf(null.Bool{}))
	require.NoError(t, err)
	assert.Equal(t, null.BoolFrom(false), got)

	_, err = StringToNull("abc", reflect.TypeOf(null.Int{}))
	assert.Error(t, err)

	_, err = StringToNull("20240101", reflect.TypeOf(null.Time{}))
	assert.Error(t, err)

	_, err = StringToNull("x", reflect.TypeOf(""))
	assert.Error(t, err)
}
