package converters

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
		wantErr bool
	}{
		{name: "compact date", pattern: "yyyyMMdd", want: "20060102"},
		{name: "date and time", pattern: "dd/MM/yyyy HH:mm:ss", want: "02/01/2006 15:04:05"},
		{name: "unpadded fields", pattern: "yy-M-d", want: "06-1-2"},
		{name: "short names", pattern: "EEE, d MMM yyyy", want: "Mon, 2 Jan 2006"},
		{name: "long names", pattern: "EEEE MMMM", want: "Monday January"},
		{name: "twelve hour clock", pattern: "hh:mm a", want: "03:04 PM"},
		{name: "fraction after dot", pattern: "HH:mm:ss.SSS", want: "15:04:05.000"},
		{name: "fraction after comma", pattern: "HH:mm:ss,SS", want: "15:04:05,00"},
		{name: "iso offset", pattern: "yyyy-MM-dd'T'HH:mm:ssXXX", want: "2006-01-02T15:04:05Z07:00"},
		{name: "numeric zone", pattern: "yyyy-MM-dd HH:mm Z", want: "2006-01-02 15:04 -0700"},
		{name: "zone abbreviation", pattern: "HH:mm z", want: "15:04 MST"},
		{name: "day of year", pattern: "yyyy-DDD", want: "2006-002"},
		{name: "quoted literal with escaped quote", pattern: "'at' HH 'o''clock'", want: "at 15 o'clock"},
		{name: "escaped quote outside literal", pattern: "yyyy''MM", want: "2006'01"},
		{name: "go layout passes through", pattern: "2006-01-02", want: "2006-01-02"},
		{name: "empty pattern", pattern: "", wantErr: true},
		{name: "unterminated quote", pattern: "yyyy 'open", wantErr: true},
		{name: "fraction without separator", pattern: "ssSSS", wantErr: true},
		{name: "unsupported letter", pattern: "yyyy-QQ", wantErr: true},
		{name: "digit in quoted literal", pattern: "'Q1' yyyy", wantErr: true},
		{name: "digit in plain literal", pattern: "yyyy1MM", wantErr: true},
		{name: "month name in literal", pattern: "yyyy 'Mon'", wantErr: true},
		{name: "meridiem in literal", pattern: "HH:mm'PM'", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Layout(tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeToString(t *testing.T) {
	ts := time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC)

	got, err := TimeToString(ts, "20060102")
	require.NoError(t, err)
	assert.Equal(t, "20240229", got)

	got, err = TimeToString(&ts, "15:04")
	require.NoError(t, err)
	assert.Equal(t, "13:45", got)

	var nilTime *time.Time
	got, err = TimeToString(nilTime, "20060102")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = TimeToString(time.Time{}, "20060102")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	var zero time.Time
	got, err = TimeToString(&zero, time.RFC3339)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = TimeToString("20240229", "20060102")
	assert.Error(t, err)
}

func TestStringToTime(t *testing.T) {
	got, err := StringToTime("20240229", "20060102", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	zone := time.FixedZone("UTC+2", 2*60*60)
	got, err = StringToTime("2024-02-29 10:00", "2006-01-02 15:04", zone)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)))

	_, err = StringToTime("2024/02/29", "20060102", nil)
	assert.Error(t, err)

	_, err = StringToTime(20240229, "20060102", nil)
	assert.Error(t, err)
}

func TestNullTimeConversions(t *testing.T) {
	ts := time.Date(1990, 11, 2, 0, 0, 0, 0, time.UTC)

	got, err := NullTimeToString(null.TimeFrom(ts), "20060102")
	require.NoError(t, err)
	assert.Equal(t, "19901102", got)

	got, err = NullTimeToString(null.Time{}, "20060102")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = NullTimeToString(ts, "20060102")
	assert.Error(t, err)

	nt, err := StringToNullTime("19901102", "20060102", time.UTC)
	require.NoError(t, err)
	assert.True(t, nt.Valid)
	assert.True(t, nt.Time.Equal(ts))

	nt, err = StringToNullTime("", "20060102", time.UTC)
	require.NoError(t, err)
	assert.False(t, nt.Valid)

	_, err = StringToNullTime("1990-11-02", "20060102", time.UTC)
	assert.Error(t, err)
}
