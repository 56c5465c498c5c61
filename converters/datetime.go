package converters

import (
	"strings"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

// Layout translates a date pattern such as "yyyyMMdd" or "dd/MM/yyyy HH:mm:ss.SSS"
// into a Go reference layout. Patterns that already contain the reference year
// "2006" are treated as Go layouts and returned unchanged.
//
// Supported letters: y, M, L, d, D, E, a, H, h, m, s, S, z, Z, X. Text between
// single quotes is copied literally and '' yields a single quote. Literal text
// must not contain digits or the words Go reads as layout elements (Jan, Mon,
// MST, PM, pm).
func Layout(pattern string) (string, error) {
	const op errors.Op = "converters.Layout"
	if pattern == "" {
		return "", errors.New(op).Msg(ErrMsgEmptyPattern)
	}
	if strings.Contains(pattern, "2006") {
		return pattern, nil
	}

	runes := []rune(pattern)
	var b, lit strings.Builder
	flush := func() error {
		text := lit.String()
		lit.Reset()
		if hasLayoutElement(text) {
			return errors.New(op).Errorf("%s: %q", ErrMsgLayoutLiteral, text)
		}
		b.WriteString(text)
		return nil
	}

	var prev rune
	for i := 0; i < len(runes); {
		c := runes[i]
		if c == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				prev = '\''
				i += 2
				continue
			}
			j := i + 1
			closed := false
			for j < len(runes) {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						lit.WriteRune('\'')
						prev = '\''
						j += 2
						continue
					}
					closed = true
					break
				}
				lit.WriteRune(runes[j])
				prev = runes[j]
				j++
			}
			if !closed {
				return "", errors.New(op).Msg(ErrMsgUnterminatedQuote)
			}
			i = j + 1
			continue
		}
		if !isPatternLetter(c) {
			lit.WriteRune(c)
			prev = c
			i++
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == c {
			n++
		}
		if c == 'S' && prev != '.' && prev != ',' {
			return "", errors.New(op).Msg(ErrMsgBadFraction)
		}
		token, ok := letterLayout(c, n)
		if !ok {
			return "", errors.New(op).Errorf("Unsupported pattern letter %q in %q", c, pattern)
		}
		if err := flush(); err != nil {
			return "", err
		}
		b.WriteString(token)
		prev = c
		i += n
	}
	if err := flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// hasLayoutElement reports whether literal text would be read by time.Format
// as part of the layout.
func hasLayoutElement(text string) bool {
	if strings.ContainsAny(text, "0123456789") {
		return true
	}
	for _, word := range []string{"Jan", "Mon", "MST", "PM", "pm"} {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func isPatternLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// letterLayout maps a run of n identical pattern letters to its Go layout token.
func letterLayout(c rune, n int) (string, bool) {
	switch c {
	case 'y':
		if n == 2 {
			return "06", true
		}
		return "2006", true
	case 'M', 'L':
		switch n {
		case 1:
			return "1", true
		case 2:
			return "01", true
		case 3:
			return "Jan", true
		}
		return "January", true
	case 'd':
		if n == 1 {
			return "2", true
		}
		return "02", true
	case 'D':
		return "002", true
	case 'E':
		if n <= 3 {
			return "Mon", true
		}
		return "Monday", true
	case 'a':
		return "PM", true
	case 'H':
		// Go has no unpadded 24-hour token.
		return "15", true
	case 'h':
		if n == 1 {
			return "3", true
		}
		return "03", true
	case 'm':
		if n == 1 {
			return "4", true
		}
		return "04", true
	case 's':
		if n == 1 {
			return "5", true
		}
		return "05", true
	case 'S':
		return strings.Repeat("0", n), true
	case 'z':
		return "MST", true
	case 'Z':
		return "-0700", true
	case 'X':
		switch n {
		case 1:
			return "Z07", true
		case 2:
			return "Z0700", true
		}
		return "Z07:00", true
	}
	return "", false
}

// TimeToString renders a time.Time or *time.Time with the given Go layout.
// A nil pointer or the zero time renders as an empty string.
func TimeToString(src any, layout string) (string, error) {
	const op errors.Op = "converters.TimeToString"
	switch v := src.(type) {
	case time.Time:
		if v.IsZero() {
			return "", nil
		}
		return v.Format(layout), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return "", nil
		}
		return v.Format(layout), nil
	}
	return "", errors.New(op).Errorf("Given parameter not a time.Time, got %T", src)
}

// StringToTime parses src with the given Go layout. Text without zone
// information is interpreted in loc; a nil loc means UTC.
func StringToTime(src any, layout string, loc *time.Location) (time.Time, error) {
	const op errors.Op = "converters.StringToTime"
	srcVal, err := CheckString(op, src)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err)
	}
	if loc == nil {
		loc = time.UTC
	}
	retVal, err := time.ParseInLocation(layout, srcVal, loc)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(ErrMsgBadDateFormat)
	}
	return retVal, nil
}

// NullTimeToString renders a null.Time with the given Go layout. An invalid
// value renders as an empty string.
func NullTimeToString(src any, layout string) (string, error) {
	const op errors.Op = "converters.NullTimeToString"
	nullTime, ok := src.(null.Time)
	if !ok {
		return "", errors.New(op).Errorf("Given parameter not a null.Time, got %T", src)
	}
	if !nullTime.Valid {
		return "", nil
	}
	return nullTime.Time.Format(layout), nil
}

// StringToNullTime parses src into a valid null.Time. Empty text yields an
// invalid null.Time.
func StringToNullTime(src any, layout string, loc *time.Location) (null.Time, error) {
	const op errors.Op = "converters.StringToNullTime"
	srcVal, err := CheckString(op, src)
	if err != nil {
		return null.Time{}, errors.New(op).Err(err)
	}
	if srcVal == "" {
		return null.Time{}, nil
	}
	t, err := StringToTime(srcVal, layout, loc)
	if err != nil {
		return null.Time{}, errors.New(op).Err(err)
	}
	return null.TimeFrom(t), nil
}
