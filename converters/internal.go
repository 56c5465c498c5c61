package converters

import (
	"github.com/Station-Manager/errors"
)

// CheckString asserts that src is a string.
func CheckString(op errors.Op, src any) (string, error) {
	srcVal, ok := src.(string)
	if !ok {
		return "", errors.New(op).Errorf("Given parameter not a string, got %T", src)
	}
	return srcVal, nil
}
