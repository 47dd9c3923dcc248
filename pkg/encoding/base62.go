package encoding

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	base     = int64(62)
	maxLen   = 11
)

var (
	ErrInvalidBase62 = errors.New("invalid character in base62 string")
	ErrOverflow      = errors.New("base62 value overflows int64")
	ErrNegative      = errors.New("base62 cannot encode negative values")
)

// Base62Encode converts a non-negative integer to a Base62 string.
func Base62Encode(id int64) (string, error) {
	if id < 0 {
		return "", errors.Wrapf(ErrNegative, "id %d", id)
	}
	if id == 0 {
		return string(alphabet[0]), nil
	}

	var chars [maxLen]byte
	k := maxLen
	for n := id; n > 0; n /= base {
		k--
		chars[k] = alphabet[n%base]
	}
	return string(chars[k:]), nil
}

// Base62Decode converts a Base62 string back to an integer.
func Base62Decode(s string) (int64, error) {
	if s == "" {
		return 0, errors.Wrap(ErrInvalidBase62, "empty string")
	}

	var id int64
	for _, char := range s {
		index := strings.IndexRune(alphabet, char)
		if index == -1 {
			return 0, errors.Wrapf(ErrInvalidBase62, "%q", char)
		}
		if id > (math.MaxInt64-int64(index))/base {
			return 0, errors.Wrapf(ErrOverflow, "%q", s)
		}
		id = id*base + int64(index)
	}
	return id, nil
}
