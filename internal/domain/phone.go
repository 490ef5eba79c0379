package domain

import (
	"errors"
	"strings"
)

// ErrMalformedNumber marks raw input that carries no digits at all. The
// pipeline turns it into a low-confidence Decision instead of a fault.
var ErrMalformedNumber = errors.New("malformed phone number")

// NormalizePhoneNumber canonicalizes raw user input into E.164 form: leading
// "+", country code, digits only. defaultRegion is the dialing prefix
// substituted for a leading trunk "0" (e.g. "+61").
//
// Normalization is idempotent: normalizing an already normalized number
// returns it unchanged.
func NormalizePhoneNumber(raw, defaultRegion string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", ErrMalformedNumber
	}

	d := digits.String()
	switch {
	case strings.HasPrefix(trimmed, "+"):
		return "+" + d, nil
	case strings.HasPrefix(d, "0"):
		// Trunk prefix; rewrite to the default region's country code.
		return defaultRegion + d[1:], nil
	default:
		return "+" + d, nil
	}
}
