package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// NormalizePhoneE164 formats phoneNumber as E.164 for the given region and
// falls back to the trimmed input when it cannot be parsed.
func NormalizePhoneE164(phoneNumber, countryCode string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	if trimmed == "" {
		return trimmed
	}

	p, err := libphonenumber.Parse(trimmed, countryCode)
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return trimmed
	}
	return libphonenumber.Format(p, libphonenumber.E164)
}

func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
