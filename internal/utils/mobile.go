package utils

import (
	"regexp"
	"strings"
)

// CountryCode is the dialling prefix stripped from national mobile numbers
const CountryCode = "91"

var (
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	otpPattern    = regexp.MustCompile(`^\d{4,8}$`)
	separators    = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// NormalizeMobile strips separators and the country or trunk prefix, returning
// the canonical 10-digit number and whether it is a valid mobile number.
func NormalizeMobile(mobile string) (string, bool) {
	stripped := separators.Replace(strings.TrimSpace(mobile))

	switch {
	case strings.HasPrefix(stripped, "+"+CountryCode):
		stripped = stripped[len(CountryCode)+1:]
	case len(stripped) == 12 && strings.HasPrefix(stripped, CountryCode):
		stripped = stripped[len(CountryCode):]
	case len(stripped) == 11 && strings.HasPrefix(stripped, "0"):
		stripped = stripped[1:]
	}

	if !mobilePattern.MatchString(stripped) {
		return "", false
	}
	return stripped, true
}

// IsValidOTP reports whether code looks like a one-time code (4 to 8 digits)
func IsValidOTP(code string) bool {
	return otpPattern.MatchString(code)
}
