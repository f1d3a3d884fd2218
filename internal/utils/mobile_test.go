package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMobile(t *testing.T) {
	tests := []struct {
		name      string
		mobile    string
		expected  string
		wantValid bool
	}{
		{name: "plain ten digits", mobile: "9876543210", expected: "9876543210", wantValid: true},
		{name: "starts with 6", mobile: "6123456789", expected: "6123456789", wantValid: true},
		{name: "with country code and plus", mobile: "+919876543210", expected: "9876543210", wantValid: true},
		{name: "with country code", mobile: "919876543210", expected: "9876543210", wantValid: true},
		{name: "with trunk zero", mobile: "09876543210", expected: "9876543210", wantValid: true},
		{name: "with spaces and dashes", mobile: "98765-432 10", expected: "9876543210", wantValid: true},
		{name: "ten digits starting with 91", mobile: "9198765432", expected: "9198765432", wantValid: true},
		{name: "plus prefix with separators", mobile: "+91 98765-43210", expected: "9876543210", wantValid: true},
		{name: "parentheses and dots", mobile: "(987) 654.3210", expected: "9876543210", wantValid: true},
		{name: "international zeros", mobile: "00919876543210", wantValid: false},
		{name: "country code and trunk zero", mobile: "+9109876543210", wantValid: false},
		{name: "country code on short number", mobile: "91987654321", wantValid: false},
		{name: "too short", mobile: "123", wantValid: false},
		{name: "starts with 5", mobile: "5876543210", wantValid: false},
		{name: "eleven digits", mobile: "98765432101", wantValid: false},
		{name: "letters", mobile: "98765abcde", wantValid: false},
		{name: "empty", mobile: "", wantValid: false},
		{name: "foreign country code", mobile: "+629876543210", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeMobile(tt.mobile)

			assert.Equal(t, tt.wantValid, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsValidOTP(t *testing.T) {
	assert.True(t, IsValidOTP("1234"))
	assert.True(t, IsValidOTP("000000"))
	assert.True(t, IsValidOTP("12345678"))
	assert.False(t, IsValidOTP("123"))
	assert.False(t, IsValidOTP("123456789"))
	assert.False(t, IsValidOTP("12ab56"))
	assert.False(t, IsValidOTP(""))
}
