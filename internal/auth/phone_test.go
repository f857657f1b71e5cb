package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+34 600 123 456", "+34600123456"},
		{"34-600-123-456", "+34600123456"},
		{"(34) 600 123456", "+34600123456"},
		{"  +34600123456  ", "+34600123456"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		got := FormatPhone(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, got, FormatPhone(got), "must be idempotent for %q", tt.in)
	}
}

func TestPhoneVariants(t *testing.T) {
	assert.Equal(t, []string{"+34600", "34600"}, PhoneVariants("+34 600"))
	assert.Equal(t, []string{"34600", "+34600"}, PhoneVariants("34600"))
	assert.Nil(t, PhoneVariants("  "))
}

func TestPhoneToEmail(t *testing.T) {
	assert.Equal(t, "phone-34600123456@shiptrack.local", PhoneToEmail("+34 600 123 456"))
	assert.Equal(t, "phone-34600123456@shiptrack.local", PhoneToEmail("34600123456"))
	assert.Equal(t, "", PhoneToEmail("+"))
	assert.Equal(t, "", PhoneToEmail(""))

	// Distinct digit sequences map to distinct addresses.
	assert.NotEqual(t, PhoneToEmail("34600123456"), PhoneToEmail("34600123457"))
	// Formatting differences do not.
	assert.Equal(t, PhoneToEmail("34 600-123-456"), PhoneToEmail("+34600123456"))
}

func TestHashPin(t *testing.T) {
	// SHA-256("1234"), lowercase hex; must match digests on legacy rows.
	assert.Equal(t,
		"03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4",
		HashPin("1234"))
	assert.Equal(t, HashPin("0000"), HashPin("0000"))
	assert.NotEqual(t, HashPin("0000"), HashPin("0001"))
}
