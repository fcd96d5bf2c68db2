package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ravi.kumar@arcadia.dev"))
	assert.True(t, IsValidEmail("a_b+c@sub.example.co"))
	assert.False(t, IsValidEmail("no-at-sign.example.com"))
	assert.False(t, IsValidEmail("trailing@dot."))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("9876543210"))
	assert.True(t, IsValidPhoneNumber("+919876543210"))
	assert.True(t, IsValidPhoneNumber("09876543210"))
	assert.False(t, IsValidPhoneNumber("1234567890"))
	assert.False(t, IsValidPhoneNumber("98765"))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025-03-14")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 14, d.Day())

	_, ok = ParseDate("14-03-2025")
	assert.False(t, ok)

	_, ok = ParseDate("2025-3-14")
	assert.False(t, ok)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty(" x "))
}
