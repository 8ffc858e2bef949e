package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"Plain decimal", "45.50", 45.50, true},
		{"Currency prefix", "$1,079.00", 1079.00, true},
		{"Potency string", "THC: 22.5%", 22.5, true},
		{"Integer", "99", 99.0, true},
		{"Embedded in text", "3.5g flower", 3.5, true},
		{"Empty string", "", 0, false},
		{"No number", "out of stock", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, ok := ParseNumber(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	v, ok := CoerceFloat(float64(12.5))
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	v, ok = CoerceFloat("19.99")
	assert.True(t, ok)
	assert.Equal(t, 19.99, v)

	_, ok = CoerceFloat(map[string]interface{}{})
	assert.False(t, ok)

	_, ok = CoerceFloat(nil)
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "abc-123", Stringify("abc-123"))
	assert.Equal(t, "42", Stringify(float64(42)))
	assert.Equal(t, "3.5", Stringify(float64(3.5)))
	assert.Equal(t, "true", Stringify(true))
}
