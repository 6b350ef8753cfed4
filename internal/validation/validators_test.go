package validation_test

import (
	"testing"

	"github.com/groenwerk/offerte-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePostcode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"1234ab", "1234 AB", false},
		{"1234 AB", "1234 AB", false},
		{"1234AB", "1234 AB", false},
		{" 9714 cd ", "9714 CD", false},
		{"12AB", "", true},
		{"0123 AB", "", true},
		{"1234 A", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := validation.NormalizePostcode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateTelefoon(t *testing.T) {
	valid := []string{"0612345678", "06-12345678", "+31612345678", "010-1234567", "0031 6 12345678"}
	for _, nummer := range valid {
		assert.NoError(t, validation.ValidateTelefoon(nummer), nummer)
	}

	invalid := []string{"12345", "06123456789", "abcdefghij", "+44612345678x", ""}
	for _, nummer := range invalid {
		assert.Error(t, validation.ValidateTelefoon(nummer), nummer)
	}
}

func TestValidateKvkNummer(t *testing.T) {
	assert.NoError(t, validation.ValidateKvkNummer("12345678"))
	assert.Error(t, validation.ValidateKvkNummer("1234567"))
	assert.Error(t, validation.ValidateKvkNummer("123456789"))
	assert.Error(t, validation.ValidateKvkNummer("1234567a"))
}

func TestValidateBtwNummer(t *testing.T) {
	assert.NoError(t, validation.ValidateBtwNummer("NL123456789B01"))
	assert.NoError(t, validation.ValidateBtwNummer("nl123456789b01"))
	assert.Error(t, validation.ValidateBtwNummer("NL12345678B01"))
	assert.Error(t, validation.ValidateBtwNummer("BE123456789B01"))
	assert.Error(t, validation.ValidateBtwNummer("NL123456789A01"))
}

func TestValidateIban(t *testing.T) {
	// Valid checksums.
	assert.NoError(t, validation.ValidateIban("NL91ABNA0417164300"))
	assert.NoError(t, validation.ValidateIban("nl91 abna 0417 1643 00"))
	assert.NoError(t, validation.ValidateIban("DE89370400440532013000"))

	// Structure ok but checksum wrong.
	assert.Error(t, validation.ValidateIban("NL92ABNA0417164300"))
	// Structure wrong.
	assert.Error(t, validation.ValidateIban("NLABNA0417164300"))
	assert.Error(t, validation.ValidateIban(""))
}

func TestNumericValidators(t *testing.T) {
	assert.NoError(t, validation.ValidatePositive("oppervlakte", 0.1))
	assert.Error(t, validation.ValidatePositive("oppervlakte", 0))
	assert.Error(t, validation.ValidatePositive("oppervlakte", -3))

	assert.NoError(t, validation.ValidateNonNegative("kosten", 0))
	assert.NoError(t, validation.ValidateNonNegative("kosten", 12.5))
	assert.Error(t, validation.ValidateNonNegative("kosten", -0.01))
}

func TestSanitizeOptional(t *testing.T) {
	assert.Equal(t, "", validation.SanitizeOptional("   "))
	assert.Equal(t, "tekst", validation.SanitizeOptional("  tekst "))

	assert.Nil(t, validation.SanitizeOptionalPtr(nil))
	blank := "  "
	assert.Nil(t, validation.SanitizeOptionalPtr(&blank))
	waarde := " tekst "
	resultaat := validation.SanitizeOptionalPtr(&waarde)
	require.NotNil(t, resultaat)
	assert.Equal(t, "tekst", *resultaat)
}
