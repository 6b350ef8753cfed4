// Package validation holds the boundary validators and sanitizers for
// Dutch business identifiers and numeric inputs. All functions are
// stateless and total: they normalize, return a descriptive error, or
// both, and never touch external state.
package validation

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	// 06-12345678, +31 6 12345678, 010-1234567 and similar.
	telefoonPattern = regexp.MustCompile(`^(\+31|0031|0)[1-9][0-9]{8}$`)
	postcodePattern = regexp.MustCompile(`^[1-9][0-9]{3}\s?[A-Za-z]{2}$`)
	kvkPattern      = regexp.MustCompile(`^[0-9]{8}$`)
	btwPattern      = regexp.MustCompile(`^NL[0-9]{9}B[0-9]{2}$`)
	ibanPattern     = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)
)

// ValidateTelefoon checks a Dutch phone number, ignoring spaces and dashes
func ValidateTelefoon(telefoon string) error {
	stripped := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(telefoon)
	if !telefoonPattern.MatchString(stripped) {
		return fmt.Errorf("ongeldig telefoonnummer: %q", telefoon)
	}
	return nil
}

// NormalizePostcode validates a Dutch postcode and returns it in the
// canonical "1234 AB" form. "1234ab" normalizes; "12AB" is rejected.
func NormalizePostcode(postcode string) (string, error) {
	trimmed := strings.TrimSpace(postcode)
	if !postcodePattern.MatchString(trimmed) {
		return "", fmt.Errorf("ongeldige postcode: %q", postcode)
	}
	compact := strings.ReplaceAll(trimmed, " ", "")
	return compact[:4] + " " + strings.ToUpper(compact[4:]), nil
}

// ValidateKvkNummer checks an 8-digit KvK (chamber of commerce) number
func ValidateKvkNummer(kvk string) error {
	if !kvkPattern.MatchString(strings.TrimSpace(kvk)) {
		return fmt.Errorf("ongeldig KvK-nummer: %q (8 cijfers verwacht)", kvk)
	}
	return nil
}

// ValidateBtwNummer checks a Dutch VAT number (NL + 9 digits + B + 2 digits)
func ValidateBtwNummer(btw string) error {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(btw), " ", ""))
	if !btwPattern.MatchString(normalized) {
		return fmt.Errorf("ongeldig BTW-nummer: %q", btw)
	}
	return nil
}

// ValidateIban checks an IBAN's structure and its mod-97 check digits
func ValidateIban(iban string) error {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
	if !ibanPattern.MatchString(normalized) {
		return fmt.Errorf("ongeldige IBAN: %q", iban)
	}

	// Move the country code and check digits to the end, map letters to
	// numbers (A=10..Z=35) and verify the result mod 97 equals 1.
	rearranged := normalized[4:] + normalized[:4]
	var digits strings.Builder
	for _, r := range rearranged {
		if r >= 'A' && r <= 'Z' {
			fmt.Fprintf(&digits, "%d", r-'A'+10)
		} else {
			digits.WriteRune(r)
		}
	}

	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return fmt.Errorf("ongeldige IBAN: %q", iban)
	}
	if new(big.Int).Mod(n, big.NewInt(97)).Int64() != 1 {
		return fmt.Errorf("ongeldige IBAN: %q (controlegetal klopt niet)", iban)
	}
	return nil
}

// ValidatePositive requires a value strictly greater than zero
func ValidatePositive(veld string, waarde float64) error {
	if waarde <= 0 {
		return fmt.Errorf("%s moet groter zijn dan 0, kreeg %.2f", veld, waarde)
	}
	return nil
}

// ValidateNonNegative requires a value of zero or more
func ValidateNonNegative(veld string, waarde float64) error {
	if waarde < 0 {
		return fmt.Errorf("%s mag niet negatief zijn, kreeg %.2f", veld, waarde)
	}
	return nil
}
