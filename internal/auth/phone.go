package auth

import "strings"

const emailDomain = "shiptrack.local"

// NormalizePhone strips the separators users type into phone fields.
func NormalizePhone(value string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return strings.TrimSpace(replacer.Replace(value))
}

// FormatPhone returns the normalized number with a guaranteed leading +.
// Applying it twice yields the same result.
func FormatPhone(value string) string {
	normalized := NormalizePhone(value)
	if normalized == "" {
		return ""
	}
	if strings.HasPrefix(normalized, "+") {
		return normalized
	}
	return "+" + normalized
}

// PhoneVariants returns the normalized number both with and without the
// leading +, in lookup order. Legacy rows were stored either way.
func PhoneVariants(value string) []string {
	normalized := NormalizePhone(value)
	if normalized == "" {
		return nil
	}

	variants := []string{normalized}
	if strings.HasPrefix(normalized, "+") {
		variants = append(variants, normalized[1:])
	} else {
		variants = append(variants, "+"+normalized)
	}
	return variants
}

// DigitsOnly keeps the digit sequence of a phone number. Two numbers are
// the same user when their digit sequences match.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneToEmail derives the synthetic provider address for a phone number:
// phone-<digits>@shiptrack.local. Distinct digit sequences map to distinct
// addresses, so the mapping is collision-free given phone uniqueness.
func PhoneToEmail(value string) string {
	digits := DigitsOnly(FormatPhone(value))
	if digits == "" {
		return ""
	}
	return "phone-" + digits + "@" + emailDomain
}
