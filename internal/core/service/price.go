package service

import "strings"

// validatePrice checks that raw is a non-negative decimal with at most
// eight integer digits and at most two fractional digits (ten significant
// digits total). Returns an empty string when valid, otherwise the field
// error message.
func validatePrice(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "price is required"
	}
	if strings.HasPrefix(v, "-") {
		return "price must not be negative"
	}

	intPart := v
	fracPart := ""
	if i := strings.IndexByte(v, '.'); i >= 0 {
		intPart, fracPart = v[:i], v[i+1:]
	}
	if intPart == "" || !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return "price must be a decimal number"
	}
	if len(fracPart) > 2 {
		return "price must have at most 2 decimal places"
	}
	if len(strings.TrimLeft(intPart, "0")) > 8 {
		return "price is too large"
	}
	return ""
}

// normalizePrice renders a validated price with exactly two decimal places,
// so "999.9" and "999.90" persist identically.
func normalizePrice(raw string) string {
	v := strings.TrimSpace(raw)
	intPart := v
	fracPart := ""
	if i := strings.IndexByte(v, '.'); i >= 0 {
		intPart, fracPart = v[:i], v[i+1:]
	}
	if trimmed := strings.TrimLeft(intPart, "0"); trimmed == "" {
		intPart = "0"
	} else {
		intPart = trimmed
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	return intPart + "." + fracPart
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
