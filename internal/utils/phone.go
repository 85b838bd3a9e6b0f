package utils

import (
	"strings"
	"unicode"
)

// stripPhoneSeparator drops any whitespace plus the separators people type in phone numbers.
func stripPhoneSeparator(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	switch r {
	case '-', '(', ')', '.':
		return -1
	}
	return r
}

// NormalizePhone converts Indonesian phone numbers to the international form the WhatsApp
// gateway expects: separators removed, "+62" and a leading "0" both become "62".
func NormalizePhone(phone string) string {
	p := strings.Map(stripPhoneSeparator, phone)
	switch {
	case strings.HasPrefix(p, "+62"):
		return "62" + p[3:]
	case strings.HasPrefix(p, "+"):
		return p[1:]
	case strings.HasPrefix(p, "0"):
		return "62" + p[1:]
	}
	return p
}

// IsValidPhone reports whether the normalized number looks like a dialable MSISDN.
func IsValidPhone(phone string) bool {
	p := NormalizePhone(phone)
	if len(p) < 9 || len(p) > 15 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
