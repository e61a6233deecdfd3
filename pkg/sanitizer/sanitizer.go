// Package sanitizer normalizes user input before it is validated or sent on.
//
// Transforms are plain func(string) string values and compose with Apply:
//
//	name := sanitizer.Apply(form.Name, sanitizer.SingleLine, sanitizer.MaxRunes(100))
package sanitizer

import (
	"strings"
	"unicode"
)

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose returns a reusable pipeline of transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

func Trim(s string) string { return strings.TrimSpace(s) }

// RemoveControlChars drops control characters except whitespace, which
// SingleLine handles.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SingleLine collapses every run of whitespace, line breaks included, into a
// single space and trims the ends.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(RemoveControlChars(s)), " ")
}

// MaxRunes returns a transform that cuts s to at most n runes.
func MaxRunes(n int) func(string) string {
	return func(s string) string {
		if n < 0 {
			return s
		}
		i := 0
		for pos := range s {
			if i == n {
				return s[:pos]
			}
			i++
		}
		return s
	}
}

// NormalizeEmail trims the address and lower-cases its domain. The local
// part is kept as typed since mail servers may treat it case-sensitively.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
