// internal/store/cpf.go
package store

import "strings"

// DigitsOnly strips everything but digits from a CPF, so formatted
// ("123.456.789-00") and raw ("12345678900") keys compare equal.
func DigitsOnly(cpf string) string {
	var b strings.Builder
	b.Grow(len(cpf))
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
