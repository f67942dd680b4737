// Package cpf normaliza el número de CPF (Cadastro de Pessoas Físicas).
// Solo se verifica la cantidad de dígitos; no se calcula el dígito verificador.
package cpf

import (
	"strings"
	"unicode"
)

// Len cantidad de dígitos de un CPF.
const Len = 11

// Digits devuelve únicamente los dígitos ASCII de s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize quita todo carácter no numérico y reaplica la máscara 000.000.000-00.
// Acepta "12345678901", "123.456.789-01" o cualquier puntuación intermedia.
// Si no quedan exactamente 11 dígitos devuelve solo los dígitos, sin máscara,
// para que la validación posterior lo rechace en lugar de truncarlo.
func Normalize(s string) string {
	d := Digits(s)
	if len(d) != Len {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}
