package cpf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vetcare-api/pkg/cpf"
)

func TestNormalize_AplicaMascara(t *testing.T) {
	cases := map[string]string{
		"12345678901":      "123.456.789-01",
		"123.456.789-01":   "123.456.789-01",
		"123 456 789 01":   "123.456.789-01",
		" 123-456.789/01 ": "123.456.789-01",
	}
	for in, want := range cases {
		assert.Equal(t, want, cpf.Normalize(in), "entrada %q", in)
	}
}

func TestNormalize_Idempotente(t *testing.T) {
	once := cpf.Normalize("98765432100")
	assert.Equal(t, once, cpf.Normalize(once))
}

func TestNormalize_CantidadIncorrectaNoSeTrunca(t *testing.T) {
	assert.Equal(t, "123456789012", cpf.Normalize("123.456.789-012"))
	assert.Equal(t, "1234", cpf.Normalize("12-34"))
	assert.Equal(t, "", cpf.Normalize("abc"))
}

func TestDigits_IgnoraDigitosNoASCII(t *testing.T) {
	assert.Equal(t, "12", cpf.Digits("1٣2"))
}
