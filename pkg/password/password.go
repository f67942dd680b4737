// Package password deriva y verifica el secreto almacenado de una contraseña.
//
// Formato: pbkdf2$<salt-hex>$<hash-hex>, con PBKDF2-SHA512, 10000 iteraciones y 64 bytes de salida.
// El salt en hex se usa tal cual como bytes de salt, igual que los hashes ya persistidos.
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Method etiqueta del algoritmo en el secreto almacenado.
	Method     = "pbkdf2"
	Iterations = 10000
	KeyLength  = 64
	SaltLength = 16
)

// Derive genera un salt aleatorio nuevo y devuelve el secreto codificado.
func Derive(plain string) (string, error) {
	raw := make([]byte, SaltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("password: generar salt: %w", err)
	}
	salt := hex.EncodeToString(raw)
	key := pbkdf2.Key([]byte(plain), []byte(salt), Iterations, KeyLength, sha512.New)
	return Method + "$" + salt + "$" + hex.EncodeToString(key), nil
}

// Verify recalcula la derivación con el salt embebido y compara en tiempo constante.
// Cualquier formato inválido (incluido un salt o hash de largo distinto) devuelve false; nunca entra en pánico.
func Verify(plain, stored string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != Method || len(parts[1]) != 2*SaltLength {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != KeyLength {
		return false
	}
	got := pbkdf2.Key([]byte(plain), []byte(parts[1]), Iterations, KeyLength, sha512.New)
	return subtle.ConstantTimeCompare(want, got) == 1
}
