// Package validation contiene los predicados sintácticos del registro de cuentas.
// Ninguna regla hace I/O; todas pueden evaluarse en cualquier orden.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/vetcare-api/internal/domain/entity"
	"github.com/jhoicas/vetcare-api/pkg/cpf"
)

// Claves de campo usadas en el mapa de errores (coinciden con el JSON de entrada).
const (
	FieldName              = "name"
	FieldCPF               = "cpf"
	FieldType              = "type"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldPassword          = "password"
	FieldCRMV              = "crmv"
	FieldProfessionalIDDoc = "professional_id_doc"
	FieldDiplomaDoc        = "diploma_doc"
)

const passwordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"

var (
	emailRe = regexp.MustCompile(`(?i)^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	phoneRe = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
)

// Errors acumula campo -> motivo.
type Errors map[string]string

// Add registra el motivo de un campo inválido.
func (e Errors) Add(field, reason string) {
	e[field] = reason
}

// Empty indica si no hubo errores.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// IsValidName nombre de 3 a 100 caracteres después de recortar espacios.
func IsValidName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 3 && n <= 100
}

// IsValidCPF exige exactamente 11 dígitos; no valida dígito verificador.
func IsValidCPF(s string) bool {
	return len(cpf.Digits(s)) == cpf.Len
}

// IsValidEmail longitud 10..256 y forma local@dominio.tld.
func IsValidEmail(email string) bool {
	t := strings.TrimSpace(email)
	n := utf8.RuneCountInString(t)
	if n < 10 || n > 256 {
		return false
	}
	return emailRe.MatchString(t)
}

// IsValidPhone formato (00) 00000-0000.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// IsValidPassword 8 a 12 caracteres con al menos una mayúscula, un número y un símbolo.
func IsValidPassword(pwd string) bool {
	n := utf8.RuneCountInString(pwd)
	if n < 8 || n > 12 {
		return false
	}
	var upper, digit, symbol bool
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && digit && symbol
}

// IsValidRoleType solo acepta los dos perfiles conocidos.
func IsValidRoleType(t string) bool {
	switch entity.RoleType(t) {
	case entity.RoleTypeTutor, entity.RoleTypeVeterinarian:
		return true
	}
	return false
}

// Input campos crudos que se validan en el registro. CPF ya debe venir normalizado.
type Input struct {
	Name                  string
	CPF                   string
	Type                  string
	Email                 string
	Phone                 string
	Password              string
	CRMV                  string
	ProfessionalIDDocPath string
	DiplomaDocPath        string
}

// Validate ejecuta todas las reglas y devuelve cada campo inválido; nunca corta en el primero.
func Validate(in Input) Errors {
	errs := Errors{}
	if !IsValidName(in.Name) {
		errs.Add(FieldName, "el nombre debe tener entre 3 y 100 caracteres")
	}
	if !IsValidCPF(in.CPF) {
		errs.Add(FieldCPF, "CPF inválido (use 000.000.000-00)")
	}
	if !IsValidRoleType(in.Type) {
		errs.Add(FieldType, "tipo inválido")
	}
	if !IsValidEmail(in.Email) {
		errs.Add(FieldEmail, "e-mail inválido (10 a 256 caracteres)")
	}
	if !IsValidPhone(in.Phone) {
		errs.Add(FieldPhone, "celular inválido (formato: (00) 00000-0000)")
	}
	if !IsValidPassword(in.Password) {
		errs.Add(FieldPassword, "contraseña inválida (8-12, con número, símbolo y mayúscula)")
	}

	if entity.RoleType(in.Type) == entity.RoleTypeVeterinarian {
		if strings.TrimSpace(in.CRMV) == "" {
			errs.Add(FieldCRMV, "CRMV es obligatorio")
		}
		if strings.TrimSpace(in.ProfessionalIDDocPath) == "" {
			errs.Add(FieldProfessionalIDDoc, "documento profesional es obligatorio")
		}
		if strings.TrimSpace(in.DiplomaDocPath) == "" {
			errs.Add(FieldDiplomaDoc, "diploma/certificado es obligatorio")
		}
	}
	return errs
}
