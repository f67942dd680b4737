package entity

import "time"

// RoleType es el tipo de perfil de la cuenta (atributo de perfil, no de autorización).
type RoleType string

// Tipos de perfil válidos.
const (
	RoleTypeTutor        RoleType = "Tutor"
	RoleTypeVeterinarian RoleType = "Veterinário"
)

// AccessRole es el rol de autorización. Nunca lo fija quien se registra por la vía pública.
type AccessRole string

// Roles de acceso válidos.
const (
	AccessRoleAdmin AccessRole = "admin"
	AccessRoleUser  AccessRole = "user"
)

// Valid indica si r es uno de los roles conocidos.
func (r AccessRole) Valid() bool {
	return r == AccessRoleAdmin || r == AccessRoleUser
}

// Account representa una cuenta de Tutor o Veterinário.
// Los campos opcionales son punteros: nil = ausente.
type Account struct {
	ID           string
	Name         string
	CPF          string // 000.000.000-00, único
	Type         RoleType
	Role         AccessRole
	Email        string
	Phone        string  // (00) 00000-0000
	Address      *string // solo Tutor
	PasswordHash string  // pbkdf2$salt$hash, nunca texto plano

	// Veterinário
	CRMV                  *string
	ClinicAddress         *string
	ProfessionalIDDocPath *string
	DiplomaDocPath        *string

	CreatedAt time.Time
}

// IsVeterinarian indica si la cuenta es de perfil Veterinário.
func (a *Account) IsVeterinarian() bool {
	return a.Type == RoleTypeVeterinarian
}
