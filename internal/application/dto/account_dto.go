package dto

import "time"

// RegisterRequest entrada del registro (JSON o multipart). La contraseña viaja en texto y se deriva en el use case.
// Role solo se respeta en la vía de confianza (admin); el registro público lo ignora.
type RegisterRequest struct {
	Name                  string `json:"name" form:"name"`
	CPF                   string `json:"cpf" form:"cpf"`
	Type                  string `json:"type" form:"type"` // "Tutor" | "Veterinário"
	Email                 string `json:"email" form:"email"`
	Phone                 string `json:"phone" form:"phone"`
	Address               string `json:"address" form:"address"`
	Password              string `json:"password" form:"password"`
	CRMV                  string `json:"crmv" form:"crmv"`
	ClinicAddress         string `json:"clinic_address" form:"clinic_address"`
	ProfessionalIDDocPath string `json:"professional_id_doc_path" form:"professional_id_doc_path"`
	DiplomaDocPath        string `json:"diploma_doc_path" form:"diploma_doc_path"`
	Role                  string `json:"role" form:"role"`
}

// AccountResponse salida de una cuenta (sin password_hash).
type AccountResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	CPF                   string    `json:"cpf"`
	Type                  string    `json:"type"`
	Role                  string    `json:"role"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	Address               *string   `json:"address"`
	CRMV                  *string   `json:"crmv"`
	ClinicAddress         *string   `json:"clinic_address"`
	ProfessionalIDDocPath *string   `json:"professional_id_doc_path"`
	DiplomaDocPath        *string   `json:"diploma_doc_path"`
	CreatedAt             time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse salida de registro y login: cuenta + token de sesión.
type AuthResponse struct {
	User  AccountResponse `json:"user"`
	Token string          `json:"token"`
}

// MeResponse salida de GET /api/auth/me.
type MeResponse struct {
	User AccountResponse `json:"user"`
}
