package dto

// ErrorResponse cuerpo de error HTTP. Errors solo aparece en errores de validación o duplicado.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
