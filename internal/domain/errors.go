package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas). Los adaptadores de persistencia
// devuelven estos sentinelas y los casos de uso los traducen a *Error.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrInvalidInput = errors.New("entrada inválida")
)

// Kind discrimina la categoría de un *Error para que la capa HTTP pueda mapearlo sin inspeccionar mensajes.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindDuplicate    Kind = "DUPLICATE"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindInternal     Kind = "INTERNAL"
)

// Error es el error estructurado que devuelven los casos de uso.
// Fields solo se llena en Validation y Duplicate (campo -> motivo).
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error // causa original; nunca se expone al cliente
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		return JoinFields(e.Fields)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidationError construye un error de validación con todos los campos inválidos.
func NewValidationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields, Err: ErrInvalidInput}
}

// NewDuplicateError construye un error de duplicado sobre un único campo.
func NewDuplicateError(field, reason string) *Error {
	return &Error{Kind: KindDuplicate, Fields: map[string]string{field: reason}, Err: ErrDuplicate}
}

// NewUnauthorizedError error genérico de autenticación: no distingue la causa.
func NewUnauthorizedError(cause error) *Error {
	if cause == nil {
		cause = ErrUnauthorized
	}
	return &Error{Kind: KindUnauthorized, Message: "credenciales inválidas", Err: cause}
}

// NewInternalError envuelve una falla inesperada (storage caído, etc.).
func NewInternalError(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "error interno", Err: cause}
}

// KindOf devuelve la categoría de err; cualquier error no tipado se considera interno.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// FieldsOf devuelve el mapa campo -> motivo de err, o nil.
func FieldsOf(err error) map[string]string {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

// JoinFields arma un mensaje legible "campo: motivo; campo: motivo" con orden estable.
func JoinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
