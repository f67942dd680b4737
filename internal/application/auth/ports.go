package auth

import (
	"context"

	"github.com/jhoicas/vetcare-api/pkg/jwt"
)

// PasswordHasher deriva y verifica secretos almacenados. Lo implementa *password.Pool,
// que limita cuántas derivaciones corren en paralelo.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Compare(ctx context.Context, plain, stored string) (bool, error)
}

// TokenIssuer emite y verifica tokens de sesión. Lo implementa *jwt.Issuer.
type TokenIssuer interface {
	Issue(accountID, role string) (string, error)
	Verify(token string) (*jwt.Claims, error)
}

// Recorder registra métricas del flujo de autenticación. nil desactiva las métricas.
type Recorder interface {
	IncRegistration(roleType string)
	IncRegistrationRejected(kind string)
	IncLogin(success bool)
}

type nopRecorder struct{}

func (nopRecorder) IncRegistration(string)         {}
func (nopRecorder) IncRegistrationRejected(string) {}
func (nopRecorder) IncLogin(bool)                  {}
