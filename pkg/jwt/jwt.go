package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL vigencia absoluta de una sesión.
const DefaultTTL = 7 * 24 * time.Hour

// DevSecret se usa solo si JWT_SECRET no está configurado. Riesgo de despliegue: cmd/api lo advierte en el log.
const DevSecret = "dev-secret"

// ErrInvalidToken agrupa firma incorrecta, algoritmo inesperado, expiración o claims incompletos.
var ErrInvalidToken = errors.New("jwt: token inválido o expirado")

// Claims incluye los claims estándar JWT más el id de la cuenta y su rol de acceso.
// El rol viaja en el token para que el middleware RBAC no consulte la DB.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"id"`
	Role      string `json:"role"` // "admin" | "user"
}

// Issuer firma y verifica tokens de sesión HS256.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option ajusta un Issuer.
type Option func(*Issuer)

// WithTTL cambia la vigencia (por defecto 7 días). Solo lo usan los tests; la aplicación no lo expone.
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) { i.ttl = ttl }
}

// WithClock reemplaza el reloj; útil en tests de expiración.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer construye el emisor. Un secret vacío cae en DevSecret.
func NewIssuer(secret, issuer string, opts ...Option) *Issuer {
	if secret == "" {
		secret = DevSecret
	}
	i := &Issuer{secret: []byte(secret), issuer: issuer, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue genera un token firmado con accountID y role, expirando en now+ttl.
func (i *Issuer) Issue(accountID, role string) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("jwt: account id vacío")
	}
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		AccountID: accountID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify valida firma y expiración y devuelve los claims.
// Cualquier falla se reporta envolviendo ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return nil, fmt.Errorf("%w: claims inválidos", ErrInvalidToken)
	}
	return claims, nil
}
