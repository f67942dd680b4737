package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/vetcare-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testAccountID = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "vetcare-test"
)

func TestIssuer_IssueYVerify(t *testing.T) {
	iss := pkgjwt.NewIssuer(testSecret, testIssuer)
	tok, err := iss.Issue(testAccountID, "user")
	require.NoError(t, err)

	claims, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testAccountID, claims.AccountID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, testAccountID, claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestIssuer_ExpiraASieteDias(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	iss := pkgjwt.NewIssuer(testSecret, testIssuer, pkgjwt.WithClock(func() time.Time { return now }))
	tok, err := iss.Issue(testAccountID, "admin")
	require.NoError(t, err)

	claims, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())

	later := pkgjwt.NewIssuer(testSecret, testIssuer, pkgjwt.WithClock(func() time.Time {
		return now.Add(7*24*time.Hour + time.Minute)
	}))
	_, err = later.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "token expirado debe rechazarse")
}

func TestIssuer_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.NewIssuer(testSecret, testIssuer).Issue(testAccountID, "user")
	require.NoError(t, err)

	_, err = pkgjwt.NewIssuer("otro-secret-completamente-distinto", testIssuer).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestIssuer_TokenManipulado(t *testing.T) {
	iss := pkgjwt.NewIssuer(testSecret, testIssuer)
	tok, err := iss.Issue(testAccountID, "user")
	require.NoError(t, err)

	_, err = iss.Verify(tok[:len(tok)-2] + "xx")
	assert.Error(t, err)
	_, err = iss.Verify("token.invalido.aqui")
	assert.Error(t, err)
}

func TestIssuer_RechazaAlgNone(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		AccountID:        testAccountID,
		Role:             "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.NewIssuer(testSecret, testIssuer).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestIssuer_SinExpiracionRechazado(t *testing.T) {
	claims := pkgjwt.Claims{AccountID: testAccountID, Role: "admin"}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = pkgjwt.NewIssuer(testSecret, testIssuer).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestIssuer_SecretVacioUsaDev(t *testing.T) {
	tok, err := pkgjwt.NewIssuer("", testIssuer).Issue(testAccountID, "user")
	require.NoError(t, err)

	_, err = pkgjwt.NewIssuer(pkgjwt.DevSecret, testIssuer).Verify(tok)
	assert.NoError(t, err)
}

func TestIssuer_AccountIDVacio(t *testing.T) {
	_, err := pkgjwt.NewIssuer(testSecret, testIssuer).Issue("", "user")
	assert.Error(t, err)
}
