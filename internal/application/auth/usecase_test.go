package auth_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vetcare-api/internal/application/auth"
	"github.com/jhoicas/vetcare-api/internal/application/dto"
	"github.com/jhoicas/vetcare-api/internal/domain"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
	"github.com/jhoicas/vetcare-api/internal/infrastructure/memory"
	"github.com/jhoicas/vetcare-api/pkg/jwt"
	"github.com/jhoicas/vetcare-api/pkg/password"
)

// countingRepo envuelve el repositorio en memoria y cuenta lecturas/escrituras.
// hideOnFind simula otro registro que ganó la carrera entre la verificación y la escritura.
type countingRepo struct {
	*memory.AccountRepo
	reads, writes atomic.Int32
	hideOnFind    bool
	createErr     error
}

func (r *countingRepo) FindByCPF(ctx context.Context, cpf string) (*entity.Account, error) {
	r.reads.Add(1)
	if r.hideOnFind {
		return nil, nil
	}
	return r.AccountRepo.FindByCPF(ctx, cpf)
}

func (r *countingRepo) Create(ctx context.Context, a *entity.Account) error {
	r.writes.Add(1)
	if r.createErr != nil {
		return r.createErr
	}
	return r.AccountRepo.Create(ctx, a)
}

type fakeRecorder struct {
	mu         sync.Mutex
	registered map[string]int
	rejected   map[string]int
	logins     map[bool]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{registered: map[string]int{}, rejected: map[string]int{}, logins: map[bool]int{}}
}

func (f *fakeRecorder) IncRegistration(t string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered[t]++
}

func (f *fakeRecorder) IncRegistrationRejected(k string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected[k]++
}

func (f *fakeRecorder) IncLogin(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins[ok]++
}

const testSecret = "usecase-test-secret"

func newUseCase(t *testing.T, repo *countingRepo, rec auth.Recorder) (*auth.AuthUseCase, *jwt.Issuer) {
	t.Helper()
	issuer := jwt.NewIssuer(testSecret, "vetcare-test", jwt.WithTTL(time.Hour))
	return auth.NewAuthUseCase(repo, password.NewPool(2), issuer, zerolog.Nop(), rec), issuer
}

func newRepo() *countingRepo {
	return &countingRepo{AccountRepo: memory.NewAccountRepository()}
}

func tutorRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:     "Maria Silva",
		CPF:      "12345678901",
		Type:     "Tutor",
		Email:    "maria@example.com",
		Phone:    "(11) 91234-5678",
		Password: "Abcd12#4",
		Address:  "Rua das Flores, 10",
	}
}

func vetRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:                  "Dr. Paulo",
		CPF:                   "987.654.321-00",
		Type:                  "Veterinário",
		Email:                 "paulo@example.com",
		Phone:                 "(21) 99876-5432",
		Password:              "Vet#2024A",
		CRMV:                  "RJ-4321",
		ClinicAddress:         "Av. Central, 100",
		ProfessionalIDDocPath: "/uploads/id.pdf",
		DiplomaDocPath:        "/uploads/diploma.pdf",
		Address:               "no se guarda",
	}
}

func TestRegister_TutorValido(t *testing.T) {
	repo := newRepo()
	rec := newFakeRecorder()
	uc, issuer := newUseCase(t, repo, rec)

	in := tutorRequest()
	in.Role = "admin"
	in.CRMV = "SP-1"
	out, err := uc.Register(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "123.456.789-01", out.User.CPF)
	assert.Equal(t, "user", out.User.Role)
	assert.Nil(t, out.User.CRMV, "Tutor nunca guarda datos de veterinario")
	assert.NotEmpty(t, out.User.ID)
	assert.False(t, out.User.CreatedAt.IsZero())

	claims, err := issuer.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.AccountID)
	assert.Equal(t, "user", claims.Role)

	assert.EqualValues(t, 1, repo.reads.Load())
	assert.EqualValues(t, 1, repo.writes.Load())
	assert.Equal(t, 1, rec.registered["Tutor"])

	stored, err := repo.AccountRepo.FindByCPF(context.Background(), "123.456.789-01")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, in.Password, stored.PasswordHash)
	assert.True(t, password.Verify(in.Password, stored.PasswordHash))
}

func TestRegister_Veterinario_DescartaDireccion(t *testing.T) {
	repo := newRepo()
	uc, _ := newUseCase(t, repo, nil)

	out, err := uc.Register(context.Background(), vetRequest())
	require.NoError(t, err)

	assert.Equal(t, "Veterinário", out.User.Type)
	assert.Nil(t, out.User.Address)
	require.NotNil(t, out.User.CRMV)
	assert.Equal(t, "RJ-4321", *out.User.CRMV)
	require.NotNil(t, out.User.ClinicAddress)
	require.NotNil(t, out.User.DiplomaDocPath)
	assert.Equal(t, "/uploads/diploma.pdf", *out.User.DiplomaDocPath)
}

func TestRegister_Veterinario_SinClinica(t *testing.T) {
	uc, _ := newUseCase(t, newRepo(), nil)
	in := vetRequest()
	in.ClinicAddress = "   "

	out, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, out.User.ClinicAddress)
}

func TestRegister_ValidacionSinEfectos(t *testing.T) {
	repo := newRepo()
	rec := newFakeRecorder()
	uc, _ := newUseCase(t, repo, rec)

	in := vetRequest()
	in.Name = "Jo"
	in.DiplomaDocPath = ""
	_, err := uc.Register(context.Background(), in)
	require.Error(t, err)

	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	fields := domain.FieldsOf(err)
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "diploma_doc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.EqualValues(t, 0, repo.reads.Load(), "la validación falla antes de consultar el repositorio")
	assert.EqualValues(t, 0, repo.writes.Load())
	assert.Equal(t, 1, rec.rejected["VALIDATION"])
}

func TestRegister_CPFDuplicado(t *testing.T) {
	repo := newRepo()
	rec := newFakeRecorder()
	uc, _ := newUseCase(t, repo, rec)

	_, err := uc.Register(context.Background(), tutorRequest())
	require.NoError(t, err)

	again := tutorRequest()
	again.CPF = "123.456.789-01"
	again.Email = "otra@example.com"
	_, err = uc.Register(context.Background(), again)
	require.Error(t, err)

	assert.Equal(t, domain.KindDuplicate, domain.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, domain.FieldsOf(err), "cpf")
	assert.Equal(t, 1, repo.Len())
	assert.EqualValues(t, 1, repo.writes.Load(), "el duplicado detectado en la verificación previa no escribe")
	assert.Equal(t, 1, rec.rejected["DUPLICATE"])
}

func TestRegister_DuplicadoDetectadoPorRepositorio(t *testing.T) {
	repo := newRepo()
	uc, _ := newUseCase(t, repo, nil)

	_, err := uc.Register(context.Background(), tutorRequest())
	require.NoError(t, err)
	pre := domain.FieldsOf(mustDuplicate(t, uc))

	// La verificación previa no ve la cuenta; solo la restricción del repositorio la detecta.
	repo.hideOnFind = true
	_, err = uc.Register(context.Background(), tutorRequest())
	require.Error(t, err)

	assert.Equal(t, domain.KindDuplicate, domain.KindOf(err))
	assert.Equal(t, pre, domain.FieldsOf(err), "ambas rutas producen el mismo error")
	assert.Equal(t, 1, repo.Len())
}

func mustDuplicate(t *testing.T, uc *auth.AuthUseCase) error {
	t.Helper()
	_, err := uc.Register(context.Background(), tutorRequest())
	require.Error(t, err)
	return err
}

func TestRegister_Concurrente_UnSoloGanador(t *testing.T) {
	repo := newRepo()
	uc, _ := newUseCase(t, repo, nil)

	const n = 8
	var (
		wg      sync.WaitGroup
		okCount atomic.Int32
		dupes   atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Register(context.Background(), tutorRequest())
			switch {
			case err == nil:
				okCount.Add(1)
			case domain.KindOf(err) == domain.KindDuplicate:
				dupes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, okCount.Load())
	assert.EqualValues(t, n-1, dupes.Load())
	assert.Equal(t, 1, repo.Len())
}

func TestRegister_FallaDeAlmacenamiento_EsInterna(t *testing.T) {
	repo := newRepo()
	repo.createErr = errors.New("disco lleno")
	uc, _ := newUseCase(t, repo, nil)

	_, err := uc.Register(context.Background(), tutorRequest())
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.NotContains(t, err.Error(), "disco lleno")
}

func TestRegisterTrusted_Roles(t *testing.T) {
	uc, _ := newUseCase(t, newRepo(), nil)

	out, err := uc.RegisterTrusted(context.Background(), tutorRequest(), entity.AccessRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)

	in := vetRequest()
	out, err = uc.RegisterTrusted(context.Background(), in, "")
	require.NoError(t, err)
	assert.Equal(t, "user", out.Role)

	in.CPF = "000.000.000-01"
	_, err = uc.RegisterTrusted(context.Background(), in, entity.AccessRole("root"))
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, domain.FieldsOf(err), "role")
}

func TestLogin(t *testing.T) {
	repo := newRepo()
	rec := newFakeRecorder()
	uc, issuer := newUseCase(t, repo, rec)
	ctx := context.Background()

	reg, err := uc.Register(ctx, tutorRequest())
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: " maria@example.com ", Password: "Abcd12#4"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, out.User.ID)
	claims, err := issuer.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.AccountID)

	_, errPwd := uc.Login(ctx, dto.LoginRequest{Email: "maria@example.com", Password: "Otra12#4"})
	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "Abcd12#4"})
	require.Error(t, errPwd)
	require.Error(t, errUnknown)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(errPwd))
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(errUnknown))
	assert.Equal(t, errPwd.Error(), errUnknown.Error())

	assert.Equal(t, 1, rec.logins[true])
	assert.Equal(t, 2, rec.logins[false])
}

func TestResolveSession(t *testing.T) {
	repo := newRepo()
	uc, _ := newUseCase(t, repo, nil)
	ctx := context.Background()

	reg, err := uc.Register(ctx, tutorRequest())
	require.NoError(t, err)

	acc, err := uc.ResolveSession(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, acc.ID)

	_, err = uc.ResolveSession(ctx, "no-es-un-token")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	other := jwt.NewIssuer("otro-secreto", "vetcare-test")
	forged, err := other.Issue(reg.User.ID, "admin")
	require.NoError(t, err)
	_, err = uc.ResolveSession(ctx, forged)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	expired, err := jwt.NewIssuer(testSecret, "vetcare-test", jwt.WithTTL(-time.Minute)).Issue(reg.User.ID, "user")
	require.NoError(t, err)
	_, err = uc.ResolveSession(ctx, expired)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	ghost, err := jwt.NewIssuer(testSecret, "vetcare-test").Issue("id-inexistente", "user")
	require.NoError(t, err)
	_, err = uc.ResolveSession(ctx, ghost)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
