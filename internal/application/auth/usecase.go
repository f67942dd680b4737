package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/vetcare-api/internal/application/dto"
	"github.com/jhoicas/vetcare-api/internal/domain"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
	"github.com/jhoicas/vetcare-api/internal/domain/repository"
	"github.com/jhoicas/vetcare-api/internal/domain/validation"
	"github.com/jhoicas/vetcare-api/pkg/cpf"
	"github.com/jhoicas/vetcare-api/pkg/password"
)

// AuthUseCase casos de uso de autenticación: registro, login y resolución de sesión.
type AuthUseCase struct {
	repo    repository.AccountRepository
	hasher  PasswordHasher
	tokens  TokenIssuer
	log     zerolog.Logger
	metrics Recorder

	// dummyHash se compara cuando el email no existe para que el tiempo de respuesta no lo delate.
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth. rec puede ser nil.
func NewAuthUseCase(repo repository.AccountRepository, hasher PasswordHasher, tokens TokenIssuer, log zerolog.Logger, rec Recorder) *AuthUseCase {
	if rec == nil {
		rec = nopRecorder{}
	}
	dummy, _ := password.Derive("dummy-Passw0rd!")
	return &AuthUseCase{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		log:       log.With().Str("component", "auth").Logger(),
		metrics:   rec,
		dummyHash: dummy,
	}
}

// Register registro público: el rol de acceso siempre es "user", se ignora lo que envíe el cliente.
// Devuelve la cuenta creada (sin secreto) y un token de sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	account, err := uc.createAccount(ctx, in, entity.AccessRoleUser)
	if err != nil {
		return nil, err
	}
	token, err := uc.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		uc.log.Error().Err(err).Str("account_id", account.ID).Msg("emitir token tras registro")
		return nil, domain.NewInternalError(err)
	}
	return &dto.AuthResponse{User: *toAccountResponse(account), Token: token}, nil
}

// RegisterTrusted vía interna de confianza (administración): puede crear cuentas admin.
// Un rol vacío se trata como "user".
func (uc *AuthUseCase) RegisterTrusted(ctx context.Context, in dto.RegisterRequest, role entity.AccessRole) (*dto.AccountResponse, error) {
	if role == "" {
		role = entity.AccessRoleUser
	}
	if !role.Valid() {
		return nil, domain.NewValidationError(map[string]string{"role": "rol inválido"})
	}
	account, err := uc.createAccount(ctx, in, role)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// createAccount normaliza, valida todo, verifica unicidad, deriva el secreto y persiste.
// Hace exactamente una lectura (FindByCPF) y, si todo va bien, una escritura.
func (uc *AuthUseCase) createAccount(ctx context.Context, in dto.RegisterRequest, role entity.AccessRole) (*entity.Account, error) {
	normalizedCPF := cpf.Normalize(in.CPF)

	errs := validation.Validate(validation.Input{
		Name:                  in.Name,
		CPF:                   normalizedCPF,
		Type:                  in.Type,
		Email:                 in.Email,
		Phone:                 in.Phone,
		Password:              in.Password,
		CRMV:                  in.CRMV,
		ProfessionalIDDocPath: in.ProfessionalIDDocPath,
		DiplomaDocPath:        in.DiplomaDocPath,
	})
	if !errs.Empty() {
		uc.metrics.IncRegistrationRejected(string(domain.KindValidation))
		uc.log.Info().Strs("fields", fieldNames(errs)).Msg("registro rechazado por validación")
		return nil, domain.NewValidationError(errs)
	}

	existing, err := uc.repo.FindByCPF(ctx, normalizedCPF)
	if err != nil {
		return nil, uc.internal(fmt.Errorf("buscar cuenta por cpf: %w", err))
	}
	if existing != nil {
		return nil, uc.duplicate()
	}

	hash, err := uc.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, uc.internal(fmt.Errorf("derivar contraseña: %w", err))
	}

	account := buildAccount(in, normalizedCPF, hash, role)
	if err := uc.repo.Create(ctx, account); err != nil {
		// Dos registros concurrentes pueden pasar la verificación previa; el repositorio decide.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, uc.duplicate()
		}
		return nil, uc.internal(fmt.Errorf("crear cuenta: %w", err))
	}

	uc.metrics.IncRegistration(string(account.Type))
	uc.log.Info().
		Str("account_id", account.ID).
		Str("type", string(account.Type)).
		Str("role", string(account.Role)).
		Msg("cuenta registrada")
	return account, nil
}

// Login verifica email/password y emite token. Email inexistente y contraseña incorrecta
// producen el mismo error genérico.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := uc.repo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, uc.internal(fmt.Errorf("buscar cuenta por email: %w", err))
	}

	stored := uc.dummyHash
	if account != nil {
		stored = account.PasswordHash
	}
	ok, err := uc.hasher.Compare(ctx, in.Password, stored)
	if err != nil {
		return nil, uc.internal(fmt.Errorf("verificar contraseña: %w", err))
	}
	if account == nil || !ok {
		uc.metrics.IncLogin(false)
		return nil, domain.NewUnauthorizedError(domain.ErrUnauthorized)
	}

	token, err := uc.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		return nil, uc.internal(fmt.Errorf("emitir token: %w", err))
	}
	uc.metrics.IncLogin(true)
	return &dto.AuthResponse{User: *toAccountResponse(account), Token: token}, nil
}

// ResolveSession verifica el token y recupera la cuenta asociada.
// Firma inválida, expiración o cuenta inexistente se reportan como no autorizado.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, token string) (*dto.AccountResponse, error) {
	claims, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, domain.NewUnauthorizedError(err)
	}
	account, err := uc.repo.FindByID(ctx, claims.AccountID)
	if err != nil {
		uc.log.Error().Err(err).Str("account_id", claims.AccountID).Msg("buscar cuenta de la sesión")
		return nil, domain.NewUnauthorizedError(err)
	}
	if account == nil {
		return nil, domain.NewUnauthorizedError(domain.ErrNotFound)
	}
	return toAccountResponse(account), nil
}

func (uc *AuthUseCase) duplicate() error {
	uc.metrics.IncRegistrationRejected(string(domain.KindDuplicate))
	return domain.NewDuplicateError(validation.FieldCPF, "CPF ya registrado")
}

func (uc *AuthUseCase) internal(err error) error {
	uc.log.Error().Err(err).Msg("falla interna en auth")
	return domain.NewInternalError(err)
}

// buildAccount arma el registro aplicando las reglas por tipo de perfil:
// Tutor nunca guarda datos de veterinario; Veterinário nunca guarda dirección postal.
func buildAccount(in dto.RegisterRequest, normalizedCPF, hash string, role entity.AccessRole) *entity.Account {
	a := &entity.Account{
		Name:         strings.TrimSpace(in.Name),
		CPF:          normalizedCPF,
		Type:         entity.RoleType(in.Type),
		Role:         role,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
	}
	switch a.Type {
	case entity.RoleTypeTutor:
		a.Address = optional(in.Address)
	case entity.RoleTypeVeterinarian:
		a.CRMV = optional(in.CRMV)
		a.ClinicAddress = optional(in.ClinicAddress)
		a.ProfessionalIDDocPath = optional(in.ProfessionalIDDocPath)
		a.DiplomaDocPath = optional(in.DiplomaDocPath)
	}
	return a
}

func optional(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func fieldNames(errs validation.Errors) []string {
	names := make([]string, 0, len(errs))
	for k := range errs {
		names = append(names, k)
	}
	return names
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:                    a.ID,
		Name:                  a.Name,
		CPF:                   a.CPF,
		Type:                  string(a.Type),
		Role:                  string(a.Role),
		Email:                 a.Email,
		Phone:                 a.Phone,
		Address:               a.Address,
		CRMV:                  a.CRMV,
		ClinicAddress:         a.ClinicAddress,
		ProfessionalIDDocPath: a.ProfessionalIDDocPath,
		DiplomaDocPath:        a.DiplomaDocPath,
		CreatedAt:             a.CreatedAt,
	}
}
