package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/vetcare-api/internal/domain"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
	"github.com/jhoicas/vetcare-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const selectAccount = `
	SELECT id, name, cpf, type, role, email, phone, address, password_hash,
	       crmv, clinic_address, professional_id_doc_path, diploma_doc_path, created_at
	FROM accounts`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create persiste una nueva cuenta. accounts_cpf_key es la garantía final de unicidad.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	id := uuid.New().String()
	createdAt := time.Now().UTC()
	query := `
		INSERT INTO accounts (id, name, cpf, type, role, email, phone, address, password_hash,
			crmv, clinic_address, professional_id_doc_path, diploma_doc_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.pool.Exec(ctx, query,
		id, a.Name, a.CPF, string(a.Type), string(a.Role), a.Email, a.Phone, a.Address, a.PasswordHash,
		a.CRMV, a.ClinicAddress, a.ProfessionalIDDocPath, a.DiplomaDocPath, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	a.ID = id
	a.CreatedAt = createdAt
	return nil
}

// FindByCPF obtiene una cuenta por CPF normalizado.
func (r *AccountRepo) FindByCPF(ctx context.Context, cpf string) (*entity.Account, error) {
	return r.findOne(ctx, "get account by cpf", selectAccount+` WHERE cpf = $1`, cpf)
}

// FindByEmail obtiene la cuenta más antigua con ese email (el email no es único).
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, "get account by email", selectAccount+` WHERE email = $1 ORDER BY created_at ASC LIMIT 1`, email)
}

// FindByID obtiene una cuenta por ID. Un ID que no es UUID se trata como inexistente.
func (r *AccountRepo) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "get account by id", selectAccount+` WHERE id = $1`, id)
}

func (r *AccountRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Account, error) {
	var (
		a         entity.Account
		id        uuid.UUID
		typ, role string
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&id, &a.Name, &a.CPF, &typ, &role, &a.Email, &a.Phone, &a.Address, &a.PasswordHash,
		&a.CRMV, &a.ClinicAddress, &a.ProfessionalIDDocPath, &a.DiplomaDocPath, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.ID = id.String()
	a.Type = entity.RoleType(typ)
	a.Role = entity.AccessRole(role)
	return &a, nil
}
