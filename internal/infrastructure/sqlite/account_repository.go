package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vetcare-api/internal/domain"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
	"github.com/jhoicas/vetcare-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const selectAccount = `
	SELECT id, name, cpf, type, role, email, phone, address, password_hash,
	       crmv, clinic_address, professional_id_doc_path, diploma_doc_path, created_at
	FROM accounts`

// AccountRepo implementación del puerto AccountRepository sobre SQLite.
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create persiste una nueva cuenta. El UNIQUE de cpf es la garantía final de unicidad.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	id := uuid.New().String()
	createdAt := time.Now().UTC()
	query := `
		INSERT INTO accounts (id, name, cpf, type, role, email, phone, address, password_hash,
			crmv, clinic_address, professional_id_doc_path, diploma_doc_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
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
	return r.findOne(ctx, selectAccount+` WHERE cpf = ?`, cpf)
}

// FindByEmail obtiene la cuenta más antigua con ese email.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE email = ? ORDER BY created_at ASC LIMIT 1`, email)
}

// FindByID obtiene una cuenta por ID.
func (r *AccountRepo) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE id = ?`, id)
}

func (r *AccountRepo) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var (
		a         entity.Account
		typ, role string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Name, &a.CPF, &typ, &role, &a.Email, &a.Phone, &a.Address, &a.PasswordHash,
		&a.CRMV, &a.ClinicAddress, &a.ProfessionalIDDocPath, &a.DiplomaDocPath, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	a.Type = entity.RoleType(typ)
	a.Role = entity.AccessRole(role)
	return &a, nil
}
