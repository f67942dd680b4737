// Package memory implementa AccountRepository en memoria. Se usa en tests y con DB_DRIVER=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vetcare-api/internal/domain"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
	"github.com/jhoicas/vetcare-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo guarda cuentas en un map protegido por mutex.
// La verificación de CPF y la inserción ocurren bajo el mismo lock.
type AccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]entity.Account // por ID
	byCPF    map[string]string         // cpf -> ID
	order    []string                  // IDs en orden de creación
	now      func() time.Time
}

// NewAccountRepository construye un repositorio vacío.
func NewAccountRepository() *AccountRepo {
	return &AccountRepo{
		accounts: make(map[string]entity.Account),
		byCPF:    make(map[string]string),
		now:      time.Now,
	}
}

// Create asigna ID y CreatedAt y persiste; ErrDuplicate si el CPF ya existe.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byCPF[a.CPF]; ok {
		return domain.ErrDuplicate
	}
	a.ID = uuid.New().String()
	a.CreatedAt = r.now().UTC()
	r.accounts[a.ID] = *a
	r.byCPF[a.CPF] = a.ID
	r.order = append(r.order, a.ID)
	return nil
}

// FindByCPF busca por CPF normalizado.
func (r *AccountRepo) FindByCPF(ctx context.Context, cpf string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCPF[cpf]
	if !ok {
		return nil, nil
	}
	return r.get(id), nil
}

// FindByEmail devuelve la cuenta más antigua con ese email.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if r.accounts[id].Email == email {
			return r.get(id), nil
		}
	}
	return nil, nil
}

// FindByID busca por identificador.
func (r *AccountRepo) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.accounts[id]; !ok {
		return nil, nil
	}
	return r.get(id), nil
}

// Len cantidad de cuentas guardadas.
func (r *AccountRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

// get devuelve una copia; el llamador no puede mutar el estado interno.
func (r *AccountRepo) get(id string) *entity.Account {
	a := r.accounts[id]
	return &a
}
