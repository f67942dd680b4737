package repository

import (
	"context"

	"github.com/jhoicas/vetcare-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los Find* devuelven (nil, nil) cuando no existe la cuenta.
type AccountRepository interface {
	FindByCPF(ctx context.Context, cpf string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	// Create asigna ID y CreatedAt. La unicidad del CPF se aplica aquí de forma autoritativa:
	// si ya existe devuelve domain.ErrDuplicate aunque el caso de uso haya hecho la verificación previa.
	Create(ctx context.Context, account *entity.Account) error
}
