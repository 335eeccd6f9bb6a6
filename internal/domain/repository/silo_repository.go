package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

// SiloRepository define el puerto de persistencia para Silo.
// El stock solo cambia con AdjustStock/Fill, que se aplican relativos al valor persistido
// (nunca read-modify-write desde una copia en memoria).
type SiloRepository interface {
	Create(ctx context.Context, silo *entity.Silo) error
	GetByID(ctx context.Context, id string) (*entity.Silo, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Silo, error)
	// Update persiste nombre, capacidad, mínimo y estado. No toca current_stock.
	Update(ctx context.Context, silo *entity.Silo) error
	List(ctx context.Context) ([]*entity.Silo, error)
	Delete(ctx context.Context, id string) error
	// AdjustStock suma delta (firmado) al stock y devuelve el silo actualizado.
	// Devuelve domain.ErrNotFound si el silo no existe.
	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (*entity.Silo, error)
	// Fill suma amount solo si current_stock + amount <= capacity.
	// Devuelve domain.ErrCapacityExceeded si no cabe y domain.ErrNotFound si no existe.
	Fill(ctx context.Context, id string, amount decimal.Decimal) (*entity.Silo, error)
}
