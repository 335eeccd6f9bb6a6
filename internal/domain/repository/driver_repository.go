package repository

import (
	"context"

	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

// DriverRepository define el puerto de persistencia para conductores.
type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	GetByID(ctx context.Context, id string) (*entity.Driver, error)
	Update(ctx context.Context, driver *entity.Driver) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Driver, error)
	Delete(ctx context.Context, id string) error
}
