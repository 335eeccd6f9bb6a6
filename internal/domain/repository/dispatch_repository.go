package repository

import (
	"context"
	"time"

	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

// DispatchRepository define el puerto de persistencia para despachos.
type DispatchRepository interface {
	Create(ctx context.Context, dispatch *entity.Dispatch) error
	GetByID(ctx context.Context, id string) (*entity.Dispatch, error)
	Update(ctx context.Context, dispatch *entity.Dispatch) error
	// Delete elimina la fila; devuelve domain.ErrNotFound si ya no existe.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter entity.DispatchFilter) ([]*entity.Dispatch, int, error)
	// DailyTotals agrupa la cantidad despachada por día en [from, to).
	DailyTotals(ctx context.Context, from, to time.Time) ([]entity.DailyTotal, error)
	// NextNumber devuelve el siguiente correlativo de despacho.
	NextNumber(ctx context.Context) (string, error)
}
