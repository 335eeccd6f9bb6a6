package repository

import (
	"context"

	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

// CementInputRepository registra los ingresos de cemento a silos.
type CementInputRepository interface {
	Create(ctx context.Context, input *entity.CementInput) error
	ListBySilo(ctx context.Context, siloID string, limit, offset int) ([]*entity.CementInput, error)
}
