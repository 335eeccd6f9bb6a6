package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/inventory"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

// SiloFillUseCase registra ingresos de cemento (llenado de silo). Todo o nada: si la cantidad no
// cabe en la capacidad disponible no se modifica el stock.
type SiloFillUseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	log      *logger.Logger
	now      func() time.Time
}

// NewSiloFillUseCase construye el caso de uso.
func NewSiloFillUseCase(txRunner TxRunner, repos repository.Repos, log *logger.Logger) *SiloFillUseCase {
	return &SiloFillUseCase{txRunner: txRunner, repos: repos, log: log.Named("silo_fill"), now: time.Now}
}

// Fill suma in.Amount al stock del silo y registra el ingreso.
//
// Errores: domain.ErrInvalidAmount (amount <= 0 o más de dos decimales), domain.ErrCapacityExceeded, domain.ErrNotFound.
func (uc *SiloFillUseCase) Fill(ctx context.Context, siloID string, in dto.FillSiloRequest) (*dto.FillSiloResponse, error) {
	if !in.Amount.IsPositive() || !inventory.ValidScale(in.Amount) {
		return nil, domain.ErrInvalidAmount
	}
	now := uc.now()
	input := &entity.CementInput{
		ID:            uuid.New().String(),
		SiloID:        siloID,
		Quantity:      in.Amount,
		Supplier:      strings.TrimSpace(in.Supplier),
		ReceiptNumber: strings.TrimSpace(in.ReceiptNumber),
		InputDate:     now,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
	}

	var out dto.FillSiloResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		silo, err := repos.Silos.GetForUpdate(ctx, siloID)
		if err != nil {
			return err
		}
		if silo == nil {
			return domain.ErrNotFound
		}
		if err := inventory.CheckFill(silo, in.Amount); err != nil {
			uc.log.Warn().
				Str("silo_id", siloID).
				Str("amount", in.Amount.String()).
				Str("current_stock", silo.CurrentStock.String()).
				Str("capacity", silo.Capacity.String()).
				Err(err).
				Msg("llenado rechazado")
			return err
		}
		updated, err := repos.Silos.Fill(ctx, siloID, in.Amount)
		if err != nil {
			return err
		}
		if err := repos.CementInputs.Create(ctx, input); err != nil {
			return err
		}
		uc.log.Info().
			Str("silo_id", siloID).
			Str("amount", in.Amount.String()).
			Str("current_stock", updated.CurrentStock.String()).
			Msg("silo llenado")
		out = dto.FillSiloResponse{
			Silo:  dto.NewSiloResponse(updated),
			Input: dto.NewCementInputResponse(input),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInputs lista los ingresos de cemento de un silo (más recientes primero).
func (uc *SiloFillUseCase) ListInputs(ctx context.Context, siloID string, limit, offset int) ([]dto.CementInputResponse, error) {
	silo, err := uc.repos.Silos.GetByID(ctx, siloID)
	if err != nil {
		return nil, err
	}
	if silo == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.CementInputs.ListBySilo(ctx, siloID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CementInputResponse, 0, len(list))
	for _, in := range list {
		items = append(items, dto.NewCementInputResponse(in))
	}
	return items, nil
}
