package usecase

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
)

// SiloUseCase casos de uso CRUD para silos. El stock solo cambia vía despachos y llenados.
type SiloUseCase struct {
	silos      repository.SiloRepository
	dispatches repository.DispatchRepository
}

// NewSiloUseCase construye el caso de uso.
func NewSiloUseCase(silos repository.SiloRepository, dispatches repository.DispatchRepository) *SiloUseCase {
	return &SiloUseCase{silos: silos, dispatches: dispatches}
}

// Create registra un silo con su stock inicial (0 <= stock <= capacidad).
func (uc *SiloUseCase) Create(ctx context.Context, in dto.CreateSiloRequest) (*dto.SiloResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.Capacity.IsPositive() || in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !inventory.ValidScale(in.Capacity) || !inventory.ValidScale(in.CurrentStock) || !inventory.ValidScale(in.MinStock) {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.GreaterThan(in.Capacity) {
		return nil, domain.ErrCapacityExceeded
	}
	status := in.Status
	if status == "" {
		status = entity.SiloStatusActive
	}
	if !entity.ValidSiloStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	silo := &entity.Silo{
		ID:           uuid.New().String(),
		Name:         name,
		Capacity:     in.Capacity,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.silos.Create(ctx, silo); err != nil {
		return nil, err
	}
	out := dto.NewSiloResponse(silo)
	return &out, nil
}

// GetByID obtiene un silo por ID. Devuelve (nil, nil) si no existe.
func (uc *SiloUseCase) GetByID(ctx context.Context, id string) (*dto.SiloResponse, error) {
	silo, err := uc.silos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if silo == nil {
		return nil, nil
	}
	out := dto.NewSiloResponse(silo)
	return &out, nil
}

// Update modifica nombre, capacidad, mínimo o estado. La capacidad no puede quedar por debajo
// del stock actual. Devuelve (nil, nil) si no existe.
func (uc *SiloUseCase) Update(ctx context.Context, id string, in dto.UpdateSiloRequest) (*dto.SiloResponse, error) {
	silo, err := uc.silos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if silo == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		silo.Name = name
	}
	if in.Capacity != nil {
		if !in.Capacity.IsPositive() || !inventory.ValidScale(*in.Capacity) {
			return nil, domain.ErrInvalidInput
		}
		if in.Capacity.LessThan(silo.CurrentStock) {
			return nil, domain.ErrCapacityExceeded
		}
		silo.Capacity = *in.Capacity
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() || !inventory.ValidScale(*in.MinStock) {
			return nil, domain.ErrInvalidInput
		}
		silo.MinStock = *in.MinStock
	}
	if in.Status != nil {
		if !entity.ValidSiloStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		silo.Status = *in.Status
	}
	silo.UpdatedAt = time.Now()
	if err := uc.silos.Update(ctx, silo); err != nil {
		return nil, err
	}
	// Releer: Update no escribe current_stock y otro escritor pudo cambiarlo.
	fresh, err := uc.silos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, nil
	}
	out := dto.NewSiloResponse(fresh)
	return &out, nil
}

// List lista todos los silos.
func (uc *SiloUseCase) List(ctx context.Context) (*dto.SiloListResponse, error) {
	list, err := uc.silos.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SiloResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.NewSiloResponse(s))
	}
	return &dto.SiloListResponse{Items: items}, nil
}

// Delete elimina un silo sin despachos. domain.ErrConflict si tiene despachos registrados.
func (uc *SiloUseCase) Delete(ctx context.Context, id string) error {
	_, total, err := uc.dispatches.List(ctx, entity.DispatchFilter{SiloID: id, Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return domain.ErrConflict
	}
	return uc.silos.Delete(ctx, id)
}
