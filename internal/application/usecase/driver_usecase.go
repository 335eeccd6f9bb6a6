package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

// DriverUseCase casos de uso CRUD para conductores de mixer.
type DriverUseCase struct {
	repo repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{repo: repo}
}

// Create crea un conductor. El nombre es obligatorio.
func (uc *DriverUseCase) Create(ctx context.Context, in dto.DriverRequest) (*dto.DriverResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	driver := &entity.Driver{ID: uuid.New().String(), CreatedAt: now}
	applyDriver(driver, in, now)
	if err := uc.repo.Create(ctx, driver); err != nil {
		return nil, err
	}
	out := dto.NewDriverResponse(driver)
	return &out, nil
}

// GetByID obtiene un conductor por ID. Devuelve (nil, nil) si no existe.
func (uc *DriverUseCase) GetByID(ctx context.Context, id string) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, nil
	}
	out := dto.NewDriverResponse(driver)
	return &out, nil
}

// Update reemplaza los datos del conductor. Devuelve (nil, nil) si no existe.
func (uc *DriverUseCase) Update(ctx context.Context, id string, in dto.DriverRequest) (*dto.DriverResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	driver, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, nil
	}
	applyDriver(driver, in, time.Now())
	if err := uc.repo.Update(ctx, driver); err != nil {
		return nil, err
	}
	out := dto.NewDriverResponse(driver)
	return &out, nil
}

// List lista conductores por nombre/placa con paginación.
func (uc *DriverUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.DriverListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.NewDriverResponse(d))
	}
	return &dto.DriverListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un conductor. Los despachos que lo referencian conservan el ID y se muestran como N/A.
func (uc *DriverUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyDriver(d *entity.Driver, in dto.DriverRequest, now time.Time) {
	d.Name = strings.TrimSpace(in.Name)
	d.License = strings.TrimSpace(in.License)
	d.Phone = strings.TrimSpace(in.Phone)
	d.TruckPlate = strings.ToUpper(strings.TrimSpace(in.TruckPlate))
	d.UpdatedAt = now
}
