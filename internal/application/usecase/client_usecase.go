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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. El nombre es obligatorio.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{ID: uuid.New().String(), CreatedAt: now}
	applyClient(client, in, now)
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	out := dto.NewClientResponse(client)
	return &out, nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	out := dto.NewClientResponse(client)
	return &out, nil
}

// Update reemplaza los datos del cliente. Devuelve (nil, nil) si no existe.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	applyClient(client, in, time.Now())
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	out := dto.NewClientResponse(client)
	return &out, nil
}

// List lista clientes por nombre/documento con paginación.
func (uc *ClientUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un cliente. Los despachos que lo referencian conservan el ID y se muestran como N/A.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyClient(c *entity.Client, in dto.ClientRequest, now time.Time) {
	c.Name = strings.TrimSpace(in.Name)
	c.Document = strings.TrimSpace(in.Document)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Address = strings.TrimSpace(in.Address)
	c.UpdatedAt = now
}
