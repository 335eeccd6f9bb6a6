package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

// DeliveryNoteUseCase genera la guía de despacho en PDF.
type DeliveryNoteUseCase struct {
	repos     repository.Repos
	generator DeliveryNoteGenerator
}

// NewDeliveryNoteUseCase construye el caso de uso.
func NewDeliveryNoteUseCase(repos repository.Repos, generator DeliveryNoteGenerator) *DeliveryNoteUseCase {
	return &DeliveryNoteUseCase{repos: repos, generator: generator}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
// domain.ErrNotFound si el despacho no existe.
func (uc *DeliveryNoteUseCase) Download(ctx context.Context, dispatchID string) ([]byte, string, error) {
	d, err := uc.repos.Dispatches.GetByID(ctx, dispatchID)
	if err != nil {
		return nil, "", fmt.Errorf("guía: obtener despacho: %w", err)
	}
	if d == nil {
		return nil, "", domain.ErrNotFound
	}
	names, err := resolveNames(ctx, uc.repos, []*entity.Dispatch{d})
	if err != nil {
		return nil, "", err
	}
	note := DeliveryNote{
		Dispatch:   d,
		SiloName:   names.Silos[d.SiloID],
		ClientName: d.Client.DisplayName(lookup(names.Clients)),
		DriverName: d.Driver.DisplayName(lookup(names.Drivers)),
	}
	if !d.Client.IsManual() {
		if note.Client, err = uc.repos.Clients.GetByID(ctx, d.Client.ID); err != nil {
			return nil, "", err
		}
	}
	if !d.Driver.IsManual() {
		if note.Driver, err = uc.repos.Drivers.GetByID(ctx, d.Driver.ID); err != nil {
			return nil, "", err
		}
	}

	pdf, err := uc.generator.GenerateDeliveryNote(ctx, note)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("guia_%s.pdf", d.DispatchNumber)
	return pdf, filename, nil
}

func lookup(m map[string]string) func(string) (string, bool) {
	return func(id string) (string, bool) {
		n, ok := m[id]
		return n, ok
	}
}
