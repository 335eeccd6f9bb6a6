package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

// SeedUseCase carga datos de demostración en un almacén vacío.
type SeedUseCase struct {
	repos repository.Repos
	log   *logger.Logger
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(repos repository.Repos, log *logger.Logger) *SeedUseCase {
	return &SeedUseCase{repos: repos, log: log.Named("seed")}
}

type demoSilo struct {
	name                string
	stock, capacity, mn int64
}

var demoSilos = []demoSilo{
	{"Silo 1", 75, 100, 20},
	{"Silo 2", 45, 100, 20},
	{"Silo 3", 120, 150, 30},
}

// Run inserta silos, clientes y conductores de ejemplo si no hay ningún silo registrado.
// Devuelve false si el almacén ya tenía datos.
func (uc *SeedUseCase) Run(ctx context.Context) (bool, error) {
	existing, err := uc.repos.Silos.List(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: listar silos: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	now := time.Now()
	for _, d := range demoSilos {
		silo := &entity.Silo{
			ID:           uuid.New().String(),
			Name:         d.name,
			Capacity:     decimal.NewFromInt(d.capacity),
			CurrentStock: decimal.NewFromInt(d.stock),
			MinStock:     decimal.NewFromInt(d.mn),
			Status:       entity.SiloStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.repos.Silos.Create(ctx, silo); err != nil {
			return false, fmt.Errorf("seed: silo %s: %w", d.name, err)
		}
	}
	clients := []*entity.Client{
		{Name: "Constructora Andina S.A.C.", Document: "20512345678", Phone: "01 4567890", Address: "Av. Industrial 123, Lima"},
		{Name: "Inmobiliaria Los Pinos", Document: "20609876543", Phone: "01 7654321", Address: "Jr. Las Flores 456, Callao"},
	}
	for _, c := range clients {
		c.ID, c.CreatedAt, c.UpdatedAt = uuid.New().String(), now, now
		if err := uc.repos.Clients.Create(ctx, c); err != nil {
			return false, fmt.Errorf("seed: cliente %s: %w", c.Name, err)
		}
	}
	drivers := []*entity.Driver{
		{Name: "Juan Pérez", License: "Q12345678", Phone: "987654321", TruckPlate: "ABC-123"},
		{Name: "Carlos Ruiz", License: "Q87654321", Phone: "912345678", TruckPlate: "XYZ-789"},
	}
	for _, d := range drivers {
		d.ID, d.CreatedAt, d.UpdatedAt = uuid.New().String(), now, now
		if err := uc.repos.Drivers.Create(ctx, d); err != nil {
			return false, fmt.Errorf("seed: conductor %s: %w", d.Name, err)
		}
	}
	uc.log.Info().
		Int("silos", len(demoSilos)).
		Int("clients", len(clients)).
		Int("drivers", len(drivers)).
		Msg("datos de demostración cargados")
	return true, nil
}
