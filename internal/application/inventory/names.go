package inventory

import (
	"context"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

// resolveNames carga los nombres de silos, clientes y conductores referenciados por los despachos.
// Las referencias manuales no requieren consulta.
func resolveNames(ctx context.Context, repos repository.Repos, list []*entity.Dispatch) (dto.Names, error) {
	names := dto.Names{
		Silos:   map[string]string{},
		Clients: map[string]string{},
		Drivers: map[string]string{},
	}
	for _, d := range list {
		if _, ok := names.Silos[d.SiloID]; !ok && d.SiloID != "" {
			s, err := repos.Silos.GetByID(ctx, d.SiloID)
			if err != nil {
				return names, err
			}
			if s != nil {
				names.Silos[s.ID] = s.Name
			}
		}
		if !d.Client.IsManual() {
			if _, ok := names.Clients[d.Client.ID]; !ok {
				c, err := repos.Clients.GetByID(ctx, d.Client.ID)
				if err != nil {
					return names, err
				}
				if c != nil {
					names.Clients[c.ID] = c.Name
				}
			}
		}
		if !d.Driver.IsManual() {
			if _, ok := names.Drivers[d.Driver.ID]; !ok {
				dr, err := repos.Drivers.GetByID(ctx, d.Driver.ID)
				if err != nil {
					return names, err
				}
				if dr != nil {
					names.Drivers[dr.ID] = dr.Name
				}
			}
		}
	}
	return names, nil
}
