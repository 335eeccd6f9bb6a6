// Package analytics contiene los casos de uso de lectura del dashboard de operaciones.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
	"github.com/jhoicas/planta-despachos/pkg/units"
)

const (
	dashboardDays   = 7 // días de la gráfica "Despachos por día"
	dashboardRecent = 5 // despachos recientes en el widget
)

// DashboardUseCase arma la vista general: tarjetas de silos, gráfica diaria y últimos despachos.
type DashboardUseCase struct {
	repos repository.Repos
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Repos) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, now: time.Now}
}

// GetSummary construye el DashboardResponse.
//
// Tres consultas en paralelo:
//  1. Silos.List                    → tarjetas + conteo de stock bajo
//  2. Dispatches.DailyTotals(7 días) → gráfica (días sin despachos van en 0)
//  3. Dispatches.List(limit 5)       → despachos recientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -(dashboardDays - 1))
	to := today.AddDate(0, 0, 1)

	type silosResult struct {
		silos []*entity.Silo
		err   error
	}
	type totalsResult struct {
		totals []entity.DailyTotal
		err    error
	}
	type recentResult struct {
		list []*entity.Dispatch
		err  error
	}

	silosCh := make(chan silosResult, 1)
	totalsCh := make(chan totalsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		list, err := uc.repos.Silos.List(ctx)
		silosCh <- silosResult{list, err}
	}()
	go func() {
		totals, err := uc.repos.Dispatches.DailyTotals(ctx, from, to)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		list, _, err := uc.repos.Dispatches.List(ctx, entity.DispatchFilter{Limit: dashboardRecent})
		recentCh <- recentResult{list, err}
	}()

	silos := <-silosCh
	totals := <-totalsCh
	recent := <-recentCh

	if silos.err != nil {
		return nil, fmt.Errorf("dashboard: silos: %w", silos.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales diarios: %w", totals.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: despachos recientes: %w", recent.err)
	}

	out := &dto.DashboardResponse{
		Silos:            make([]dto.SiloCardDTO, 0, len(silos.silos)),
		DailyDispatches:  fillDays(totals.totals, from, dashboardDays),
		RecentDispatches: make([]dto.DispatchResponse, 0, len(recent.list)),
	}
	names := dto.Names{Silos: map[string]string{}, Clients: map[string]string{}, Drivers: map[string]string{}}
	for _, s := range silos.silos {
		names.Silos[s.ID] = s.Name
		if s.IsLow() {
			out.LowStockCount++
		}
		out.Silos = append(out.Silos, siloCard(s))
	}

	for _, d := range recent.list {
		if err := uc.resolve(ctx, d, names); err != nil {
			return nil, err
		}
		out.RecentDispatches = append(out.RecentDispatches, dto.NewDispatchResponse(d, names))
	}
	return out, nil
}

// ClientSummary totales (m³, kg, cantidad) despachados a un cliente registrado.
func (uc *DashboardUseCase) ClientSummary(ctx context.Context, clientID string) (*dto.ClientSummaryDTO, error) {
	client, err := uc.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	list, total, err := uc.repos.Dispatches.List(ctx, entity.DispatchFilter{ClientID: entity.KnownRef(clientID).Encode()})
	if err != nil {
		return nil, fmt.Errorf("resumen de cliente: %w", err)
	}
	m3, kg := decimal.Zero, decimal.Zero
	for _, d := range list {
		m3 = m3.Add(d.QuantityM3)
		kg = kg.Add(d.QuantityKg)
	}
	return &dto.ClientSummaryDTO{
		ClientID:      client.ID,
		ClientName:    client.Name,
		TotalM3:       m3,
		TotalKg:       kg,
		DispatchCount: total,
		TotalM3Label:  units.FormatM3(m3, 2),
		TotalKgLabel:  units.FormatKg(kg, 0),
	}, nil
}

func (uc *DashboardUseCase) resolve(ctx context.Context, d *entity.Dispatch, names dto.Names) error {
	if !d.Client.IsManual() {
		if _, ok := names.Clients[d.Client.ID]; !ok {
			c, err := uc.repos.Clients.GetByID(ctx, d.Client.ID)
			if err != nil {
				return err
			}
			if c != nil {
				names.Clients[c.ID] = c.Name
			}
		}
	}
	if !d.Driver.IsManual() {
		if _, ok := names.Drivers[d.Driver.ID]; !ok {
			dr, err := uc.repos.Drivers.GetByID(ctx, d.Driver.ID)
			if err != nil {
				return err
			}
			if dr != nil {
				names.Drivers[dr.ID] = dr.Name
			}
		}
	}
	return nil
}

func siloCard(s *entity.Silo) dto.SiloCardDTO {
	resp := dto.NewSiloResponse(s)
	return dto.SiloCardDTO{
		SiloResponse:    resp,
		StockLabel:      units.FormatM3(s.CurrentStock, 2),
		CapacityLabel:   units.FormatM3(s.Capacity, 2),
		PercentageLabel: units.FormatPercentage(resp.FillPercentage, 1),
	}
}

// fillDays devuelve un punto por día desde from, con 0 en los días sin despachos.
func fillDays(totals []entity.DailyTotal, from time.Time, days int) []dto.DailyDispatchDTO {
	byDay := make(map[string]entity.DailyTotal, len(totals))
	for _, t := range totals {
		byDay[t.Date.Format("2006-01-02")] = t
	}
	out := make([]dto.DailyDispatchDTO, 0, days)
	for i := 0; i < days; i++ {
		key := from.AddDate(0, 0, i).Format("2006-01-02")
		point := dto.DailyDispatchDTO{Date: key, Total: decimal.Zero}
		if t, ok := byDay[key]; ok {
			point.Total = t.Total
			point.Count = t.Count
		}
		out = append(out, point)
	}
	return out
}
