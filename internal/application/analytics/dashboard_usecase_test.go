package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/infrastructure/filestore"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

func TestDashboard_TarjetasYGraficaDiaria(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.Open("", logger.Nop())
	require.NoError(t, err)
	repos := store.Repos()

	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Silos.Create(ctx, &entity.Silo{ID: "s1", Name: "Silo 1", Capacity: decimal.NewFromInt(100), CurrentStock: decimal.NewFromInt(75), MinStock: decimal.NewFromInt(20)}))
	require.NoError(t, repos.Silos.Create(ctx, &entity.Silo{ID: "s2", Name: "Silo 2", Capacity: decimal.NewFromInt(100), CurrentStock: decimal.NewFromInt(10), MinStock: decimal.NewFromInt(20)}))
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: "cli-1", Name: "Constructora Andina"}))

	for i, qty := range []int64{5, 7, 3} {
		require.NoError(t, repos.Dispatches.Create(ctx, &entity.Dispatch{
			ID:           string(rune('a' + i)),
			SiloID:       "s1",
			Client:       entity.KnownRef("cli-1"),
			Driver:       entity.ManualRef("Juan"),
			QuantityM3:   decimal.NewFromInt(qty),
			QuantityKg:   decimal.NewFromInt(qty * 1000),
			DispatchDate: now.AddDate(0, 0, -i/2),
			CreatedAt:    now.Add(time.Duration(i) * time.Minute),
		}))
	}
	// Fuera de la ventana de 7 días.
	require.NoError(t, repos.Dispatches.Create(ctx, &entity.Dispatch{
		ID: "old", SiloID: "s1", Client: entity.ManualRef("X"), Driver: entity.ManualRef("Y"),
		QuantityM3: decimal.NewFromInt(50), DispatchDate: now.AddDate(0, 0, -10),
	}))

	uc := NewDashboardUseCase(repos)
	uc.now = func() time.Time { return now }

	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	require.Len(t, out.Silos, 2)
	assert.Equal(t, 1, out.LowStockCount)
	assert.True(t, strings.HasPrefix(out.Silos[0].StockLabel, "75"), out.Silos[0].StockLabel)
	assert.True(t, strings.HasSuffix(out.Silos[0].StockLabel, " m³"), out.Silos[0].StockLabel)
	assert.True(t, strings.HasSuffix(out.Silos[0].PercentageLabel, "%"), out.Silos[0].PercentageLabel)

	require.Len(t, out.DailyDispatches, 7)
	assert.Equal(t, "2026-03-05", out.DailyDispatches[0].Date)
	last := out.DailyDispatches[6]
	assert.Equal(t, "2026-03-11", last.Date)
	assert.True(t, decimal.NewFromInt(12).Equal(last.Total))
	assert.Equal(t, 2, last.Count)
	assert.True(t, decimal.NewFromInt(3).Equal(out.DailyDispatches[5].Total))
	assert.True(t, out.DailyDispatches[0].Total.IsZero())

	require.Len(t, out.RecentDispatches, 4)
	assert.Equal(t, "Constructora Andina", out.RecentDispatches[0].Client.Name)

	summary, err := uc.ClientSummary(ctx, "cli-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.DispatchCount)
	assert.True(t, decimal.NewFromInt(15).Equal(summary.TotalM3))
	assert.True(t, decimal.NewFromInt(15000).Equal(summary.TotalKg))

	_, err = uc.ClientSummary(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
