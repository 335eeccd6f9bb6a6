package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/application/inventory"
	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
	"github.com/jhoicas/planta-despachos/internal/infrastructure/filestore"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

type fixture struct {
	store    *filestore.Store
	repos    repository.Repos
	dispatch *inventory.DispatchUseCase
	fill     *inventory.SiloFillUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := filestore.Open("", logger.Nop())
	require.NoError(t, err)
	repos := store.Repos()
	return &fixture{
		store:    store,
		repos:    repos,
		dispatch: inventory.NewDispatchUseCase(store, repos, logger.Nop()),
		fill:     inventory.NewSiloFillUseCase(store, repos, logger.Nop()),
	}
}

func (f *fixture) silo(t *testing.T, id string, stock, capacity int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.repos.Silos.Create(context.Background(), &entity.Silo{
		ID:           id,
		Name:         "Silo " + id,
		Capacity:     decimal.NewFromInt(capacity),
		CurrentStock: decimal.NewFromInt(stock),
		MinStock:     decimal.NewFromInt(20),
		Status:       entity.SiloStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	s, err := f.repos.Silos.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s.CurrentStock
}

func req(siloID string, qty int64) dto.DispatchRequest {
	return dto.DispatchRequest{
		SiloID:     siloID,
		ClientName: "Constructora Andina",
		DriverName: "Juan Pérez",
		QuantityM3: decimal.NewFromInt(qty),
	}
}

func TestDispatch_CicloCompletoRestauraStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)

	created, err := f.dispatch.Create(ctx, req("s1", 10))
	require.NoError(t, err)
	assert.Equal(t, "DESP-001", created.DispatchNumber)
	assert.True(t, decimal.NewFromInt(65).Equal(f.stock(t, "s1")))

	_, err = f.dispatch.Update(ctx, created.ID, req("s1", 30))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(45).Equal(f.stock(t, "s1")))

	require.NoError(t, f.dispatch.Delete(ctx, created.ID))
	assert.True(t, decimal.NewFromInt(75).Equal(f.stock(t, "s1")))
}

func TestDispatch_SegundoDeleteNoAcreditaDosVeces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)

	created, err := f.dispatch.Create(ctx, req("s1", 10))
	require.NoError(t, err)
	require.NoError(t, f.dispatch.Delete(ctx, created.ID))

	err = f.dispatch.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, decimal.NewFromInt(75).Equal(f.stock(t, "s1")))
}

func TestDispatch_StockInsuficienteNoPersiste(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 5, 100)

	_, err := f.dispatch.Create(ctx, req("s1", 10))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, decimal.NewFromInt(5).Equal(f.stock(t, "s1")))

	list, err := f.dispatch.List(ctx, dto.DispatchListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Page.Total)
}

func TestDispatch_EdicionQueAumentaDebitoVerificaStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 20, 100)

	created, err := f.dispatch.Create(ctx, req("s1", 10))
	require.NoError(t, err)

	_, err = f.dispatch.Update(ctx, created.ID, req("s1", 25))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, decimal.NewFromInt(10).Equal(f.stock(t, "s1")))

	got, err := f.dispatch.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(got.QuantityM3), "el despacho no debe cambiar")
}

func TestDispatch_CambioDeSiloRestauraYDebita(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)
	f.silo(t, "s2", 45, 100)

	created, err := f.dispatch.Create(ctx, req("s1", 10))
	require.NoError(t, err)

	updated, err := f.dispatch.Update(ctx, created.ID, req("s2", 15))
	require.NoError(t, err)
	assert.Equal(t, "s2", updated.SiloID)
	assert.Equal(t, "Silo s2", updated.SiloName)
	assert.True(t, decimal.NewFromInt(75).Equal(f.stock(t, "s1")))
	assert.True(t, decimal.NewFromInt(30).Equal(f.stock(t, "s2")))
}

func TestDispatch_ValidacionYReferencias(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)

	_, err := f.dispatch.Create(ctx, req("s1", 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.dispatch.Create(ctx, req("no-existe", 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	r := req("s1", 5)
	r.ClientID = "cliente-inexistente"
	_, err = f.dispatch.Create(ctx, r)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, decimal.NewFromInt(75).Equal(f.stock(t, "s1")))
}

func TestDispatch_CantidadConTresDecimalesNoSeRedondea(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)

	r := req("s1", 0)
	r.QuantityM3 = decimal.RequireFromString("10.005")
	_, err := f.dispatch.Create(ctx, r)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, decimal.NewFromInt(75).Equal(f.stock(t, "s1")))

	r.QuantityM3 = decimal.RequireFromString("10.25")
	created, err := f.dispatch.Create(ctx, r)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("64.75").Equal(f.stock(t, "s1")))

	r.QuantityM3 = decimal.RequireFromString("12.125")
	_, err = f.dispatch.Update(ctx, created.ID, r)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.dispatch.Delete(ctx, created.ID))
	assert.True(t, decimal.NewFromInt(75).Equal(f.stock(t, "s1")))

	_, err = f.fill.Fill(ctx, "s1", dto.FillSiloRequest{Amount: decimal.RequireFromString("0.001")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.True(t, decimal.NewFromInt(75).Equal(f.stock(t, "s1")))
}

func TestDispatch_ReferenciasManualYConocida(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)
	require.NoError(t, f.repos.Drivers.Create(ctx, &entity.Driver{ID: "drv-1", Name: "Carlos Ruiz"}))

	r := req("s1", 5)
	r.DriverID = "drv-1"
	created, err := f.dispatch.Create(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, entity.ReferenceManual, created.Client.Kind)
	assert.Equal(t, "Constructora Andina", created.Client.Name)
	assert.Equal(t, entity.ReferenceKnown, created.Driver.Kind)
	assert.Equal(t, "Carlos Ruiz", created.Driver.Name)

	// Si el conductor se elimina, el despacho muestra N/A.
	require.NoError(t, f.repos.Drivers.Delete(ctx, "drv-1"))
	got, err := f.dispatch.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "N/A", got.Driver.Name)
}

func TestDispatch_ListFiltraPorSiloYBusqueda(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)
	f.silo(t, "s2", 45, 100)

	_, err := f.dispatch.Create(ctx, req("s1", 5))
	require.NoError(t, err)
	other := req("s2", 5)
	other.ClientName = "Obras Lima"
	_, err = f.dispatch.Create(ctx, other)
	require.NoError(t, err)

	bySilo, err := f.dispatch.List(ctx, dto.DispatchListRequest{SiloID: "s2"})
	require.NoError(t, err)
	require.Len(t, bySilo.Items, 1)
	assert.Equal(t, "Obras Lima", bySilo.Items[0].Client.Name)

	bySearch, err := f.dispatch.List(ctx, dto.DispatchListRequest{Search: "andina"})
	require.NoError(t, err)
	assert.Equal(t, 1, bySearch.Page.Total)
	assert.Equal(t, 20, bySearch.Page.Limit)
}

func TestDispatch_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)

	_, err := f.dispatch.Update(ctx, "nope", req("s1", 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.dispatch.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFill_RespetaCapacidadYRegistraIngreso(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 90, 100)

	_, err := f.fill.Fill(ctx, "s1", dto.FillSiloRequest{Amount: decimal.NewFromInt(20)})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.True(t, decimal.NewFromInt(90).Equal(f.stock(t, "s1")))

	out, err := f.fill.Fill(ctx, "s1", dto.FillSiloRequest{Amount: decimal.NewFromInt(10), Supplier: "Cementos Sol"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(out.Silo.CurrentStock))
	assert.NotNil(t, out.Silo.LastRefillAt)
	assert.Equal(t, "Cementos Sol", out.Input.Supplier)

	inputs, err := f.fill.ListInputs(ctx, "s1", 20, 0)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(inputs[0].Quantity))
}

func TestFill_CantidadInvalidaYSiloInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 50, 100)

	for _, amount := range []int64{0, -5} {
		_, err := f.fill.Fill(ctx, "s1", dto.FillSiloRequest{Amount: decimal.NewFromInt(amount)})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	assert.True(t, decimal.NewFromInt(50).Equal(f.stock(t, "s1")))

	_, err := f.fill.Fill(ctx, "nope", dto.FillSiloRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.fill.ListInputs(ctx, "nope", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type fakeGenerator struct{ note inventory.DeliveryNote }

func (g *fakeGenerator) GenerateDeliveryNote(_ context.Context, note inventory.DeliveryNote) ([]byte, error) {
	g.note = note
	return []byte("%PDF-fake"), nil
}

func TestDeliveryNote_ResuelveNombres(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.silo(t, "s1", 75, 100)
	require.NoError(t, f.repos.Clients.Create(ctx, &entity.Client{ID: "cli-1", Name: "Constructora Andina", Document: "20123456789"}))

	r := req("s1", 8)
	r.ClientID = "cli-1"
	created, err := f.dispatch.Create(ctx, r)
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := inventory.NewDeliveryNoteUseCase(f.repos, gen)
	pdf, name, err := uc.Download(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "guia_DESP-001.pdf", name)
	assert.Equal(t, "Silo s1", gen.note.SiloName)
	assert.Equal(t, "Constructora Andina", gen.note.ClientName)
	assert.Equal(t, "Juan Pérez", gen.note.DriverName)
	require.NotNil(t, gen.note.Client)
	assert.Nil(t, gen.note.Driver)

	_, _, err = uc.Download(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPeriodRange_SemanaEmpiezaLunes(t *testing.T) {
	wed := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	from, to, ok := inventory.PeriodRange(inventory.PeriodWeek, wed)
	require.True(t, ok)
	assert.Equal(t, time.Monday, from.Weekday())
	assert.Equal(t, 9, from.Day())
	assert.Equal(t, 16, to.Day())

	_, _, ok = inventory.PeriodRange(inventory.PeriodAll, wed)
	assert.False(t, ok)
}
