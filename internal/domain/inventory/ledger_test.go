package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/inventory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newSilo(id string, capacity, stock int64) *entity.Silo {
	return &entity.Silo{ID: id, Name: "Silo " + id, Capacity: d(capacity), CurrentStock: d(stock), MinStock: d(20)}
}

func newDispatch(siloID string, qty int64) *entity.Dispatch {
	return &entity.Dispatch{ID: "D1", SiloID: siloID, QuantityM3: d(qty)}
}

// Escenario: crear 10, editar a 30, eliminar → 65, 45, 75.
func TestLedger_EscenarioCrearEditarEliminar(t *testing.T) {
	silo := newSilo("1", 100, 75)
	disp := newDispatch("1", 10)

	inventory.ApplyDispatchCreate(silo, disp)
	assert.True(t, d(65).Equal(silo.CurrentStock), "tras crear: %s", silo.CurrentStock)

	inventory.ApplyDispatchUpdate(silo, nil, disp, d(30))
	disp.QuantityM3 = d(30)
	assert.True(t, d(45).Equal(silo.CurrentStock), "tras editar: %s", silo.CurrentStock)

	inventory.ApplyDispatchDelete(silo, disp)
	assert.True(t, d(75).Equal(silo.CurrentStock), "tras eliminar: %s", silo.CurrentStock)
}

// Escenario: silo 90/100; llenar 20 falla, llenar 10 deja 100.
func TestLedger_EscenarioLlenado(t *testing.T) {
	silo := newSilo("1", 100, 90)

	err := inventory.ApplySiloFill(silo, d(20))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.True(t, d(90).Equal(silo.CurrentStock), "el llenado rechazado no debe tocar el stock")

	require.NoError(t, inventory.ApplySiloFill(silo, d(10)))
	assert.True(t, d(100).Equal(silo.CurrentStock))
}

func TestValidScale(t *testing.T) {
	assert.True(t, inventory.ValidScale(d(10)))
	assert.True(t, inventory.ValidScale(decimal.RequireFromString("10.25")))
	assert.True(t, inventory.ValidScale(decimal.RequireFromString("10.500")))
	assert.False(t, inventory.ValidScale(decimal.RequireFromString("10.005")))
}

func TestApplySiloFill_CantidadInvalida(t *testing.T) {
	silo := newSilo("1", 100, 50)
	assert.ErrorIs(t, inventory.ApplySiloFill(silo, decimal.Zero), domain.ErrInvalidAmount)
	assert.ErrorIs(t, inventory.ApplySiloFill(silo, d(-5)), domain.ErrInvalidAmount)
	assert.True(t, d(50).Equal(silo.CurrentStock))
}

func TestDispatchUpdate_CambioDeSilo(t *testing.T) {
	oldSilo := newSilo("1", 100, 70)
	newSiloRec := newSilo("2", 100, 40)
	disp := newDispatch("1", 10)

	inventory.ApplyDispatchUpdate(oldSilo, newSiloRec, disp, d(25))

	assert.True(t, d(80).Equal(oldSilo.CurrentStock), "el silo anterior recupera la cantidad completa")
	assert.True(t, d(15).Equal(newSiloRec.CurrentStock), "el silo nuevo se debita por la cantidad nueva")
}

func TestDispatchUpdate_SinCambioNoGeneraAjustes(t *testing.T) {
	disp := newDispatch("1", 10)
	assert.Empty(t, inventory.DispatchUpdate(disp, d(10), ""))
	assert.Empty(t, inventory.DispatchUpdate(disp, d(10), "1"))
}

func TestApplyDispatchCreate_NoValida(t *testing.T) {
	// El débito es incondicional: sin la verificación previa puede quedar negativo.
	silo := newSilo("1", 100, 5)
	inventory.ApplyDispatchCreate(silo, newDispatch("1", 10))
	assert.True(t, d(-5).Equal(silo.CurrentStock))
}

func TestCheckDebit(t *testing.T) {
	silo := newSilo("1", 100, 10)
	assert.NoError(t, inventory.CheckDebit(silo, inventory.Adjustment{SiloID: "1", Delta: d(-10)}))
	assert.NoError(t, inventory.CheckDebit(silo, inventory.Adjustment{SiloID: "1", Delta: d(50)}))
	assert.ErrorIs(t, inventory.CheckDebit(silo, inventory.Adjustment{SiloID: "1", Delta: d(-11)}), domain.ErrInsufficientStock)
}

// ── Propiedades ───────────────────────────────────────────────────────────────

// Crear y eliminar el mismo despacho deja el stock como estaba.
func TestPropiedad_Conservacion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stock := rapid.Int64Range(0, 10_000).Draw(t, "stock")
		qty := rapid.Int64Range(1, 10_000).Draw(t, "qty")
		silo := newSilo("1", 20_000, stock)
		disp := newDispatch("1", qty)

		inventory.ApplyDispatchCreate(silo, disp)
		inventory.ApplyDispatchDelete(silo, disp)

		if !silo.CurrentStock.Equal(d(stock)) {
			t.Fatalf("stock %s, esperado %d", silo.CurrentStock, stock)
		}
	})
}

// Editar Q1→Q2→Q3 equivale a editar Q1→Q3 directamente.
func TestPropiedad_IndependenciaDelCamino(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stock := rapid.Int64Range(0, 10_000).Draw(t, "stock")
		q1 := rapid.Int64Range(1, 1_000).Draw(t, "q1")
		q2 := rapid.Int64Range(1, 1_000).Draw(t, "q2")
		q3 := rapid.Int64Range(1, 1_000).Draw(t, "q3")

		a := newSilo("1", 20_000, stock)
		da := newDispatch("1", q1)
		inventory.ApplyDispatchCreate(a, da)
		inventory.ApplyDispatchUpdate(a, nil, da, d(q2))
		da.QuantityM3 = d(q2)
		inventory.ApplyDispatchUpdate(a, nil, da, d(q3))

		b := newSilo("1", 20_000, stock)
		db := newDispatch("1", q1)
		inventory.ApplyDispatchCreate(b, db)
		inventory.ApplyDispatchUpdate(b, nil, db, d(q3))

		if !a.CurrentStock.Equal(b.CurrentStock) {
			t.Fatalf("camino en dos pasos %s != un paso %s", a.CurrentStock, b.CurrentStock)
		}
		if !a.CurrentStock.Equal(d(stock - q3)) {
			t.Fatalf("stock final %s, esperado %d", a.CurrentStock, stock-q3)
		}
	})
}

// El llenado falla si supera la capacidad y suma exactamente si no.
func TestPropiedad_LimitesDeLlenado(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.Int64Range(1, 10_000).Draw(t, "capacity")
		stock := rapid.Int64Range(0, capacity).Draw(t, "stock")
		amount := rapid.Int64Range(-100, 12_000).Draw(t, "amount")
		silo := newSilo("1", capacity, stock)

		err := inventory.ApplySiloFill(silo, d(amount))
		switch {
		case amount <= 0:
			if err != domain.ErrInvalidAmount {
				t.Fatalf("amount %d: esperado ErrInvalidAmount, obtenido %v", amount, err)
			}
			if !silo.CurrentStock.Equal(d(stock)) {
				t.Fatalf("stock modificado en llenado inválido")
			}
		case stock+amount > capacity:
			if err != domain.ErrCapacityExceeded {
				t.Fatalf("esperado ErrCapacityExceeded, obtenido %v", err)
			}
			if !silo.CurrentStock.Equal(d(stock)) {
				t.Fatalf("stock modificado en llenado rechazado")
			}
		default:
			if err != nil {
				t.Fatalf("llenado válido rechazado: %v", err)
			}
			if !silo.CurrentStock.Equal(d(stock + amount)) {
				t.Fatalf("stock %s, esperado %d", silo.CurrentStock, stock+amount)
			}
		}
	})
}

// Si el llamador siempre verifica antes de debitar, el stock nunca queda negativo.
func TestPropiedad_NoNegatividadConVerificacionPrevia(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		silos := map[string]*entity.Silo{
			"1": newSilo("1", 1_000, rapid.Int64Range(0, 1_000).Draw(t, "stock1")),
			"2": newSilo("2", 1_000, rapid.Int64Range(0, 1_000).Draw(t, "stock2")),
		}
		var active []*entity.Dispatch

		apply := func(adjs []inventory.Adjustment) bool {
			for _, adj := range adjs {
				if inventory.CheckDebit(silos[adj.SiloID], adj) != nil {
					return false
				}
			}
			for _, adj := range adjs {
				inventory.Apply(silos[adj.SiloID], adj)
			}
			return true
		}

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			siloID := rapid.SampledFrom([]string{"1", "2"}).Draw(t, "silo")
			qty := d(rapid.Int64Range(1, 300).Draw(t, "qty"))
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				disp := &entity.Dispatch{SiloID: siloID, QuantityM3: qty}
				if apply(inventory.DispatchCreate(disp)) {
					active = append(active, disp)
				}
			case 1:
				if len(active) > 0 {
					disp := active[0]
					if apply(inventory.DispatchUpdate(disp, qty, siloID)) {
						disp.SiloID, disp.QuantityM3 = siloID, qty
					}
				}
			case 2:
				if n := len(active); n > 0 {
					apply(inventory.DispatchDelete(active[n-1]))
					active = active[:n-1]
				}
			}
			for id, s := range silos {
				if s.CurrentStock.IsNegative() {
					t.Fatalf("silo %s con stock negativo: %s", id, s.CurrentStock)
				}
			}
		}
	})
}
