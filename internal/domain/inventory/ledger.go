// Package inventory contiene las reglas de bookkeeping de stock de los silos (servicio de dominio).
//
// Las reglas se expresan como ajustes firmados (Adjustment) para que la capa de persistencia
// pueda aplicarlos de forma atómica y relativa al valor de la BD
// (UPDATE silos SET current_stock = current_stock + $delta), y también como funciones Apply*
// que mutan un Silo en memoria.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

// QuantityScale decimales que admiten stock, capacidad y cantidades (columnas NUMERIC(12,2)).
const QuantityScale = 2

// ValidScale indica si d se representa sin redondeo con QuantityScale decimales.
func ValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(QuantityScale))
}

// Adjustment cambio firmado de stock sobre un silo (negativo = débito).
type Adjustment struct {
	SiloID string
	Delta  decimal.Decimal
}

// DispatchCreate: debita la cantidad del despacho del silo referenciado.
func DispatchCreate(d *entity.Dispatch) []Adjustment {
	return []Adjustment{{SiloID: d.SiloID, Delta: d.QuantityM3.Neg()}}
}

// DispatchUpdate calcula los ajustes al editar un despacho.
// Mismo silo: solo el delta (nuevo - anterior). Silo distinto: devuelve todo al silo anterior
// y debita la cantidad nueva completa del silo nuevo. newSiloID vacío = mismo silo.
func DispatchUpdate(old *entity.Dispatch, newQty decimal.Decimal, newSiloID string) []Adjustment {
	if newSiloID == "" || newSiloID == old.SiloID {
		diff := newQty.Sub(old.QuantityM3)
		if diff.IsZero() {
			return nil
		}
		return []Adjustment{{SiloID: old.SiloID, Delta: diff.Neg()}}
	}
	return []Adjustment{
		{SiloID: old.SiloID, Delta: old.QuantityM3},
		{SiloID: newSiloID, Delta: newQty.Neg()},
	}
}

// DispatchDelete: revierte por completo el débito original.
func DispatchDelete(d *entity.Dispatch) []Adjustment {
	return []Adjustment{{SiloID: d.SiloID, Delta: d.QuantityM3}}
}

// Apply suma el delta al stock del silo. No valida: puede dejar stock negativo.
func Apply(silo *entity.Silo, adj Adjustment) {
	silo.CurrentStock = silo.CurrentStock.Add(adj.Delta)
}

// ApplyDispatchCreate aplica el débito de un despacho nuevo sobre el silo.
// Es incondicional; el llamador debe verificar antes quantity <= current_stock (CheckDebit).
func ApplyDispatchCreate(silo *entity.Silo, d *entity.Dispatch) {
	for _, adj := range DispatchCreate(d) {
		Apply(silo, adj)
	}
}

// ApplyDispatchUpdate aplica la edición de un despacho. newSilo nil (o el mismo ID) = mismo silo.
func ApplyDispatchUpdate(oldSilo, newSilo *entity.Silo, old *entity.Dispatch, newQty decimal.Decimal) {
	newSiloID := ""
	if newSilo != nil {
		newSiloID = newSilo.ID
	}
	for _, adj := range DispatchUpdate(old, newQty, newSiloID) {
		if adj.SiloID == oldSilo.ID {
			Apply(oldSilo, adj)
		} else {
			Apply(newSilo, adj)
		}
	}
}

// ApplyDispatchDelete devuelve al silo la cantidad del despacho eliminado.
func ApplyDispatchDelete(silo *entity.Silo, d *entity.Dispatch) {
	for _, adj := range DispatchDelete(d) {
		Apply(silo, adj)
	}
}

// CheckFill valida un llenado: amount > 0 y current_stock + amount <= capacity.
func CheckFill(silo *entity.Silo, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if silo.CurrentStock.Add(amount).GreaterThan(silo.Capacity) {
		return domain.ErrCapacityExceeded
	}
	return nil
}

// ApplySiloFill llena el silo (todo o nada).
func ApplySiloFill(silo *entity.Silo, amount decimal.Decimal) error {
	if err := CheckFill(silo, amount); err != nil {
		return err
	}
	silo.CurrentStock = silo.CurrentStock.Add(amount)
	return nil
}

// CheckDebit es la verificación previa de "stock insuficiente": un ajuste negativo no puede
// dejar el silo por debajo de cero. Ajustes positivos siempre pasan.
func CheckDebit(silo *entity.Silo, adj Adjustment) error {
	if !adj.Delta.IsNegative() {
		return nil
	}
	if silo.CurrentStock.Add(adj.Delta).IsNegative() {
		return domain.ErrInsufficientStock
	}
	return nil
}
