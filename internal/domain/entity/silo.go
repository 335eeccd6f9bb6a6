package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados operativos de un silo.
const (
	SiloStatusActive      = "active"
	SiloStatusMaintenance = "maintenance"
	SiloStatusInactive    = "inactive"
)

// Silo representa una unidad física de almacenamiento de cemento con capacidad acotada.
// CurrentStock solo se modifica a través del ledger (despachos y llenados).
type Silo struct {
	ID           string
	Name         string
	Capacity     decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal // umbral de alerta visual, no es un piso duro
	Status       string
	LastRefillAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLow indica si el stock está por debajo del mínimo configurado.
func (s *Silo) IsLow() bool {
	return s.CurrentStock.LessThan(s.MinStock)
}

// Available devuelve la capacidad libre (capacity - current_stock).
func (s *Silo) Available() decimal.Decimal {
	return s.Capacity.Sub(s.CurrentStock)
}

// FillPercentage devuelve el porcentaje de llenado respecto a la capacidad (0 si capacity es 0).
func (s *Silo) FillPercentage() decimal.Decimal {
	if !s.Capacity.IsPositive() {
		return decimal.Zero
	}
	return s.CurrentStock.Div(s.Capacity).Mul(decimal.NewFromInt(100))
}

// ValidSiloStatus indica si el estado es uno de los conocidos.
func ValidSiloStatus(status string) bool {
	switch status {
	case SiloStatusActive, SiloStatusMaintenance, SiloStatusInactive:
		return true
	}
	return false
}
