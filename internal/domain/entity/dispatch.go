package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dispatch representa un despacho (entrega saliente) que descuenta stock de un silo.
// QuantityM3 es la cantidad que mueve el stock; QuantityKg es informativa.
type Dispatch struct {
	ID              string
	DispatchNumber  string
	SiloID          string
	Client          Reference
	Driver          Reference
	QuantityM3      decimal.Decimal
	QuantityKg      decimal.Decimal
	DispatchDate    time.Time
	DeliveryAddress string
	Resistance      string // REST.
	CementType      string // TIPO
	Slump           string // ASENT.
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DispatchFilter filtros de listado de despachos.
type DispatchFilter struct {
	From     *time.Time
	To       *time.Time
	SiloID   string
	ClientID string // forma persistida de la referencia (ver Reference.Encode)
	DriverID string
	Search   string
	Limit    int
	Offset   int
}

// DailyTotal total despachado en un día.
type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
	Count int
}
