package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DispatchRequest body para crear o editar un despacho.
// Cliente y conductor: se usa *_id si viene; si no, *_name como referencia manual.
type DispatchRequest struct {
	SiloID          string          `json:"silo_id"`
	ClientID        string          `json:"client_id,omitempty"`
	ClientName      string          `json:"client_name,omitempty"`
	DriverID        string          `json:"driver_id,omitempty"`
	DriverName      string          `json:"driver_name,omitempty"`
	QuantityM3      decimal.Decimal `json:"quantity_m3"`
	QuantityKg      decimal.Decimal `json:"quantity_kg"`
	DispatchDate    *time.Time      `json:"dispatch_date,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	Resistance      string          `json:"resistance,omitempty"`
	CementType      string          `json:"cement_type,omitempty"`
	Slump           string          `json:"slump,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ReferenceResponse referencia resuelta a cliente o conductor.
type ReferenceResponse struct {
	Kind string `json:"kind"` // known | manual
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// DispatchResponse salida de un despacho.
type DispatchResponse struct {
	ID              string            `json:"id"`
	DispatchNumber  string            `json:"dispatch_number"`
	SiloID          string            `json:"silo_id"`
	SiloName        string            `json:"silo_name,omitempty"`
	Client          ReferenceResponse `json:"client"`
	Driver          ReferenceResponse `json:"driver"`
	QuantityM3      decimal.Decimal   `json:"quantity_m3"`
	QuantityKg      decimal.Decimal   `json:"quantity_kg"`
	DispatchDate    time.Time         `json:"dispatch_date"`
	DeliveryAddress string            `json:"delivery_address,omitempty"`
	Resistance      string            `json:"resistance,omitempty"`
	CementType      string            `json:"cement_type,omitempty"`
	Slump           string            `json:"slump,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// DispatchListRequest filtros de GET /api/dispatches.
type DispatchListRequest struct {
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
	Period   string `query:"period"` // all | today | week | month | year
	SiloID   string `query:"silo_id"`
	ClientID string `query:"client_id"`
	DriverID string `query:"driver_id"`
	Search   string `query:"q"`
}

// DispatchListResponse lista paginada de despachos.
type DispatchListResponse struct {
	Items []DispatchResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
