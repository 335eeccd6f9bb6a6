package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSiloRequest entrada para registrar un silo.
type CreateSiloRequest struct {
	Name         string          `json:"name"`
	Capacity     decimal.Decimal `json:"capacity"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Status       string          `json:"status,omitempty"`
}

// UpdateSiloRequest entrada para actualizar un silo. El stock no es editable aquí.
type UpdateSiloRequest struct {
	Name     *string          `json:"name"`
	Capacity *decimal.Decimal `json:"capacity"`
	MinStock *decimal.Decimal `json:"min_stock"`
	Status   *string          `json:"status"`
}

// FillSiloRequest body para POST /api/silos/:id/fill.
type FillSiloRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Supplier      string          `json:"supplier,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// SiloResponse salida de un silo.
type SiloResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Capacity       decimal.Decimal `json:"capacity"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	MinStock       decimal.Decimal `json:"min_stock"`
	Available      decimal.Decimal `json:"available"`
	FillPercentage decimal.Decimal `json:"fill_percentage"`
	IsLow          bool            `json:"is_low"`
	Status         string          `json:"status"`
	LastRefillAt   *time.Time      `json:"last_refill_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CementInputResponse salida de un ingreso de cemento.
type CementInputResponse struct {
	ID            string          `json:"id"`
	SiloID        string          `json:"silo_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Supplier      string          `json:"supplier,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	InputDate     time.Time       `json:"input_date"`
	Notes         string          `json:"notes,omitempty"`
}

// FillSiloResponse resultado de un llenado.
type FillSiloResponse struct {
	Silo  SiloResponse        `json:"silo"`
	Input CementInputResponse `json:"input"`
}

// SiloListResponse lista de silos.
type SiloListResponse struct {
	Items []SiloResponse `json:"items"`
}
