package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CementInput registra un ingreso de cemento (llenado) a un silo.
type CementInput struct {
	ID            string
	SiloID        string
	Quantity      decimal.Decimal
	Supplier      string
	ReceiptNumber string
	InputDate     time.Time
	Notes         string
	CreatedAt     time.Time
}
