package dto

import "github.com/shopspring/decimal"

// SiloCardDTO tarjeta de inventario de un silo en el dashboard.
type SiloCardDTO struct {
	SiloResponse
	StockLabel      string `json:"stock_label"`      // stock con unidad (m³), formato es-PE
	CapacityLabel   string `json:"capacity_label"`   // capacidad con unidad (m³)
	PercentageLabel string `json:"percentage_label"` // porcentaje de llenado
}

// DailyDispatchDTO punto de la gráfica "Despachos por día".
type DailyDispatchDTO struct {
	Date  string          `json:"date"` // yyyy-MM-dd
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DashboardResponse vista general de operaciones.
type DashboardResponse struct {
	Silos            []SiloCardDTO      `json:"silos"`
	LowStockCount    int                `json:"low_stock_count"`
	DailyDispatches  []DailyDispatchDTO `json:"daily_dispatches"`
	RecentDispatches []DispatchResponse `json:"recent_dispatches"`
}

// ClientSummaryDTO totales despachados a un cliente.
type ClientSummaryDTO struct {
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name"`
	TotalM3       decimal.Decimal `json:"total_m3"`
	TotalKg       decimal.Decimal `json:"total_kg"`
	DispatchCount int             `json:"dispatch_count"`
	TotalM3Label  string          `json:"total_m3_label"`
	TotalKgLabel  string          `json:"total_kg_label"`
}
