package dto

import "time"

// DriverRequest entrada para crear o actualizar un conductor.
type DriverRequest struct {
	Name       string `json:"name"`
	License    string `json:"license"`
	Phone      string `json:"phone,omitempty"`
	TruckPlate string `json:"truck_plate,omitempty"`
}

// DriverResponse salida de un conductor.
type DriverResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	License    string    `json:"license"`
	Phone      string    `json:"phone,omitempty"`
	TruckPlate string    `json:"truck_plate,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DriverListResponse lista paginada de conductores.
type DriverListResponse struct {
	Items []DriverResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
