package entity

import "time"

// Driver conductor de mixer.
type Driver struct {
	ID         string
	Name       string
	License    string
	Phone      string
	TruckPlate string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
