package entity

import "time"

// Client cliente al que se despacha concreto.
type Client struct {
	ID        string
	Name      string
	Document  string // RUC / DNI
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
