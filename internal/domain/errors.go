package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidAmount     = errors.New("la cantidad debe ser mayor a cero")
	ErrCapacityExceeded  = errors.New("la cantidad excede la capacidad del silo")
	ErrInsufficientStock = errors.New("stock insuficiente en el silo seleccionado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
)
