package inventory

import (
	"context"

	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del Record Store, pasando repositorios
// atados a esa tx. El ajuste de stock y la persistencia del despacho se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// DeliveryNoteGenerator genera la guía de despacho (PDF) de un despacho.
type DeliveryNoteGenerator interface {
	GenerateDeliveryNote(ctx context.Context, note DeliveryNote) ([]byte, error)
}

// DeliveryNote datos ya resueltos para imprimir la guía.
type DeliveryNote struct {
	Dispatch   *entity.Dispatch
	SiloName   string
	ClientName string
	DriverName string
	Client     *entity.Client // nil si la referencia es manual
	Driver     *entity.Driver // nil si la referencia es manual
}
