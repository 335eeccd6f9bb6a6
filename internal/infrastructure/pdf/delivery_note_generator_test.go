package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/planta-despachos/internal/application/inventory"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

func TestGenerateDeliveryNote_GeneraPDF(t *testing.T) {
	g := NewDeliveryNoteGenerator("Planta Lurín")
	note := inventory.DeliveryNote{
		Dispatch: &entity.Dispatch{
			ID:             "d1",
			DispatchNumber: "DESP-001",
			QuantityM3:     decimal.NewFromInt(8),
			QuantityKg:     decimal.NewFromInt(19200),
			DispatchDate:   time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC),
			CementType:     "Tipo I",
			Resistance:     "210",
			Slump:          "4\"",
		},
		SiloName:   "Silo 1",
		ClientName: "Constructora Andina",
		DriverName: "Juan Pérez",
		Driver:     &entity.Driver{Name: "Juan Pérez", License: "Q123", TruckPlate: "ABC-123"},
	}

	out, err := g.GenerateDeliveryNote(context.Background(), note)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateDeliveryNote_SinDespacho(t *testing.T) {
	_, err := NewDeliveryNoteGenerator("Planta").GenerateDeliveryNote(context.Background(), inventory.DeliveryNote{})
	assert.Error(t, err)
}
