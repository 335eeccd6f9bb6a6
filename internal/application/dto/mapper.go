package dto

import "github.com/jhoicas/planta-despachos/internal/domain/entity"

// Names nombres a mostrar por ID (silos, clientes, conductores) para armar respuestas sin join.
type Names struct {
	Silos   map[string]string
	Clients map[string]string
	Drivers map[string]string
}

func lookup(m map[string]string) func(string) (string, bool) {
	return func(id string) (string, bool) {
		name, ok := m[id]
		return name, ok
	}
}

// NewSiloResponse mapea un silo a su salida con campos derivados.
func NewSiloResponse(s *entity.Silo) SiloResponse {
	return SiloResponse{
		ID:             s.ID,
		Name:           s.Name,
		Capacity:       s.Capacity,
		CurrentStock:   s.CurrentStock,
		MinStock:       s.MinStock,
		Available:      s.Available(),
		FillPercentage: s.FillPercentage().Round(1),
		IsLow:          s.IsLow(),
		Status:         s.Status,
		LastRefillAt:   s.LastRefillAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// NewCementInputResponse mapea un ingreso de cemento.
func NewCementInputResponse(in *entity.CementInput) CementInputResponse {
	return CementInputResponse{
		ID:            in.ID,
		SiloID:        in.SiloID,
		Quantity:      in.Quantity,
		Supplier:      in.Supplier,
		ReceiptNumber: in.ReceiptNumber,
		InputDate:     in.InputDate,
		Notes:         in.Notes,
	}
}

// NewReferenceResponse resuelve una referencia a cliente/conductor.
func NewReferenceResponse(r entity.Reference, names map[string]string) ReferenceResponse {
	out := ReferenceResponse{Kind: r.Kind, Name: r.DisplayName(lookup(names))}
	if !r.IsManual() {
		out.ID = r.ID
	}
	return out
}

// NewDispatchResponse mapea un despacho resolviendo nombres con names.
func NewDispatchResponse(d *entity.Dispatch, names Names) DispatchResponse {
	return DispatchResponse{
		ID:              d.ID,
		DispatchNumber:  d.DispatchNumber,
		SiloID:          d.SiloID,
		SiloName:        names.Silos[d.SiloID],
		Client:          NewReferenceResponse(d.Client, names.Clients),
		Driver:          NewReferenceResponse(d.Driver, names.Drivers),
		QuantityM3:      d.QuantityM3,
		QuantityKg:      d.QuantityKg,
		DispatchDate:    d.DispatchDate,
		DeliveryAddress: d.DeliveryAddress,
		Resistance:      d.Resistance,
		CementType:      d.CementType,
		Slump:           d.Slump,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// NewClientResponse mapea un cliente.
func NewClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewDriverResponse mapea un conductor.
func NewDriverResponse(d *entity.Driver) DriverResponse {
	return DriverResponse{
		ID:         d.ID,
		Name:       d.Name,
		License:    d.License,
		Phone:      d.Phone,
		TruckPlate: d.TruckPlate,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
