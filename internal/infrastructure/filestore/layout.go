package filestore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

// fileLayout forma persistida. Cada colección es un arreglo JSON.
type fileLayout struct {
	Clients      []clientRecord      `json:"clients"`
	Drivers      []driverRecord      `json:"drivers"`
	Silos        []siloRecord        `json:"silos"`
	Dispatches   []dispatchRecord    `json:"dispatches"`
	CementInputs []cementInputRecord `json:"cement_inputs"`
	DispatchSeq  int                 `json:"dispatch_seq,omitempty"`
}

type clientRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type driverRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	License    string    `json:"license,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	TruckPlate string    `json:"truck_plate,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type siloRecord struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Capacity     decimal.Decimal `json:"capacity"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Status       string          `json:"status,omitempty"`
	LastRefillAt *time.Time      `json:"last_refill_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// dispatchRecord guarda client_id/driver_id en la forma de Reference.Encode
// (ID del registro o "manual_<nombre>").
type dispatchRecord struct {
	ID              string          `json:"id"`
	DispatchNumber  string          `json:"dispatch_number"`
	SiloID          string          `json:"silo_id"`
	ClientID        string          `json:"client_id"`
	DriverID        string          `json:"driver_id"`
	QuantityM3      decimal.Decimal `json:"quantity_m3"`
	QuantityKg      decimal.Decimal `json:"quantity_kg"`
	DispatchDate    time.Time       `json:"dispatch_date"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	Resistance      string          `json:"resistance,omitempty"`
	CementType      string          `json:"cement_type,omitempty"`
	Slump           string          `json:"slump,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type cementInputRecord struct {
	ID            string          `json:"id"`
	SiloID        string          `json:"silo_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Supplier      string          `json:"supplier,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	InputDate     time.Time       `json:"input_date"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (f *fileLayout) toDataset() *dataset {
	db := newDataset()
	for _, r := range f.Clients {
		db.clients[r.ID] = entity.Client(r)
	}
	for _, r := range f.Drivers {
		db.drivers[r.ID] = entity.Driver(r)
	}
	for _, r := range f.Silos {
		s := entity.Silo(r)
		if s.Status == "" {
			s.Status = entity.SiloStatusActive
		}
		db.silos[r.ID] = s
	}
	for _, r := range f.Dispatches {
		db.dispatches[r.ID] = entity.Dispatch{
			ID:              r.ID,
			DispatchNumber:  r.DispatchNumber,
			SiloID:          r.SiloID,
			Client:          entity.ParseReference(r.ClientID),
			Driver:          entity.ParseReference(r.DriverID),
			QuantityM3:      r.QuantityM3,
			QuantityKg:      r.QuantityKg,
			DispatchDate:    r.DispatchDate,
			DeliveryAddress: r.DeliveryAddress,
			Resistance:      r.Resistance,
			CementType:      r.CementType,
			Slump:           r.Slump,
			Notes:           r.Notes,
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
		}
	}
	for _, r := range f.CementInputs {
		db.cementInputs[r.ID] = entity.CementInput(r)
	}
	db.dispatchSeq = f.DispatchSeq
	if n := len(db.dispatches); db.dispatchSeq < n {
		db.dispatchSeq = n
	}
	return db
}

func fromDataset(db *dataset) fileLayout {
	f := fileLayout{
		Clients:      []clientRecord{},
		Drivers:      []driverRecord{},
		Silos:        []siloRecord{},
		Dispatches:   []dispatchRecord{},
		CementInputs: []cementInputRecord{},
		DispatchSeq:  db.dispatchSeq,
	}
	for _, c := range sortedValues(db.clients, func(a, b entity.Client) bool { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }) {
		f.Clients = append(f.Clients, clientRecord(c))
	}
	for _, d := range sortedValues(db.drivers, func(a, b entity.Driver) bool { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }) {
		f.Drivers = append(f.Drivers, driverRecord(d))
	}
	for _, s := range sortedValues(db.silos, func(a, b entity.Silo) bool { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }) {
		f.Silos = append(f.Silos, siloRecord(s))
	}
	for _, d := range sortedValues(db.dispatches, func(a, b entity.Dispatch) bool { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }) {
		f.Dispatches = append(f.Dispatches, dispatchRecord{
			ID:              d.ID,
			DispatchNumber:  d.DispatchNumber,
			SiloID:          d.SiloID,
			ClientID:        d.Client.Encode(),
			DriverID:        d.Driver.Encode(),
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
		})
	}
	for _, in := range sortedValues(db.cementInputs, func(a, b entity.CementInput) bool { return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }) {
		f.CementInputs = append(f.CementInputs, cementInputRecord(in))
	}
	return f
}

func byCreated(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return idA < idB
}
