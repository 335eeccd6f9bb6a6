package filestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
)

// --- silos ---

type siloRepo struct{ ss *session }

func (r *siloRepo) Create(ctx context.Context, silo *entity.Silo) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.silos[silo.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, s := range db.silos {
			if strings.EqualFold(s.Name, silo.Name) {
				return domain.ErrDuplicate
			}
		}
		db.silos[silo.ID] = *silo
		return nil
	})
}

func (r *siloRepo) GetByID(ctx context.Context, id string) (*entity.Silo, error) {
	var out *entity.Silo
	err := r.ss.read(func(db *dataset) error {
		if s, ok := db.silos[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el store completo ya está bloqueado.
func (r *siloRepo) GetForUpdate(ctx context.Context, id string) (*entity.Silo, error) {
	return r.GetByID(ctx, id)
}

func (r *siloRepo) Update(ctx context.Context, silo *entity.Silo) error {
	return r.ss.write(func(db *dataset) error {
		cur, ok := db.silos[silo.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, s := range db.silos {
			if s.ID != silo.ID && strings.EqualFold(s.Name, silo.Name) {
				return domain.ErrDuplicate
			}
		}
		if silo.Capacity.LessThan(cur.CurrentStock) {
			return domain.ErrCapacityExceeded
		}
		cur.Name = silo.Name
		cur.Capacity = silo.Capacity
		cur.MinStock = silo.MinStock
		cur.Status = silo.Status
		cur.UpdatedAt = silo.UpdatedAt
		db.silos[silo.ID] = cur
		return nil
	})
}

func (r *siloRepo) List(ctx context.Context) ([]*entity.Silo, error) {
	var out []*entity.Silo
	err := r.ss.read(func(db *dataset) error {
		list := sortedValues(db.silos, func(a, b entity.Silo) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
		out = make([]*entity.Silo, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, err
}

func (r *siloRepo) Delete(ctx context.Context, id string) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.silos[id]; !ok {
			return domain.ErrNotFound
		}
		delete(db.silos, id)
		return nil
	})
}

func (r *siloRepo) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (*entity.Silo, error) {
	var out entity.Silo
	err := r.ss.write(func(db *dataset) error {
		s, ok := db.silos[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.CurrentStock = s.CurrentStock.Add(delta)
		s.UpdatedAt = time.Now()
		db.silos[id] = s
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *siloRepo) Fill(ctx context.Context, id string, amount decimal.Decimal) (*entity.Silo, error) {
	var out entity.Silo
	err := r.ss.write(func(db *dataset) error {
		s, ok := db.silos[id]
		if !ok {
			return domain.ErrNotFound
		}
		if s.CurrentStock.Add(amount).GreaterThan(s.Capacity) {
			return domain.ErrCapacityExceeded
		}
		now := time.Now()
		s.CurrentStock = s.CurrentStock.Add(amount)
		s.LastRefillAt = &now
		s.UpdatedAt = now
		db.silos[id] = s
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// --- despachos ---

type dispatchRepo struct{ ss *session }

func (r *dispatchRepo) Create(ctx context.Context, d *entity.Dispatch) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.dispatches[d.ID]; ok {
			return domain.ErrDuplicate
		}
		db.dispatches[d.ID] = *d
		return nil
	})
}

func (r *dispatchRepo) GetByID(ctx context.Context, id string) (*entity.Dispatch, error) {
	var out *entity.Dispatch
	err := r.ss.read(func(db *dataset) error {
		if d, ok := db.dispatches[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *dispatchRepo) Update(ctx context.Context, d *entity.Dispatch) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.dispatches[d.ID]; !ok {
			return domain.ErrNotFound
		}
		db.dispatches[d.ID] = *d
		return nil
	})
}

func (r *dispatchRepo) Delete(ctx context.Context, id string) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.dispatches[id]; !ok {
			return domain.ErrNotFound
		}
		delete(db.dispatches, id)
		return nil
	})
}

func (r *dispatchRepo) List(ctx context.Context, f entity.DispatchFilter) ([]*entity.Dispatch, int, error) {
	var (
		out   []*entity.Dispatch
		total int
	)
	err := r.ss.read(func(db *dataset) error {
		search := strings.ToLower(f.Search)
		matched := make(map[string]entity.Dispatch)
		for id, d := range db.dispatches {
			if matchDispatch(db, d, f, search) {
				matched[id] = d
			}
		}
		list := sortedValues(matched, func(a, b entity.Dispatch) bool {
			if !a.DispatchDate.Equal(b.DispatchDate) {
				return a.DispatchDate.After(b.DispatchDate)
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
		total = len(list)
		list = page(list, f.Limit, f.Offset)
		out = make([]*entity.Dispatch, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, total, err
}

func matchDispatch(db *dataset, d entity.Dispatch, f entity.DispatchFilter, search string) bool {
	if f.From != nil && d.DispatchDate.Before(*f.From) {
		return false
	}
	if f.To != nil && !d.DispatchDate.Before(*f.To) {
		return false
	}
	if f.SiloID != "" && d.SiloID != f.SiloID {
		return false
	}
	if f.ClientID != "" && d.Client.Encode() != f.ClientID {
		return false
	}
	if f.DriverID != "" && d.Driver.Encode() != f.DriverID {
		return false
	}
	if search == "" {
		return true
	}
	fields := []string{d.DispatchNumber, d.DeliveryAddress, d.Notes, d.Client.Label, d.Driver.Label}
	if c, ok := db.clients[d.Client.ID]; ok && !d.Client.IsManual() {
		fields = append(fields, c.Name)
	}
	if dr, ok := db.drivers[d.Driver.ID]; ok && !d.Driver.IsManual() {
		fields = append(fields, dr.Name)
	}
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func (r *dispatchRepo) DailyTotals(ctx context.Context, from, to time.Time) ([]entity.DailyTotal, error) {
	var out []entity.DailyTotal
	err := r.ss.read(func(db *dataset) error {
		byDay := map[string]*entity.DailyTotal{}
		for _, d := range db.dispatches {
			if d.DispatchDate.Before(from) || !d.DispatchDate.Before(to) {
				continue
			}
			day := time.Date(d.DispatchDate.Year(), d.DispatchDate.Month(), d.DispatchDate.Day(), 0, 0, 0, 0, d.DispatchDate.Location())
			key := day.Format("2006-01-02")
			t, ok := byDay[key]
			if !ok {
				t = &entity.DailyTotal{Date: day, Total: decimal.Zero}
				byDay[key] = t
			}
			t.Total = t.Total.Add(d.QuantityM3)
			t.Count++
		}
		for _, t := range sortedValues(byDay, func(a, b *entity.DailyTotal) bool { return a.Date.Before(b.Date) }) {
			out = append(out, *t)
		}
		return nil
	})
	return out, err
}

func (r *dispatchRepo) NextNumber(ctx context.Context) (string, error) {
	var n int
	err := r.ss.write(func(db *dataset) error {
		db.dispatchSeq++
		n = db.dispatchSeq
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DESP-%03d", n), nil
}

// --- clientes ---

type clientRepo struct{ ss *session }

func (r *clientRepo) Create(ctx context.Context, c *entity.Client) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		db.clients[c.ID] = *c
		return nil
	})
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.ss.read(func(db *dataset) error {
		if c, ok := db.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *clientRepo) Update(ctx context.Context, c *entity.Client) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.clients[c.ID]; !ok {
			return domain.ErrNotFound
		}
		db.clients[c.ID] = *c
		return nil
	})
}

func (r *clientRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.ss.read(func(db *dataset) error {
		search = strings.ToLower(strings.TrimSpace(search))
		matched := map[string]entity.Client{}
		for id, c := range db.clients {
			if search == "" || strings.Contains(strings.ToLower(c.Name), search) || strings.Contains(strings.ToLower(c.Document), search) {
				matched[id] = c
			}
		}
		list := page(sortedValues(matched, func(a, b entity.Client) bool { return a.Name < b.Name }), limit, offset)
		out = make([]*entity.Client, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, err
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.clients[id]; !ok {
			return domain.ErrNotFound
		}
		delete(db.clients, id)
		return nil
	})
}

// --- conductores ---

type driverRepo struct{ ss *session }

func (r *driverRepo) Create(ctx context.Context, d *entity.Driver) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.drivers[d.ID]; ok {
			return domain.ErrDuplicate
		}
		db.drivers[d.ID] = *d
		return nil
	})
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*entity.Driver, error) {
	var out *entity.Driver
	err := r.ss.read(func(db *dataset) error {
		if d, ok := db.drivers[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *driverRepo) Update(ctx context.Context, d *entity.Driver) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.drivers[d.ID]; !ok {
			return domain.ErrNotFound
		}
		db.drivers[d.ID] = *d
		return nil
	})
}

func (r *driverRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Driver, error) {
	var out []*entity.Driver
	err := r.ss.read(func(db *dataset) error {
		search = strings.ToLower(strings.TrimSpace(search))
		matched := map[string]entity.Driver{}
		for id, d := range db.drivers {
			if search == "" || strings.Contains(strings.ToLower(d.Name), search) || strings.Contains(strings.ToLower(d.TruckPlate), search) {
				matched[id] = d
			}
		}
		list := page(sortedValues(matched, func(a, b entity.Driver) bool { return a.Name < b.Name }), limit, offset)
		out = make([]*entity.Driver, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, err
}

func (r *driverRepo) Delete(ctx context.Context, id string) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.drivers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(db.drivers, id)
		return nil
	})
}

// --- ingresos de cemento ---

type cementInputRepo struct{ ss *session }

func (r *cementInputRepo) Create(ctx context.Context, in *entity.CementInput) error {
	return r.ss.write(func(db *dataset) error {
		if _, ok := db.silos[in.SiloID]; !ok {
			return domain.ErrNotFound
		}
		db.cementInputs[in.ID] = *in
		return nil
	})
}

func (r *cementInputRepo) ListBySilo(ctx context.Context, siloID string, limit, offset int) ([]*entity.CementInput, error) {
	var out []*entity.CementInput
	err := r.ss.read(func(db *dataset) error {
		matched := map[string]entity.CementInput{}
		for id, in := range db.cementInputs {
			if in.SiloID == siloID {
				matched[id] = in
			}
		}
		list := page(sortedValues(matched, func(a, b entity.CementInput) bool { return a.InputDate.After(b.InputDate) }), limit, offset)
		out = make([]*entity.CementInput, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, err
}
