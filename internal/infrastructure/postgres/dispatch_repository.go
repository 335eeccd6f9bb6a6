package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

const dispatchColumns = `d.id, d.dispatch_number, d.silo_id, d.client_ref, d.driver_ref, d.quantity_m3, d.quantity_kg,
	d.dispatch_date, d.delivery_address, d.resistance, d.cement_type, d.slump, d.notes, d.created_at, d.updated_at`

// DispatchRepo implementación de DispatchRepository sobre PostgreSQL.
type DispatchRepo struct {
	q Querier
}

// NewDispatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDispatchRepository(q Querier) *DispatchRepo {
	return &DispatchRepo{q: q}
}

func scanDispatch(row pgx.Row) (*entity.Dispatch, error) {
	var (
		d                    entity.Dispatch
		clientRef, driverRef string
	)
	err := row.Scan(&d.ID, &d.DispatchNumber, &d.SiloID, &clientRef, &driverRef, &d.QuantityM3, &d.QuantityKg,
		&d.DispatchDate, &d.DeliveryAddress, &d.Resistance, &d.CementType, &d.Slump, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Client = entity.ParseReference(clientRef)
	d.Driver = entity.ParseReference(driverRef)
	return &d, nil
}

// Create inserta el despacho.
func (r *DispatchRepo) Create(ctx context.Context, d *entity.Dispatch) error {
	query := `
		INSERT INTO dispatches (id, dispatch_number, silo_id, client_ref, driver_ref, quantity_m3, quantity_kg,
			dispatch_date, delivery_address, resistance, cement_type, slump, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.DispatchNumber, d.SiloID, d.Client.Encode(), d.Driver.Encode(), d.QuantityM3, d.QuantityKg,
		d.DispatchDate, d.DeliveryAddress, d.Resistance, d.CementType, d.Slump, d.Notes, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert dispatch: %w", err)
	}
	return nil
}

// GetByID obtiene un despacho. Devuelve (nil, nil) si no existe.
func (r *DispatchRepo) GetByID(ctx context.Context, id string) (*entity.Dispatch, error) {
	if !validID(id) {
		return nil, nil
	}
	d, err := scanDispatch(r.q.QueryRow(ctx, `SELECT `+dispatchColumns+` FROM dispatches d WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispatch: %w", err)
	}
	return d, nil
}

// Update reemplaza los campos editables del despacho.
func (r *DispatchRepo) Update(ctx context.Context, d *entity.Dispatch) error {
	query := `
		UPDATE dispatches SET silo_id = $2, client_ref = $3, driver_ref = $4, quantity_m3 = $5, quantity_kg = $6,
			dispatch_date = $7, delivery_address = $8, resistance = $9, cement_type = $10, slump = $11,
			notes = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.SiloID, d.Client.Encode(), d.Driver.Encode(), d.QuantityM3, d.QuantityKg,
		d.DispatchDate, d.DeliveryAddress, d.Resistance, d.CementType, d.Slump, d.Notes, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dispatch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila. Sin fila afectada devuelve domain.ErrNotFound.
func (r *DispatchRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM dispatches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dispatch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista despachos (más recientes primero) y el total que cumple el filtro.
func (r *DispatchRepo) List(ctx context.Context, f entity.DispatchFilter) ([]*entity.Dispatch, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.From != nil {
		add("d.dispatch_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("d.dispatch_date < $%d", *f.To)
	}
	if f.SiloID != "" {
		add("d.silo_id::text = $%d", f.SiloID)
	}
	if f.ClientID != "" {
		add("d.client_ref = $%d", f.ClientID)
	}
	if f.DriverID != "" {
		add("d.driver_ref = $%d", f.DriverID)
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := len(args)
		where = append(where, fmt.Sprintf(`(d.dispatch_number ILIKE $%[1]d OR d.delivery_address ILIKE $%[1]d
			OR d.notes ILIKE $%[1]d OR d.client_ref ILIKE $%[1]d OR d.driver_ref ILIKE $%[1]d
			OR c.name ILIKE $%[1]d OR dr.name ILIKE $%[1]d)`, n))
	}
	from := `FROM dispatches d
		LEFT JOIN clients c ON c.id::text = d.client_ref
		LEFT JOIN drivers dr ON dr.id::text = d.driver_ref`
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) `+from+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count dispatches: %w", err)
	}

	query := `SELECT ` + dispatchColumns + ` ` + from + cond + ` ORDER BY d.dispatch_date DESC, d.created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list dispatches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dispatch
	for rows.Next() {
		d, err := scanDispatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan dispatch: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// DailyTotals agrupa m³ despachados por día en [from, to).
func (r *DispatchRepo) DailyTotals(ctx context.Context, from, to time.Time) ([]entity.DailyTotal, error) {
	query := `
		SELECT date_trunc('day', dispatch_date) AS day, COALESCE(SUM(quantity_m3), 0), count(*)
		FROM dispatches
		WHERE dispatch_date >= $1 AND dispatch_date < $2
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()
	var out []entity.DailyTotal
	for rows.Next() {
		var t entity.DailyTotal
		if err := rows.Scan(&t.Date, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// NextNumber toma el siguiente valor de la secuencia (DESP-001, DESP-002, ...).
func (r *DispatchRepo) NextNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('dispatch_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next dispatch number: %w", err)
	}
	return fmt.Sprintf("DESP-%03d", n), nil
}
