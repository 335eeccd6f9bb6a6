package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implementación de DriverRepository sobre PostgreSQL.
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

func (r *DriverRepo) Create(ctx context.Context, d *entity.Driver) error {
	query := `
		INSERT INTO drivers (id, name, license, phone, truck_plate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, d.License, d.Phone, d.TruckPlate, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func (r *DriverRepo) GetByID(ctx context.Context, id string) (*entity.Driver, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id, name, license, phone, truck_plate, created_at, updated_at
		FROM drivers WHERE id = $1`
	var d entity.Driver
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.License, &d.Phone, &d.TruckPlate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

func (r *DriverRepo) Update(ctx context.Context, d *entity.Driver) error {
	query := `
		UPDATE drivers SET name = $2, license = $3, phone = $4, truck_plate = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, d.ID, d.Name, d.License, d.Phone, d.TruckPlate, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DriverRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Driver, error) {
	query := `
		SELECT id, name, license, phone, truck_plate, created_at, updated_at
		FROM drivers
		WHERE $1 = '' OR name ILIKE $2 OR truck_plate ILIKE $2
		ORDER BY name
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, search, likePattern(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.License, &d.Phone, &d.TruckPlate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DriverRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
