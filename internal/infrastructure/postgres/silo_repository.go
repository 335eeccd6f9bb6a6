package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

var _ repository.SiloRepository = (*SiloRepo)(nil)

const siloColumns = `id, name, capacity, current_stock, min_stock, status, last_refill_at, created_at, updated_at`

// SiloRepo implementación de SiloRepository sobre PostgreSQL (usable con pool o tx).
type SiloRepo struct {
	q Querier
}

// NewSiloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiloRepository(q Querier) *SiloRepo {
	return &SiloRepo{q: q}
}

func scanSilo(row pgx.Row) (*entity.Silo, error) {
	var s entity.Silo
	err := row.Scan(&s.ID, &s.Name, &s.Capacity, &s.CurrentStock, &s.MinStock, &s.Status,
		&s.LastRefillAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un silo nuevo con su stock inicial.
func (r *SiloRepo) Create(ctx context.Context, s *entity.Silo) error {
	query := `
		INSERT INTO silos (id, name, capacity, current_stock, min_stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Capacity, s.CurrentStock, s.MinStock, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert silo: %w", err)
	}
	return nil
}

// GetByID obtiene un silo por ID. Devuelve (nil, nil) si no existe.
func (r *SiloRepo) GetByID(ctx context.Context, id string) (*entity.Silo, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSilo(r.q.QueryRow(ctx, `SELECT `+siloColumns+` FROM silos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get silo: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el silo y bloquea la fila (SELECT FOR UPDATE). Devuelve (nil, nil) si no existe.
func (r *SiloRepo) GetForUpdate(ctx context.Context, id string) (*entity.Silo, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSilo(r.q.QueryRow(ctx, `SELECT `+siloColumns+` FROM silos WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get silo for update: %w", err)
	}
	return s, nil
}

// Update persiste nombre, capacidad, mínimo y estado. current_stock no se escribe.
// La capacidad se compara con el stock de la fila en el mismo UPDATE.
func (r *SiloRepo) Update(ctx context.Context, s *entity.Silo) error {
	if !validID(s.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE silos SET name = $2, capacity = $3, min_stock = $4, status = $5, updated_at = $6
		WHERE id = $1 AND $3 >= current_stock`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Capacity, s.MinStock, s.Status, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update silo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOr(ctx, s.ID, domain.ErrCapacityExceeded)
	}
	return nil
}

// missingOr devuelve domain.ErrNotFound si el silo no existe, o err si existe.
func (r *SiloRepo) missingOr(ctx context.Context, id string, err error) error {
	var exists bool
	if qErr := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM silos WHERE id = $1)`, id).Scan(&exists); qErr != nil {
		return fmt.Errorf("check silo: %w", qErr)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return err
}

// List lista todos los silos ordenados por nombre.
func (r *SiloRepo) List(ctx context.Context) ([]*entity.Silo, error) {
	rows, err := r.q.Query(ctx, `SELECT `+siloColumns+` FROM silos ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list silos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Silo
	for rows.Next() {
		s, err := scanSilo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan silo: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina un silo. domain.ErrConflict si todavía tiene despachos.
func (r *SiloRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM silos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete silo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica delta relativo al valor persistido en una sola sentencia.
func (r *SiloRepo) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (*entity.Silo, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `
		UPDATE silos SET current_stock = current_stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + siloColumns
	s, err := scanSilo(r.q.QueryRow(ctx, query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adjust silo stock: %w", err)
	}
	return s, nil
}

// Fill suma amount solo si cabe en la capacidad. Sin fila afectada se distingue entre
// silo inexistente y capacidad excedida.
func (r *SiloRepo) Fill(ctx context.Context, id string, amount decimal.Decimal) (*entity.Silo, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `
		UPDATE silos SET current_stock = current_stock + $2, last_refill_at = now(), updated_at = now()
		WHERE id = $1 AND current_stock + $2 <= capacity
		RETURNING ` + siloColumns
	s, err := scanSilo(r.q.QueryRow(ctx, query, id, amount))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("fill silo: %w", err)
	}
	return nil, r.missingOr(ctx, id, domain.ErrCapacityExceeded)
}
