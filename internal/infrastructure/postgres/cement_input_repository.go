package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
)

var _ repository.CementInputRepository = (*CementInputRepo)(nil)

// CementInputRepo implementación de CementInputRepository sobre PostgreSQL.
type CementInputRepo struct {
	q Querier
}

// NewCementInputRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCementInputRepository(q Querier) *CementInputRepo {
	return &CementInputRepo{q: q}
}

func (r *CementInputRepo) Create(ctx context.Context, in *entity.CementInput) error {
	query := `
		INSERT INTO cement_inputs (id, silo_id, quantity, supplier, receipt_number, input_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, in.ID, in.SiloID, in.Quantity, in.Supplier, in.ReceiptNumber, in.InputDate, in.Notes, in.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert cement input: %w", err)
	}
	return nil
}

func (r *CementInputRepo) ListBySilo(ctx context.Context, siloID string, limit, offset int) ([]*entity.CementInput, error) {
	query := `
		SELECT id, silo_id, quantity, supplier, receipt_number, input_date, notes, created_at
		FROM cement_inputs
		WHERE silo_id = $1
		ORDER BY input_date DESC
		LIMIT $2 OFFSET $3`
	if !validID(siloID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, query, siloID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cement inputs: %w", err)
	}
	defer rows.Close()
	var list []*entity.CementInput
	for rows.Next() {
		var in entity.CementInput
		if err := rows.Scan(&in.ID, &in.SiloID, &in.Quantity, &in.Supplier, &in.ReceiptNumber, &in.InputDate, &in.Notes, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cement input: %w", err)
		}
		list = append(list, &in)
	}
	return list, rows.Err()
}
