package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores monótonos por (clave, año) sobre la tabla counters.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de contadores. Pasar pool o tx
// (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next consume el contador con un find-and-increment atómico en un solo
// statement: el upsert con RETURNING nunca entrega el mismo valor a dos
// transacciones que hagan commit.
func (r *SequenceRepo) Next(ctx context.Context, key string, year int) (int64, error) {
	query := `
		INSERT INTO counters (key, year, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (key, year)
		DO UPDATE SET value = counters.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(ctx, query, key, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}
	return value, nil
}

// Peek devuelve el valor que Next asignaría, sin consumirlo. Solo lectura:
// bajo concurrencia el valor final puede diferir.
func (r *SequenceRepo) Peek(ctx context.Context, key string, year int) (int64, error) {
	var value int64
	err := r.q.QueryRow(ctx, `SELECT value FROM counters WHERE key = $1 AND year = $2`, key, year).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}
		return 0, fmt.Errorf("peek sequence %s: %w", key, err)
	}
	return value + 1, nil
}
