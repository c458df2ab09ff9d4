package repository

import (
	"context"
	"database/sql"

	"crpm/internal/errors"
)

const orderNumberSequence = "order_number"

type MySQLSequenceRepository struct {
	db *sql.DB
}

func NewMySQLSequenceRepository(db *sql.DB) *MySQLSequenceRepository {
	return &MySQLSequenceRepository{db: db}
}

// NextOrderNumber increments the counter row and returns the new value in a
// single statement. Concurrent callers can never observe the same value,
// unlike the MAX(OrderNumber)+1 derivation this replaces.
func (r *MySQLSequenceRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO OrderSequence (Name, Value)
		VALUES (?, LAST_INSERT_ID(1))
		ON DUPLICATE KEY UPDATE Value = LAST_INSERT_ID(Value + 1)
	`

	result, err := r.db.ExecContext(ctx, query, orderNumberSequence)
	if err != nil {
		return 0, errors.NewStorageError("incrementing order sequence", err)
	}

	next, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewStorageError("reading allocated order number", err)
	}

	return next, nil
}
