package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"crpm/internal/domain"
	"crpm/internal/errors"
)

const mysqlErrDuplicateEntry = 1062

type MySQLSalesRepository struct {
	db *sql.DB
}

func NewMySQLSalesRepository(db *sql.DB) *MySQLSalesRepository {
	return &MySQLSalesRepository{db: db}
}

// InsertLine writes one Sales row. A duplicate (OrderNumber, LineItem) is
// reported as a SequenceRaceError so the engine can tell an identifier
// collision apart from an ordinary storage failure.
func (r *MySQLSalesRepository) InsertLine(ctx context.Context, line domain.SaleLine) error {
	query := `
		INSERT INTO Sales (OrderNumber, LineItem, OrderDate, CustomerKey, ProductKey, Quantity)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		line.OrderNumber, line.LineItem, line.OrderDate, line.CustomerKey,
		line.ProductKey, line.Quantity,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if stderrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return errors.NewSequenceRaceError(fmt.Sprintf(
				"line item %d already exists for order %d", line.LineItem, line.OrderNumber))
		}
		return errors.NewStorageError("inserting sale line", err)
	}

	return nil
}

func (r *MySQLSalesRepository) MaxLineItem(ctx context.Context, orderNumber int64) (int, error) {
	query := `SELECT COALESCE(MAX(LineItem), 0) FROM Sales WHERE OrderNumber = ?`

	var maxLine int
	if err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(&maxLine); err != nil {
		return 0, errors.NewStorageError("querying max line item", err)
	}

	return maxLine, nil
}

func (r *MySQLSalesRepository) FindByOrderNumber(ctx context.Context, orderNumber int64) ([]domain.SaleLine, error) {
	query := `
		SELECT OrderNumber, LineItem, OrderDate, CustomerKey, ProductKey, Quantity
		FROM Sales
		WHERE OrderNumber = ?
		ORDER BY LineItem
	`

	rows, err := r.db.QueryContext(ctx, query, orderNumber)
	if err != nil {
		return nil, errors.NewStorageError("querying sale lines", err)
	}
	defer rows.Close()

	var lines []domain.SaleLine
	for rows.Next() {
		var line domain.SaleLine
		err := rows.Scan(
			&line.OrderNumber, &line.LineItem, &line.OrderDate,
			&line.CustomerKey, &line.ProductKey, &line.Quantity,
		)
		if err != nil {
			return nil, errors.NewStorageError("scanning sale line row", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterating sale line rows", err)
	}

	if len(lines) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %d not found", orderNumber))
	}

	return lines, nil
}
