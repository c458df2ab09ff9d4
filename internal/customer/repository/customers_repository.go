package repository

import (
	"context"
	"database/sql"
	"fmt"

	"crpm/internal/domain"
	"crpm/internal/errors"
)

type MySQLCustomersRepository struct {
	db *sql.DB
}

func NewMySQLCustomersRepository(db *sql.DB) *MySQLCustomersRepository {
	return &MySQLCustomersRepository{db: db}
}

func (r *MySQLCustomersRepository) Insert(ctx context.Context, c domain.Customer) (int, error) {
	query := `
		INSERT INTO Customers (Name, Gender, City, State, Country, Age, AgeRange)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Gender, c.City, c.State, c.Country, c.Age, c.AgeRange,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLCustomersRepository) FindByKey(ctx context.Context, customerKey int) (*domain.Customer, error) {
	query := `
		SELECT CustomerKey, Name, Gender, City, State, Country, Age, AgeRange
		FROM Customers
		WHERE CustomerKey = ?
	`

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, customerKey).Scan(
		&c.CustomerKey, &c.Name, &c.Gender, &c.City, &c.State,
		&c.Country, &c.Age, &c.AgeRange,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with key %d not found", customerKey))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by key: %w", err)
	}

	return &c, nil
}

func (r *MySQLCustomersRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `
		SELECT CustomerKey, Name, Gender, City, State, Country, Age, AgeRange
		FROM Customers
		ORDER BY CustomerKey
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		err := rows.Scan(
			&c.CustomerKey, &c.Name, &c.Gender, &c.City, &c.State,
			&c.Country, &c.Age, &c.AgeRange,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}
