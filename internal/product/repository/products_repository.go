package repository

import (
	"context"
	"database/sql"
	"fmt"

	"crpm/internal/domain"
	"crpm/internal/errors"
)

type MySQLProductsRepository struct {
	db *sql.DB
}

func NewMySQLProductsRepository(db *sql.DB) *MySQLProductsRepository {
	return &MySQLProductsRepository{db: db}
}

func (r *MySQLProductsRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	query := `
		INSERT INTO Products (ProductName, Brand, Color, UnitCostUSD, UnitPriceUSD,
		                      Subcategory, Category, StockLevel, IsActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ProductName, p.Brand, p.Color, p.UnitCostUSD, p.UnitPriceUSD,
		p.Subcategory, p.Category, p.StockLevel, p.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLProductsRepository) FindByKey(ctx context.Context, productKey int) (*domain.Product, error) {
	query := `
		SELECT ProductKey, ProductName, Brand, Color, UnitCostUSD, UnitPriceUSD,
		       Subcategory, Category, StockLevel, IsActive
		FROM Products
		WHERE ProductKey = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, productKey).Scan(
		&p.ProductKey, &p.ProductName, &p.Brand, &p.Color,
		&p.UnitCostUSD, &p.UnitPriceUSD, &p.Subcategory, &p.Category,
		&p.StockLevel, &p.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with key %d not found", productKey))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by key: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductsRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ProductKey, ProductName, Brand, Color, UnitCostUSD, UnitPriceUSD,
		       Subcategory, Category, StockLevel, IsActive
		FROM Products
		ORDER BY ProductKey
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ProductKey, &p.ProductName, &p.Brand, &p.Color,
			&p.UnitCostUSD, &p.UnitPriceUSD, &p.Subcategory, &p.Category,
			&p.StockLevel, &p.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductsRepository) UpdateStatus(ctx context.Context, productKey int, isActive bool) error {
	query := `UPDATE Products SET IsActive = ? WHERE ProductKey = ?`

	result, err := r.db.ExecContext(ctx, query, isActive, productKey)
	if err != nil {
		return fmt.Errorf("updating product status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with key %d not found", productKey))
	}

	return nil
}

func (r *MySQLProductsRepository) SelectStockLevel(ctx context.Context, productKey int) (int, error) {
	query := `SELECT StockLevel FROM Products WHERE ProductKey = ?`

	var stock int
	err := r.db.QueryRowContext(ctx, query, productKey).Scan(&stock)

	if err == sql.ErrNoRows {
		return 0, errors.NewNotFoundError(fmt.Sprintf("product with key %d not found", productKey))
	}
	if err != nil {
		return 0, errors.NewStorageError("querying stock level", err)
	}

	return stock, nil
}

// DecrementStockLevel applies the decrement only when enough stock remains,
// in one statement, so concurrent orders cannot drive StockLevel negative.
// Returns false when no row matched, i.e. the product is missing or short.
func (r *MySQLProductsRepository) DecrementStockLevel(ctx context.Context, productKey, quantity int) (bool, error) {
	query := `
		UPDATE Products
		SET StockLevel = StockLevel - ?
		WHERE ProductKey = ? AND StockLevel >= ?
	`

	result, err := r.db.ExecContext(ctx, query, quantity, productKey, quantity)
	if err != nil {
		return false, errors.NewStorageError("decrementing stock level", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewStorageError("getting rows affected", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLProductsRepository) IncrementStockLevel(ctx context.Context, productKey, quantity int) error {
	query := `UPDATE Products SET StockLevel = StockLevel + ? WHERE ProductKey = ?`

	result, err := r.db.ExecContext(ctx, query, quantity, productKey)
	if err != nil {
		return errors.NewStorageError("incrementing stock level", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("getting rows affected", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with key %d not found", productKey))
	}

	return nil
}
