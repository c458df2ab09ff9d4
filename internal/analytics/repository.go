package analytics

import (
	"context"
	"database/sql"
	"fmt"
)

type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

type ProductSales struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantitySold"`
	Revenue     float64 `json:"revenue"`
}

type AgeGroupCount struct {
	AgeRange string `json:"ageRange"`
	Count    int    `json:"customerCount"`
}

// MySQLAnalyticsRepository runs the dashboard aggregates. Read-only; it
// never writes to the relations the order engine owns.
type MySQLAnalyticsRepository struct {
	db *sql.DB
}

func NewMySQLAnalyticsRepository(db *sql.DB) *MySQLAnalyticsRepository {
	return &MySQLAnalyticsRepository{db: db}
}

func (r *MySQLAnalyticsRepository) TotalRevenue(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(SUM(Sales.Quantity * Products.UnitPriceUSD), 0)
		FROM Sales
		JOIN Products ON Sales.ProductKey = Products.ProductKey
	`

	var revenue float64
	if err := r.db.QueryRowContext(ctx, query).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("querying total revenue: %w", err)
	}

	return revenue, nil
}

func (r *MySQLAnalyticsRepository) MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error) {
	query := `
		SELECT YEAR(OrderDate), MONTH(OrderDate),
		       SUM(Sales.Quantity * Products.UnitPriceUSD)
		FROM Sales
		JOIN Products ON Sales.ProductKey = Products.ProductKey
		GROUP BY YEAR(OrderDate), MONTH(OrderDate)
		ORDER BY YEAR(OrderDate) DESC, MONTH(OrderDate) DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying monthly revenue: %w", err)
	}
	defer rows.Close()

	var results []MonthlyRevenue
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Year, &m.Month, &m.Revenue); err != nil {
			return nil, fmt.Errorf("scanning monthly revenue row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly revenue rows: %w", err)
	}

	return results, nil
}

func (r *MySQLAnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	query := `
		SELECT Products.ProductName,
		       SUM(Sales.Quantity),
		       SUM(Sales.Quantity * Products.UnitPriceUSD)
		FROM Sales
		JOIN Products ON Sales.ProductKey = Products.ProductKey
		GROUP BY Products.ProductName
		ORDER BY SUM(Sales.Quantity) DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top products: %w", err)
	}
	defer rows.Close()

	var results []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductName, &p.Quantity, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scanning top product row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top product rows: %w", err)
	}

	return results, nil
}

func (r *MySQLAnalyticsRepository) CustomersByAgeRange(ctx context.Context) ([]AgeGroupCount, error) {
	query := `
		SELECT AgeRange, COUNT(*)
		FROM Customers
		GROUP BY AgeRange
		ORDER BY AgeRange
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying customers by age range: %w", err)
	}
	defer rows.Close()

	var results []AgeGroupCount
	for rows.Next() {
		var g AgeGroupCount
		if err := rows.Scan(&g.AgeRange, &g.Count); err != nil {
			return nil, fmt.Errorf("scanning age group row: %w", err)
		}
		results = append(results, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating age group rows: %w", err)
	}

	return results, nil
}
