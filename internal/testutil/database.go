package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database, skipping the test when
// it is not reachable. Override the DSN with TEST_DATABASE_DSN; the default
// expects a local MySQL with a crpm_test schema.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/crpm_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Sales", "OrderSequence", "Products", "Customers"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createCustomersTable := `
	CREATE TABLE IF NOT EXISTS Customers (
		CustomerKey INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		Name VARCHAR(255) NOT NULL,
		Gender VARCHAR(20),
		City VARCHAR(100),
		State VARCHAR(100),
		Country VARCHAR(100),
		Age INT,
		AgeRange VARCHAR(20)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS Products (
		ProductKey INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		ProductName VARCHAR(255) NOT NULL,
		Brand VARCHAR(100),
		Color VARCHAR(50),
		UnitCostUSD DECIMAL(10,2) DEFAULT 0.00,
		UnitPriceUSD DECIMAL(10,2) DEFAULT 0.00,
		Subcategory VARCHAR(100),
		Category VARCHAR(100),
		StockLevel INT NOT NULL DEFAULT 0,
		IsActive TINYINT(1) NOT NULL DEFAULT 1
	)`

	createSalesTable := `
	CREATE TABLE IF NOT EXISTS Sales (
		OrderNumber BIGINT NOT NULL,
		LineItem INT NOT NULL,
		OrderDate DATE NOT NULL,
		CustomerKey INT NOT NULL,
		ProductKey INT,
		Quantity INT,
		PRIMARY KEY (OrderNumber, LineItem)
	)`

	createOrderSequenceTable := `
	CREATE TABLE IF NOT EXISTS OrderSequence (
		Name VARCHAR(50) NOT NULL PRIMARY KEY,
		Value BIGINT NOT NULL
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Customers", createCustomersTable},
		{"Products", createProductsTable},
		{"Sales", createSalesTable},
		{"OrderSequence", createOrderSequenceTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertTestCustomer seeds one customer row and returns its key.
func InsertTestCustomer(t *testing.T, db *sql.DB, name string, age int) int {
	result, err := db.Exec(
		`INSERT INTO Customers (Name, Gender, City, State, Country, Age, AgeRange)
		 VALUES (?, 'Other', 'Springfield', 'IL', 'USA', ?, '30-39')`,
		name, age,
	)
	if err != nil {
		t.Fatalf("failed to insert test customer: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read customer key: %v", err)
	}
	return int(id)
}

// InsertTestProduct seeds one product row and returns its key.
func InsertTestProduct(t *testing.T, db *sql.DB, name string, stock int, price float64) int {
	result, err := db.Exec(
		`INSERT INTO Products (ProductName, Brand, Color, UnitCostUSD, UnitPriceUSD,
		                       Subcategory, Category, StockLevel, IsActive)
		 VALUES (?, 'Acme', 'Blue', ?, ?, 'Widgets', 'Hardware', ?, 1)`,
		name, price/2, price, stock,
	)
	if err != nil {
		t.Fatalf("failed to insert test product: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read product key: %v", err)
	}
	return int(id)
}
