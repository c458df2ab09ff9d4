package repository

import (
	"context"
	"sync"
	"testing"

	"crpm/internal/domain"
	"crpm/internal/errors"
	"crpm/internal/testutil"
)

func TestInsertAndFindByKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLProductsRepository(db)
	ctx := context.Background()

	productKey, err := repo.Insert(ctx, domain.Product{
		ProductName:  "Widget",
		Brand:        "Acme",
		Color:        "Blue",
		UnitCostUSD:  9.99,
		UnitPriceUSD: 19.99,
		Subcategory:  "Widgets",
		Category:     "Hardware",
		StockLevel:   10,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	p, err := repo.FindByKey(ctx, productKey)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if p.ProductName != "Widget" || p.StockLevel != 10 || !p.IsActive {
		t.Errorf("unexpected product: %+v", p)
	}
}

func TestFindByKey_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLProductsRepository(db)

	_, err := repo.FindByKey(context.Background(), 99999)
	if _, ok := errors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLProductsRepository(db)
	ctx := context.Background()

	productKey := testutil.InsertTestProduct(t, db, "Widget", 10, 19.99)

	if err := repo.UpdateStatus(ctx, productKey, false); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	p, err := repo.FindByKey(ctx, productKey)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if p.IsActive {
		t.Errorf("expected product to be inactive")
	}

	err = repo.UpdateStatus(ctx, 99999, true)
	if _, ok := errors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError for unknown key, got %v", err)
	}
}

func TestDecrementStockLevel_Boundary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLProductsRepository(db)
	ctx := context.Background()

	productKey := testutil.InsertTestProduct(t, db, "Widget", 5, 19.99)

	// Exactly the stock level succeeds and drains to zero.
	applied, err := repo.DecrementStockLevel(ctx, productKey, 5)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if !applied {
		t.Fatalf("expected decrement of full stock to apply")
	}

	stock, err := repo.SelectStockLevel(ctx, productKey)
	if err != nil {
		t.Fatalf("select stock failed: %v", err)
	}
	if stock != 0 {
		t.Errorf("expected stock 0, got %d", stock)
	}

	// Any further decrement is refused and leaves stock untouched.
	applied, err = repo.DecrementStockLevel(ctx, productKey, 1)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if applied {
		t.Errorf("expected decrement below zero to be refused")
	}
}

func TestDecrementStockLevel_UnknownProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLProductsRepository(db)

	applied, err := repo.DecrementStockLevel(context.Background(), 99999, 1)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if applied {
		t.Errorf("expected no row to match an unknown product")
	}
}

// Two concurrent decrements against one remaining unit: exactly one must
// win and the final stock must be zero, never negative.
func TestDecrementStockLevel_ConcurrentLastUnit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLProductsRepository(db)
	ctx := context.Background()

	productKey := testutil.InsertTestProduct(t, db, "Widget", 1, 19.99)

	var wg sync.WaitGroup
	results := make(chan bool, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied, err := repo.DecrementStockLevel(ctx, productKey, 1)
			if err != nil {
				t.Errorf("concurrent decrement failed: %v", err)
				return
			}
			results <- applied
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for applied := range results {
		if applied {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly one winner, got %d", wins)
	}

	stock, err := repo.SelectStockLevel(ctx, productKey)
	if err != nil {
		t.Fatalf("select stock failed: %v", err)
	}
	if stock != 0 {
		t.Errorf("expected final stock 0, got %d", stock)
	}
}

func TestIncrementStockLevel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLProductsRepository(db)
	ctx := context.Background()

	productKey := testutil.InsertTestProduct(t, db, "Widget", 3, 19.99)

	if err := repo.IncrementStockLevel(ctx, productKey, 4); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	stock, err := repo.SelectStockLevel(ctx, productKey)
	if err != nil {
		t.Fatalf("select stock failed: %v", err)
	}
	if stock != 7 {
		t.Errorf("expected stock 7, got %d", stock)
	}
}
