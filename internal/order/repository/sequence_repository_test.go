package repository

import (
	"context"
	"sync"
	"testing"

	"crpm/internal/testutil"
)

func TestNextOrderNumber_Monotonic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSequenceRepository(db)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		next, err := repo.NextOrderNumber(ctx)
		if err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
		if next <= prev {
			t.Errorf("expected strictly increasing values, got %d after %d", next, prev)
		}
		prev = next
	}
}

func TestNextOrderNumber_ConcurrentAllocationsAreDistinct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSequenceRepository(db)
	ctx := context.Background()

	const workers = 10

	var wg sync.WaitGroup
	results := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next, err := repo.NextOrderNumber(ctx)
			if err != nil {
				t.Errorf("concurrent allocation failed: %v", err)
				return
			}
			results <- next
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool)
	for next := range results {
		if seen[next] {
			t.Errorf("order number %d allocated twice", next)
		}
		seen[next] = true
	}
}
