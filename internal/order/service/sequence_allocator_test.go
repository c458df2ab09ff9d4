package service

import (
	"context"
	"testing"
)

type mockSequenceRepository struct {
	NextOrderNumberFunc func(ctx context.Context) (int64, error)
}

func (m *mockSequenceRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	return m.NextOrderNumberFunc(ctx)
}

type mockLineItemRepository struct {
	MaxLineItemFunc func(ctx context.Context, orderNumber int64) (int, error)
}

func (m *mockLineItemRepository) MaxLineItem(ctx context.Context, orderNumber int64) (int, error) {
	return m.MaxLineItemFunc(ctx, orderNumber)
}

func TestNextOrderNumber_DelegatesToSequence(t *testing.T) {
	sequences := &mockSequenceRepository{
		NextOrderNumberFunc: func(ctx context.Context) (int64, error) {
			return 101, nil
		},
	}

	allocator := NewSequenceAllocator(sequences, &mockLineItemRepository{})

	got, err := allocator.NextOrderNumber(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 101 {
		t.Errorf("expected order number 101, got %d", got)
	}
}

func TestNextLineItem_EmptyOrder(t *testing.T) {
	lines := &mockLineItemRepository{
		MaxLineItemFunc: func(ctx context.Context, orderNumber int64) (int, error) {
			return 0, nil
		},
	}

	allocator := NewSequenceAllocator(&mockSequenceRepository{}, lines)

	got, err := allocator.NextLineItem(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 1 {
		t.Errorf("expected first line item to be 1, got %d", got)
	}
}

func TestNextLineItem_Increments(t *testing.T) {
	lines := &mockLineItemRepository{
		MaxLineItemFunc: func(ctx context.Context, orderNumber int64) (int, error) {
			return 3, nil
		},
	}

	allocator := NewSequenceAllocator(&mockSequenceRepository{}, lines)

	got, err := allocator.NextLineItem(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 4 {
		t.Errorf("expected line item 4, got %d", got)
	}
}
