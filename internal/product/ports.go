package product

import (
	"context"

	"crpm/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, p domain.Product) (int, error)
	FindByKey(ctx context.Context, productKey int) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	UpdateStatus(ctx context.Context, productKey int, isActive bool) error
}
