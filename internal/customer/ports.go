package customer

import (
	"context"

	"crpm/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, c domain.Customer) (int, error)
	FindByKey(ctx context.Context, customerKey int) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}
