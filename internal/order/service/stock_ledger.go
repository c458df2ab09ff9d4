package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"crpm/internal/errors"
)

// ErrInsufficientStock reports a decrement refused because the product has
// fewer units than requested.
var ErrInsufficientStock = stderrors.New("insufficient stock")

type StockRepository interface {
	SelectStockLevel(ctx context.Context, productKey int) (int, error)
	DecrementStockLevel(ctx context.Context, productKey, quantity int) (bool, error)
	IncrementStockLevel(ctx context.Context, productKey, quantity int) error
}

// StockLedger is the only path through which order processing reads or
// mutates Products.StockLevel.
type StockLedger struct {
	repo   StockRepository
	logger *zap.Logger
}

func NewStockLedger(repo StockRepository, logger *zap.Logger) *StockLedger {
	return &StockLedger{
		repo:   repo,
		logger: logger,
	}
}

func (l *StockLedger) CurrentStock(ctx context.Context, productKey int) (int, error) {
	return l.repo.SelectStockLevel(ctx, productKey)
}

func (l *StockLedger) HasSufficientStock(ctx context.Context, productKey, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, errors.NewValidationError(fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	stock, err := l.repo.SelectStockLevel(ctx, productKey)
	if err != nil {
		return false, err
	}

	return stock >= quantity, nil
}

// TryDecrement fuses the sufficiency check and the decrement into one
// conditional write. Returns ErrInsufficientStock when the product is short
// and a NotFoundError when it does not exist.
func (l *StockLedger) TryDecrement(ctx context.Context, productKey, quantity int) error {
	if quantity <= 0 {
		return errors.NewValidationError(fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	applied, err := l.repo.DecrementStockLevel(ctx, productKey, quantity)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	// No row matched: missing product or not enough stock. One extra read
	// on the failure path tells the two apart.
	if _, err := l.repo.SelectStockLevel(ctx, productKey); err != nil {
		return err
	}

	return ErrInsufficientStock
}

// Restore re-adds units whose decrement committed but whose sale line could
// not be written. Best effort: a failure here is logged by the caller and
// leaves stock understated rather than oversold.
func (l *StockLedger) Restore(ctx context.Context, productKey, quantity int) error {
	if quantity <= 0 {
		return errors.NewValidationError(fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	if err := l.repo.IncrementStockLevel(ctx, productKey, quantity); err != nil {
		return err
	}

	l.logger.Info("stock restored", zap.Int("productKey", productKey), zap.Int("quantity", quantity))
	return nil
}
