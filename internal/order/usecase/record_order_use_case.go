package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"crpm/internal/domain"
	"crpm/internal/dto"
	apperrors "crpm/internal/errors"
	"crpm/internal/order/service"
)

type SalesRepository interface {
	InsertLine(ctx context.Context, line domain.SaleLine) error
	FindByOrderNumber(ctx context.Context, orderNumber int64) ([]domain.SaleLine, error)
}

type SequenceAllocator interface {
	NextOrderNumber(ctx context.Context) (int64, error)
	NextLineItem(ctx context.Context, orderNumber int64) (int, error)
}

type StockLedger interface {
	TryDecrement(ctx context.Context, productKey, quantity int) error
	Restore(ctx context.Context, productKey, quantity int) error
}

type CustomerRepository interface {
	FindByKey(ctx context.Context, customerKey int) (*domain.Customer, error)
}

type RecordOrderUseCase struct {
	sales          SalesRepository
	allocator      SequenceAllocator
	ledger         StockLedger
	customers      CustomerRepository
	logger         *zap.Logger
	fulfillTimeout time.Duration
}

func NewRecordOrderUseCase(
	sales SalesRepository,
	allocator SequenceAllocator,
	ledger StockLedger,
	customers CustomerRepository,
	logger *zap.Logger,
	fulfillTimeout time.Duration,
) *RecordOrderUseCase {
	return &RecordOrderUseCase{
		sales:          sales,
		allocator:      allocator,
		ledger:         ledger,
		customers:      customers,
		logger:         logger,
		fulfillTimeout: fulfillTimeout,
	}
}

// RecordOrder allocates a new order number, writes the header row, then
// processes the requested lines in input order. Insufficient stock and
// storage failures on a line are recorded as that line's outcome and
// processing continues; committed lines are never rolled back. A failure
// before or at the header write aborts the whole call with nothing visible.
func (uc *RecordOrderUseCase) RecordOrder(ctx context.Context, customerID int, lines []dto.OrderLine) (*dto.OrderResult, error) {
	uc.logger.Info("record order started", zap.Int("customerId", customerID), zap.Int("lineCount", len(lines)))

	if err := validateRequest(customerID, lines); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.fulfillTimeout)
	defer cancel()

	if _, err := uc.customers.FindByKey(ctx, customerID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("customer %d not found", customerID))
		}
		return nil, wrapStorage("looking up customer", err)
	}

	orderNumber, err := uc.allocator.NextOrderNumber(ctx)
	if err != nil {
		return nil, wrapStorage("allocating order number", err)
	}

	orderDate := time.Now().UTC().Truncate(24 * time.Hour)

	header := domain.NewHeaderLine(orderNumber, orderDate, customerID)
	if err := uc.sales.InsertLine(ctx, header); err != nil {
		uc.logger.Error("header write failed", zap.Int64("orderNumber", orderNumber), zap.Error(err))
		return nil, wrapStorage("writing order header", err)
	}

	result := &dto.OrderResult{
		OrderNumber: orderNumber,
		OrderDate:   orderDate,
		CustomerID:  customerID,
		Outcomes:    make([]dto.LineOutcome, 0, len(lines)),
	}

	for _, line := range lines {
		result.Outcomes = append(result.Outcomes, uc.fulfillLine(ctx, orderNumber, orderDate, customerID, line))
	}

	uc.logger.Info("record order finished",
		zap.Int64("orderNumber", orderNumber),
		zap.Int("accepted", result.AcceptedCount()),
		zap.Int("rejected", len(result.Outcomes)-result.AcceptedCount()),
	)

	return result, nil
}

func (uc *RecordOrderUseCase) fulfillLine(ctx context.Context, orderNumber int64, orderDate time.Time, customerID int, line dto.OrderLine) dto.LineOutcome {
	outcome := dto.LineOutcome{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
	}

	lineItem, err := uc.allocator.NextLineItem(ctx, orderNumber)
	if err != nil {
		uc.logger.Error("line item allocation failed", zap.Int64("orderNumber", orderNumber), zap.Error(err))
		outcome.Status = dto.LineRejected
		outcome.Reason = dto.ReasonStorageError
		return outcome
	}

	if err := uc.ledger.TryDecrement(ctx, line.ProductID, line.Quantity); err != nil {
		outcome.Status = dto.LineRejected
		switch {
		case stderrors.Is(err, service.ErrInsufficientStock):
			outcome.Reason = dto.ReasonInsufficientStock
			uc.logger.Warn("line rejected: insufficient stock",
				zap.Int64("orderNumber", orderNumber), zap.Int("productId", line.ProductID), zap.Int("quantity", line.Quantity))
		case isNotFound(err):
			outcome.Reason = dto.ReasonProductNotFound
			uc.logger.Warn("line rejected: product not found",
				zap.Int64("orderNumber", orderNumber), zap.Int("productId", line.ProductID))
		default:
			outcome.Reason = dto.ReasonStorageError
			uc.logger.Error("line rejected: stock decrement failed",
				zap.Int64("orderNumber", orderNumber), zap.Int("productId", line.ProductID), zap.Error(err))
		}
		return outcome
	}

	saleLine := domain.NewProductLine(orderNumber, lineItem, orderDate, customerID, line.ProductID, line.Quantity)
	if err := uc.sales.InsertLine(ctx, saleLine); err != nil {
		uc.logger.Error("line write failed",
			zap.Int64("orderNumber", orderNumber), zap.Int("lineItem", lineItem),
			zap.Int("productId", line.ProductID), zap.Error(err))

		// The decrement committed but the line did not; give the units back.
		if restoreErr := uc.ledger.Restore(ctx, line.ProductID, line.Quantity); restoreErr != nil {
			uc.logger.Error("stock restore failed",
				zap.Int64("orderNumber", orderNumber), zap.Int("productId", line.ProductID), zap.Error(restoreErr))
		}

		outcome.Status = dto.LineRejected
		outcome.Reason = dto.ReasonStorageError
		return outcome
	}

	outcome.Status = dto.LineAccepted
	uc.logger.Info("line accepted",
		zap.Int64("orderNumber", orderNumber), zap.Int("lineItem", lineItem),
		zap.Int("productId", line.ProductID), zap.Int("quantity", line.Quantity))

	return outcome
}

// GetOrder reads back the persisted lines of an order.
func (uc *RecordOrderUseCase) GetOrder(ctx context.Context, orderNumber int64) ([]domain.SaleLine, error) {
	return uc.sales.FindByOrderNumber(ctx, orderNumber)
}

func validateRequest(customerID int, lines []dto.OrderLine) error {
	var details []apperrors.ValidationDetail

	if customerID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId must be a positive integer",
		})
	}

	if len(lines) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "lines",
			Message: "lines must not be empty",
		})
	}

	for i, line := range lines {
		if line.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("lines[%d].productId", i),
				Message: "productId must be a positive integer",
			})
		}
		if line.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("lines[%d].quantity", i),
				Message: "quantity must be a positive integer",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func isNotFound(err error) bool {
	_, ok := apperrors.IsNotFoundError(err)
	return ok
}

func wrapStorage(message string, err error) error {
	if _, ok := apperrors.IsStorageError(err); ok {
		return err
	}
	return apperrors.NewStorageError(message, err)
}
