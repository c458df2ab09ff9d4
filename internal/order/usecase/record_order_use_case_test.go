package usecase

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"crpm/internal/domain"
	"crpm/internal/dto"
	apperrors "crpm/internal/errors"
	"crpm/internal/order/service"
)

// fakeSales records inserted lines in memory and can be told to fail.
type fakeSales struct {
	lines         []domain.SaleLine
	failHeader    bool
	failLineItems map[int]bool // product key -> fail insert
}

func (f *fakeSales) InsertLine(ctx context.Context, line domain.SaleLine) error {
	if line.IsHeader() && f.failHeader {
		return apperrors.NewStorageError("inserting sale line", stderrors.New("connection lost"))
	}
	if line.ProductKey != nil && f.failLineItems[*line.ProductKey] {
		return apperrors.NewStorageError("inserting sale line", stderrors.New("connection lost"))
	}
	f.lines = append(f.lines, line)
	return nil
}

func (f *fakeSales) FindByOrderNumber(ctx context.Context, orderNumber int64) ([]domain.SaleLine, error) {
	var lines []domain.SaleLine
	for _, l := range f.lines {
		if l.OrderNumber == orderNumber {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, apperrors.NewNotFoundError("order not found")
	}
	return lines, nil
}

// fakeAllocator counts order numbers up from next and derives line items
// from the sales fake, mirroring the real allocator contract.
type fakeAllocator struct {
	next  int64
	sales *fakeSales
}

func (f *fakeAllocator) NextOrderNumber(ctx context.Context) (int64, error) {
	f.next++
	return f.next, nil
}

func (f *fakeAllocator) NextLineItem(ctx context.Context, orderNumber int64) (int, error) {
	maxLine := 0
	for _, l := range f.sales.lines {
		if l.OrderNumber == orderNumber && l.LineItem > maxLine {
			maxLine = l.LineItem
		}
	}
	return maxLine + 1, nil
}

// fakeLedger keeps stock levels in a map and applies the same conditional
// decrement semantics as the MySQL ledger.
type fakeLedger struct {
	stock    map[int]int
	restored []int
}

func (f *fakeLedger) TryDecrement(ctx context.Context, productKey, quantity int) error {
	current, ok := f.stock[productKey]
	if !ok {
		return apperrors.NewNotFoundError("product not found")
	}
	if current < quantity {
		return service.ErrInsufficientStock
	}
	f.stock[productKey] = current - quantity
	return nil
}

func (f *fakeLedger) Restore(ctx context.Context, productKey, quantity int) error {
	f.stock[productKey] += quantity
	f.restored = append(f.restored, productKey)
	return nil
}

type fakeCustomers struct {
	known map[int]bool
}

func (f *fakeCustomers) FindByKey(ctx context.Context, customerKey int) (*domain.Customer, error) {
	if !f.known[customerKey] {
		return nil, apperrors.NewNotFoundError("customer not found")
	}
	return &domain.Customer{CustomerKey: customerKey, Name: "Test"}, nil
}

type fixture struct {
	uc        *RecordOrderUseCase
	sales     *fakeSales
	allocator *fakeAllocator
	ledger    *fakeLedger
}

func newFixture(stock map[int]int) *fixture {
	sales := &fakeSales{failLineItems: map[int]bool{}}
	allocator := &fakeAllocator{sales: sales}
	ledger := &fakeLedger{stock: stock}
	customers := &fakeCustomers{known: map[int]bool{1: true}}

	uc := NewRecordOrderUseCase(sales, allocator, ledger, customers, zap.NewNop(), 5*time.Second)

	return &fixture{uc: uc, sales: sales, allocator: allocator, ledger: ledger}
}

func TestRecordOrder_SingleLineAccepted(t *testing.T) {
	f := newFixture(map[int]int{10: 10})

	result, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{{ProductID: 10, Quantity: 5}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.OrderNumber != 1 {
		t.Errorf("expected order number 1, got %d", result.OrderNumber)
	}
	if len(result.Outcomes) != 1 || result.Outcomes[0].Status != dto.LineAccepted {
		t.Fatalf("expected one accepted outcome, got %+v", result.Outcomes)
	}
	if f.ledger.stock[10] != 5 {
		t.Errorf("expected stock 5 after accept, got %d", f.ledger.stock[10])
	}

	// Header plus one product line persisted.
	if len(f.sales.lines) != 2 {
		t.Fatalf("expected 2 persisted rows, got %d", len(f.sales.lines))
	}
	if !f.sales.lines[0].IsHeader() {
		t.Errorf("expected first persisted row to be the header")
	}
	if f.sales.lines[1].LineItem != 2 {
		t.Errorf("expected product line at position 2, got %d", f.sales.lines[1].LineItem)
	}
}

func TestRecordOrder_InsufficientStock(t *testing.T) {
	f := newFixture(map[int]int{10: 3})

	result, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{{ProductID: 10, Quantity: 5}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Outcomes[0].Status != dto.LineRejected || result.Outcomes[0].Reason != dto.ReasonInsufficientStock {
		t.Errorf("expected INSUFFICIENT_STOCK rejection, got %+v", result.Outcomes[0])
	}
	if f.ledger.stock[10] != 3 {
		t.Errorf("expected stock unchanged at 3, got %d", f.ledger.stock[10])
	}

	// Header persists even when every line is rejected.
	if len(f.sales.lines) != 1 || !f.sales.lines[0].IsHeader() {
		t.Errorf("expected only the header row to persist, got %+v", f.sales.lines)
	}
}

func TestRecordOrder_MixedOutcomes(t *testing.T) {
	f := newFixture(map[int]int{10: 10, 20: 1})

	result, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{
		{ProductID: 10, Quantity: 5},
		{ProductID: 20, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Outcomes[0].Status != dto.LineAccepted {
		t.Errorf("expected first line accepted, got %+v", result.Outcomes[0])
	}
	if result.Outcomes[1].Status != dto.LineRejected || result.Outcomes[1].Reason != dto.ReasonInsufficientStock {
		t.Errorf("expected second line rejected, got %+v", result.Outcomes[1])
	}

	// Order exists with exactly one real product line.
	if len(f.sales.lines) != 2 {
		t.Fatalf("expected header plus one product line, got %d rows", len(f.sales.lines))
	}
	if f.ledger.stock[20] != 1 {
		t.Errorf("expected rejected line to leave stock at 1, got %d", f.ledger.stock[20])
	}
}

func TestRecordOrder_BoundaryQuantities(t *testing.T) {
	f := newFixture(map[int]int{10: 10})

	// Exactly the stock level drains it to zero.
	result, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{{ProductID: 10, Quantity: 10}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Outcomes[0].Status != dto.LineAccepted {
		t.Errorf("expected quantity == stock to be accepted, got %+v", result.Outcomes[0])
	}
	if f.ledger.stock[10] != 0 {
		t.Errorf("expected stock 0, got %d", f.ledger.stock[10])
	}

	// One more unit is rejected, stock stays at zero.
	result, err = f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{{ProductID: 10, Quantity: 1}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Outcomes[0].Reason != dto.ReasonInsufficientStock {
		t.Errorf("expected INSUFFICIENT_STOCK, got %+v", result.Outcomes[0])
	}
	if f.ledger.stock[10] != 0 {
		t.Errorf("expected stock still 0, got %d", f.ledger.stock[10])
	}
}

func TestRecordOrder_UnknownProductLine(t *testing.T) {
	f := newFixture(map[int]int{10: 10})

	result, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{
		{ProductID: 99, Quantity: 1},
		{ProductID: 10, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Outcomes[0].Reason != dto.ReasonProductNotFound {
		t.Errorf("expected PRODUCT_NOT_FOUND, got %+v", result.Outcomes[0])
	}
	if result.Outcomes[1].Status != dto.LineAccepted {
		t.Errorf("expected later line still processed, got %+v", result.Outcomes[1])
	}
}

func TestRecordOrder_RepeatCallsAllocateDistinctOrders(t *testing.T) {
	f := newFixture(map[int]int{10: 10})

	lines := []dto.OrderLine{{ProductID: 10, Quantity: 1}}

	first, err := f.uc.RecordOrder(context.Background(), 1, lines)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := f.uc.RecordOrder(context.Background(), 1, lines)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if second.OrderNumber <= first.OrderNumber {
		t.Errorf("expected strictly increasing order numbers, got %d then %d",
			first.OrderNumber, second.OrderNumber)
	}
}

func TestRecordOrder_EmptyLines(t *testing.T) {
	f := newFixture(map[int]int{})

	_, err := f.uc.RecordOrder(context.Background(), 1, nil)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if len(f.sales.lines) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(f.sales.lines))
	}
}

func TestRecordOrder_NonPositiveQuantity(t *testing.T) {
	f := newFixture(map[int]int{10: 10})

	_, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{{ProductID: 10, Quantity: 0}})
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if len(f.sales.lines) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(f.sales.lines))
	}
}

func TestRecordOrder_UnknownCustomer(t *testing.T) {
	f := newFixture(map[int]int{10: 10})

	_, err := f.uc.RecordOrder(context.Background(), 42, []dto.OrderLine{{ProductID: 10, Quantity: 1}})
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if len(f.sales.lines) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(f.sales.lines))
	}
}

func TestRecordOrder_HeaderWriteFailureAborts(t *testing.T) {
	f := newFixture(map[int]int{10: 10})
	f.sales.failHeader = true

	_, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{{ProductID: 10, Quantity: 5}})
	if _, ok := apperrors.IsStorageError(err); !ok {
		t.Errorf("expected StorageError, got %v", err)
	}

	// Nothing visible: no rows, no stock movement.
	if len(f.sales.lines) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(f.sales.lines))
	}
	if f.ledger.stock[10] != 10 {
		t.Errorf("expected stock untouched at 10, got %d", f.ledger.stock[10])
	}
}

func TestRecordOrder_LineWriteFailureContinuesAndRestores(t *testing.T) {
	f := newFixture(map[int]int{10: 10, 20: 10})
	f.sales.failLineItems[10] = true

	result, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{
		{ProductID: 10, Quantity: 5},
		{ProductID: 20, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Outcomes[0].Status != dto.LineRejected || result.Outcomes[0].Reason != dto.ReasonStorageError {
		t.Errorf("expected STORAGE_ERROR rejection for first line, got %+v", result.Outcomes[0])
	}
	if result.Outcomes[1].Status != dto.LineAccepted {
		t.Errorf("expected processing to continue, got %+v", result.Outcomes[1])
	}

	// The failed line's decrement is compensated.
	if f.ledger.stock[10] != 10 {
		t.Errorf("expected stock restored to 10, got %d", f.ledger.stock[10])
	}
	if len(f.ledger.restored) != 1 || f.ledger.restored[0] != 10 {
		t.Errorf("expected one restore for product 10, got %v", f.ledger.restored)
	}
	if f.ledger.stock[20] != 7 {
		t.Errorf("expected stock 7 for accepted line, got %d", f.ledger.stock[20])
	}
}

func TestRecordOrder_LineItemsAreSequential(t *testing.T) {
	f := newFixture(map[int]int{10: 10, 20: 10, 30: 10})

	_, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{
		{ProductID: 10, Quantity: 1},
		{ProductID: 20, Quantity: 1},
		{ProductID: 30, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i, line := range f.sales.lines {
		if line.LineItem != i+1 {
			t.Errorf("expected line item %d at position %d, got %d", i+1, i, line.LineItem)
		}
	}
}

func TestGetOrder_RoundTrip(t *testing.T) {
	f := newFixture(map[int]int{10: 10})

	result, err := f.uc.RecordOrder(context.Background(), 1, []dto.OrderLine{{ProductID: 10, Quantity: 5}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines, err := f.uc.GetOrder(context.Background(), result.OrderNumber)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	product := lines[1]
	if product.ProductKey == nil || *product.ProductKey != 10 {
		t.Errorf("expected product 10, got %v", product.ProductKey)
	}
	if product.Quantity == nil || *product.Quantity != 5 {
		t.Errorf("expected quantity 5, got %v", product.Quantity)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(map[int]int{})

	_, err := f.uc.GetOrder(context.Background(), 999)
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}
