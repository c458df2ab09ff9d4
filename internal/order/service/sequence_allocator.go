package service

import "context"

type SequenceRepository interface {
	NextOrderNumber(ctx context.Context) (int64, error)
}

type LineItemRepository interface {
	MaxLineItem(ctx context.Context, orderNumber int64) (int, error)
}

// SequenceAllocator hands out order numbers and line item positions.
// Order numbers come from an atomic counter; line item positions are
// derived from the order's existing rows, which is safe because each
// in-flight order has exactly one writer.
type SequenceAllocator struct {
	sequences SequenceRepository
	lines     LineItemRepository
}

func NewSequenceAllocator(sequences SequenceRepository, lines LineItemRepository) *SequenceAllocator {
	return &SequenceAllocator{
		sequences: sequences,
		lines:     lines,
	}
}

func (a *SequenceAllocator) NextOrderNumber(ctx context.Context) (int64, error) {
	return a.sequences.NextOrderNumber(ctx)
}

func (a *SequenceAllocator) NextLineItem(ctx context.Context, orderNumber int64) (int, error) {
	maxLine, err := a.lines.MaxLineItem(ctx, orderNumber)
	if err != nil {
		return 0, err
	}
	return maxLine + 1, nil
}
