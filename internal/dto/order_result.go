package dto

import "time"

type LineStatus string

const (
	LineAccepted LineStatus = "ACCEPTED"
	LineRejected LineStatus = "REJECTED"
)

type RejectReason string

const (
	ReasonInsufficientStock RejectReason = "INSUFFICIENT_STOCK"
	ReasonProductNotFound   RejectReason = "PRODUCT_NOT_FOUND"
	ReasonStorageError      RejectReason = "STORAGE_ERROR"
)

type OrderLine struct {
	ProductID int
	Quantity  int
}

type LineOutcome struct {
	ProductID int
	Quantity  int
	Status    LineStatus
	Reason    RejectReason
}

type OrderResult struct {
	OrderNumber int64
	OrderDate   time.Time
	CustomerID  int
	Outcomes    []LineOutcome
}

func (r *OrderResult) AcceptedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == LineAccepted {
			n++
		}
	}
	return n
}

func (r *OrderResult) AllAccepted() bool {
	return r.AcceptedCount() == len(r.Outcomes)
}

func (r *OrderResult) AllRejected() bool {
	return r.AcceptedCount() == 0
}
