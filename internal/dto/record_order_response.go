package dto

import "time"

type RecordOrderResponse struct {
	TraceID     string           `json:"traceId"`
	OrderNumber int64            `json:"orderNumber"`
	OrderDate   string           `json:"orderDate"`
	Outcomes    []LineOutcomeDTO `json:"outcomes"`
	Timestamp   time.Time        `json:"timestamp"`
}

type LineOutcomeDTO struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

type OrderViewResponse struct {
	TraceID     string        `json:"traceId"`
	OrderNumber int64         `json:"orderNumber"`
	OrderDate   string        `json:"orderDate"`
	CustomerID  int           `json:"customerId"`
	Lines       []SaleLineDTO `json:"lines"`
}

type SaleLineDTO struct {
	LineItem  int  `json:"lineItem"`
	ProductID *int `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
