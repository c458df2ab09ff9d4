package dto

type RecordOrderRequest struct {
	CustomerID int               `json:"customerId"`
	Lines      []RecordOrderLine `json:"lines"`
}

type RecordOrderLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}
