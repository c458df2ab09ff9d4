package domain

import "time"

// SaleLine is one row of the Sales relation. An order is the set of rows
// sharing an OrderNumber; the row with LineItem 1 is the order header and
// carries no product or quantity.
type SaleLine struct {
	OrderNumber int64
	LineItem    int
	OrderDate   time.Time
	CustomerKey int
	ProductKey  *int
	Quantity    *int
}

const HeaderLineItem = 1

func (l SaleLine) IsHeader() bool {
	return l.LineItem == HeaderLineItem && l.ProductKey == nil
}

// NewHeaderLine builds the placeholder first row written for a new order.
func NewHeaderLine(orderNumber int64, orderDate time.Time, customerKey int) SaleLine {
	return SaleLine{
		OrderNumber: orderNumber,
		LineItem:    HeaderLineItem,
		OrderDate:   orderDate,
		CustomerKey: customerKey,
	}
}

// NewProductLine builds an accepted product row for an order.
func NewProductLine(orderNumber int64, lineItem int, orderDate time.Time, customerKey, productKey, quantity int) SaleLine {
	return SaleLine{
		OrderNumber: orderNumber,
		LineItem:    lineItem,
		OrderDate:   orderDate,
		CustomerKey: customerKey,
		ProductKey:  &productKey,
		Quantity:    &quantity,
	}
}
