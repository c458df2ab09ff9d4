package domain

type Product struct {
	ProductKey   int
	ProductName  string
	Brand        string
	Color        string
	UnitCostUSD  float64
	UnitPriceUSD float64
	Subcategory  string
	Category     string
	StockLevel   int
	IsActive     bool
}
