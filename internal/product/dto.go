package product

type CreateProductRequest struct {
	ProductName  string  `json:"productName"`
	Brand        string  `json:"brand"`
	Color        string  `json:"color"`
	UnitCostUSD  float64 `json:"unitCostUsd"`
	UnitPriceUSD float64 `json:"unitPriceUsd"`
	Subcategory  string  `json:"subcategory"`
	Category     string  `json:"category"`
	StockLevel   int     `json:"stockLevel"`
	IsActive     bool    `json:"isActive"`
}

type CreateProductResponse struct {
	ProductKey int `json:"productKey"`
}

type UpdateStatusRequest struct {
	IsActive bool `json:"isActive"`
}

type ProductDTO struct {
	ProductKey   int     `json:"productKey"`
	ProductName  string  `json:"productName"`
	Brand        string  `json:"brand"`
	Color        string  `json:"color"`
	UnitCostUSD  float64 `json:"unitCostUsd"`
	UnitPriceUSD float64 `json:"unitPriceUsd"`
	Subcategory  string  `json:"subcategory"`
	Category     string  `json:"category"`
	StockLevel   int     `json:"stockLevel"`
	IsActive     bool    `json:"isActive"`
}

type ListProductsResponse struct {
	Products []ProductDTO `json:"products"`
}
