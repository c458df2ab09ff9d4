package customer

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Age     int    `json:"age"`
}

type CreateCustomerResponse struct {
	CustomerKey int    `json:"customerKey"`
	AgeRange    string `json:"ageRange"`
}

type CustomerDTO struct {
	CustomerKey int    `json:"customerKey"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Age         int    `json:"age"`
	AgeRange    string `json:"ageRange"`
}

type ListCustomersResponse struct {
	Customers []CustomerDTO `json:"customers"`
}
