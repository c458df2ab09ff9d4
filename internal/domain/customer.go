package domain

type Customer struct {
	CustomerKey int
	Name        string
	Gender      string
	City        string
	State       string
	Country     string
	Age         int
	AgeRange    string
}

// AgeRangeFor buckets an age the same way the reporting queries group
// customers, so inserts and analytics agree on the labels.
func AgeRangeFor(age int) string {
	switch {
	case age < 20:
		return "< 20"
	case age <= 29:
		return "20-29"
	case age <= 39:
		return "30-39"
	case age <= 49:
		return "40-49"
	case age <= 59:
		return "50-59"
	default:
		return "60 and above"
	}
}
