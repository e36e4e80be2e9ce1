package domain

// Item is an inventory record. Cost and Quantity carry no unit or precision
// rules.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Quantity float64 `json:"quantity"`
}
