package models

// Route is a bookable transfer direction. Routes are immutable once fetched.
type Route struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	BasePrice       float64 `json:"basePrice"`
	Currency        string  `json:"currency"`
	DurationMinutes int     `json:"durationMinutes"`
}
