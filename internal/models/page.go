package models

// Page describes one window of a paginated listing.
type Page struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
