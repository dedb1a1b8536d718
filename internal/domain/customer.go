package domain

// Customer groups sites under a single account. There is no independent
// Site entity; sites are strings scoped under a customer and site-level
// views are aggregations over jobs.
type Customer struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Sites []string `json:"sites"`
}
