package models

// Asset represents an inventory record. Optional columns stay nil and render
// as JSON null, matching the rows as stored.
type Asset struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Category     *string  `json:"category"`
	Owner        *string  `json:"owner"`
	Status       *string  `json:"status"`
	Location     *string  `json:"location"`
	Value        *float64 `json:"value"`
	PurchaseDate *string  `json:"purchase_date"`
	Metadata     *string  `json:"metadata"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    *string  `json:"updated_at"`
}
