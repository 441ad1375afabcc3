package cart

// Item is one line in the active cart: a product reference plus quantity.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Snapshot is a read-only copy of the cart contents in insertion order.
type Snapshot []Item
