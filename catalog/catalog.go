// Package catalog holds the gateway's transient views of the backend's
// domain entities. The backend owns the data and every business rule;
// these copies exist per request, are never cached, and carry no
// invariants beyond the required-field checks applied before a write.
package catalog

// Product is the inventory listing view of a product.
type Product struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	Category  string    `json:"category"`
	Inventory Inventory `json:"inventory"`
}

type Inventory struct {
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Total    int    `json:"total"`
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Order struct {
	ID      string      `json:"_id"`
	Code    string      `json:"code"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Date    string      `json:"date,omitempty"`
	Total   float64     `json:"total"`
	Status  string      `json:"status"`
	Items   []OrderItem `json:"items"`
	Payment bool        `json:"payment"`
}

type OrderItem struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Customer struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type Vendor struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// Slide is a promotional placement on the storefront.
type Slide struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	Position int    `json:"position"`
}
