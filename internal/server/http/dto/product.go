package dto

import "time"

// PublishRequest describes a new product listing payload.
type PublishRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
	Quantity    uint32 `json:"quantity"`
	Category    string `json:"category"`
}

// PublishResponse carries the identifier assigned to a published product.
type PublishResponse struct {
	ID uint64 `json:"id"`
}

// ProductResponse describes a catalog entry.
type ProductResponse struct {
	ID          uint64    `json:"id"`
	SellerID    int64     `json:"seller_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       uint64    `json:"price"`
	Quantity    uint32    `json:"quantity"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductSalesResponse carries the completed-sales counter of a product.
type ProductSalesResponse struct {
	ProductID uint64 `json:"product_id"`
	Sales     uint32 `json:"sales"`
}
