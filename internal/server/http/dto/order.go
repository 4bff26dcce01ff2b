package dto

// CreateOrderRequest describes an order placement payload.
type CreateOrderRequest struct {
	ProductID uint64 `json:"product_id"`
	Quantity  uint32 `json:"quantity"`
}

// CreateOrderResponse carries the identifier assigned to a placed order.
type CreateOrderResponse struct {
	ID uint64 `json:"id"`
}

// OrderStateResponse describes the lifecycle state of an order.
type OrderStateResponse struct {
	ID    uint64 `json:"id"`
	State string `json:"state"`
}

// RateRequest describes a rating submission payload.
type RateRequest struct {
	Score uint8 `json:"score"`
}

// RatingsResponse describes both rating slots of an order. A nil slot means
// the corresponding party has not rated yet.
type RatingsResponse struct {
	OrderID  uint64 `json:"order_id"`
	ByBuyer  *uint8 `json:"by_buyer"`
	BySeller *uint8 `json:"by_seller"`
}

// OrdersCountResponse carries the number of orders placed by an account.
type OrdersCountResponse struct {
	Account int64  `json:"account"`
	Count   uint32 `json:"count"`
}
