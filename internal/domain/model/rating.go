package model

// OrderRatings holds the two optional scores attached to a received order.
// The record is created empty the moment an order becomes RECEIVED; each
// side may fill its slot exactly once.
type OrderRatings struct {
	OrderID uint64
	// ByBuyer is the score the buyer gave the seller.
	ByBuyer *uint8
	// BySeller is the score the seller gave the buyer.
	BySeller *uint8
}
