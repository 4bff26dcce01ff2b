package reporting

import "time"

// AccountRating pairs an account with its average rating.
type AccountRating struct {
	Account int64  `json:"account"`
	Average uint64 `json:"average"`
}

// ProductSales pairs a product with its completed sales count.
type ProductSales struct {
	ProductID uint64 `json:"product_id"`
	Name      string `json:"name"`
	Sales     uint32 `json:"sales"`
}

// CategoryRollup is the per-category statistics line of the report.
type CategoryRollup struct {
	Category      string  `json:"category"`
	Sales         uint32  `json:"sales"`
	RatingCount   uint32  `json:"rating_count"`
	AverageRating *uint64 `json:"average_rating"`
}

// Snapshot is an immutable report built from one refresh pass. A snapshot is
// never mutated after publication; readers share it freely.
type Snapshot struct {
	TopSellers  []AccountRating  `json:"top_sellers"`
	TopBuyers   []AccountRating  `json:"top_buyers"`
	BestSelling []ProductSales   `json:"best_selling"`
	Categories  []CategoryRollup `json:"categories"`
	RefreshedAt time.Time        `json:"refreshed_at"`
}
