package dto

// ReputationResponse describes the rating aggregate of an account. Averages
// are absent until the corresponding count is non-zero.
type ReputationResponse struct {
	Account         int64   `json:"account"`
	AsBuyerCount    uint32  `json:"as_buyer_count"`
	AsBuyerSum      uint64  `json:"as_buyer_sum"`
	AsBuyerAverage  *uint64 `json:"as_buyer_average"`
	AsSellerCount   uint32  `json:"as_seller_count"`
	AsSellerSum     uint64  `json:"as_seller_sum"`
	AsSellerAverage *uint64 `json:"as_seller_average"`
}

// CategoryStatsResponse describes the accumulated statistics of a category.
type CategoryStatsResponse struct {
	Category      string  `json:"category"`
	Sales         uint32  `json:"sales"`
	RatingSum     uint64  `json:"rating_sum"`
	RatingCount   uint32  `json:"rating_count"`
	AverageRating *uint64 `json:"average_rating"`
}
