package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/server/http/dto"
)

// ReputationHandler manages rating and statistics endpoints.
type ReputationHandler struct {
	facade ReputationFacade
}

// NewReputationHandler constructs ReputationHandler.
func NewReputationHandler(facade ReputationFacade) *ReputationHandler {
	return &ReputationHandler{facade: facade}
}

// RateSeller handles POST /api/market/orders/:id/rate-seller.
func (h *ReputationHandler) RateSeller(c *gin.Context) {
	h.rate(c, h.facade.RateSeller)
}

// RateBuyer handles POST /api/market/orders/:id/rate-buyer.
func (h *ReputationHandler) RateBuyer(c *gin.Context) {
	h.rate(c, h.facade.RateBuyer)
}

func (h *ReputationHandler) rate(c *gin.Context, op func(ctx context.Context, callerID int64, orderID uint64, score uint8) error) {
	callerID := CurrentAccountID(c)
	orderID, ok := pathUint64(c, "id")
	if !ok {
		return
	}

	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := op(c.Request.Context(), callerID, orderID, req.Score); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// Reputation handles GET /api/market/reputation/:account.
func (h *ReputationHandler) Reputation(c *gin.Context) {
	accountID, ok := pathInt64(c, "account")
	if !ok {
		return
	}

	rep, err := h.facade.ReputationOf(c.Request.Context(), accountID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, reputationResponse(accountID, rep))
}

// ListReputation handles GET /api/market/reputation.
func (h *ReputationHandler) ListReputation(c *gin.Context) {
	accounts, err := h.facade.AccountsWithReputation(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(accounts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ReputationResponse, 0, len(accounts))
	for _, acc := range accounts {
		rep := acc.Reputation
		response = append(response, reputationResponse(acc.AccountID, &rep))
	}
	c.JSON(http.StatusOK, response)
}

// OrderRatings handles GET /api/market/orders/:id/ratings.
func (h *ReputationHandler) OrderRatings(c *gin.Context) {
	orderID, ok := pathUint64(c, "id")
	if !ok {
		return
	}

	ratings, err := h.facade.OrderRatings(c.Request.Context(), orderID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.RatingsResponse{
		OrderID:  orderID,
		ByBuyer:  ratings.ByBuyer,
		BySeller: ratings.BySeller,
	})
}

// CategoryStats handles GET /api/market/categories/:category.
func (h *ReputationHandler) CategoryStats(c *gin.Context) {
	category := c.Param("category")

	stats, err := h.facade.CategoryStats(c.Request.Context(), category)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.CategoryStatsResponse{
		Category:      category,
		Sales:         stats.Sales,
		RatingSum:     stats.RatingSum,
		RatingCount:   stats.RatingCount,
		AverageRating: optionalAverage(stats.AverageRating()),
	})
}

func reputationResponse(accountID int64, rep *model.Reputation) dto.ReputationResponse {
	return dto.ReputationResponse{
		Account:         accountID,
		AsBuyerCount:    rep.AsBuyerCount,
		AsBuyerSum:      rep.AsBuyerSum,
		AsBuyerAverage:  optionalAverage(rep.AverageAsBuyer()),
		AsSellerCount:   rep.AsSellerCount,
		AsSellerSum:     rep.AsSellerSum,
		AsSellerAverage: optionalAverage(rep.AverageAsSeller()),
	}
}

// optionalAverage renders an absent average as JSON null.
func optionalAverage(avg uint64, ok bool) *uint64 {
	if !ok {
		return nil
	}
	return &avg
}
