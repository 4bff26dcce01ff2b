package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/server/http/dto"
)

// CatalogHandler manages product catalog endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Publish handles POST /api/market/products.
func (h *CatalogHandler) Publish(c *gin.Context) {
	sellerID := CurrentAccountID(c)

	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	id, err := h.facade.PublishProduct(c.Request.Context(), sellerID, model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusCreated, dto.PublishResponse{ID: id})
}

// Mine handles GET /api/market/my/products.
func (h *CatalogHandler) Mine(c *gin.Context) {
	sellerID := CurrentAccountID(c)
	products, err := h.facade.OwnProducts(c.Request.Context(), sellerID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	writeProducts(c, products)
}

// List handles GET /api/market/products.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	writeProducts(c, products)
}

// Sales handles GET /api/market/products/:id/sales.
func (h *CatalogHandler) Sales(c *gin.Context) {
	productID, ok := pathUint64(c, "id")
	if !ok {
		return
	}

	sales, err := h.facade.ProductSales(c.Request.Context(), productID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ProductSalesResponse{ProductID: productID, Sales: sales})
}

func writeProducts(c *gin.Context, products []model.Product) {
	if len(products) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, dto.ProductResponse{
			ID:          p.ID,
			SellerID:    p.SellerID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Category:    p.Category,
			CreatedAt:   p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
