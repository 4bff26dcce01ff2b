package reporting

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SnapshotSource provides the latest published report.
type SnapshotSource interface {
	Snapshot() *Snapshot
}

// Handler serves report queries from the published snapshot.
type Handler struct {
	source  SnapshotSource
	service *Service
}

// NewHandler constructs the reports handler.
func NewHandler(source SnapshotSource, service *Service) *Handler {
	return &Handler{source: source, service: service}
}

// TopSellers handles GET /api/reports/top-sellers.
func (h *Handler) TopSellers(c *gin.Context) {
	h.section(c, func(s *Snapshot) any { return s.TopSellers })
}

// TopBuyers handles GET /api/reports/top-buyers.
func (h *Handler) TopBuyers(c *gin.Context) {
	h.section(c, func(s *Snapshot) any { return s.TopBuyers })
}

// BestSelling handles GET /api/reports/best-selling.
func (h *Handler) BestSelling(c *gin.Context) {
	h.section(c, func(s *Snapshot) any { return s.BestSelling })
}

// Categories handles GET /api/reports/categories.
func (h *Handler) Categories(c *gin.Context) {
	h.section(c, func(s *Snapshot) any { return s.Categories })
}

// OrdersCount handles GET /api/reports/accounts/:account/orders/count. The
// query passes through to the marketplace instead of the snapshot; a failed
// upstream call degrades to a zero count like every other report section.
func (h *Handler) OrdersCount(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Param("account"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	count, err := h.service.OrdersCount(c.Request.Context(), accountID)
	if err != nil {
		count = 0
	}
	c.JSON(http.StatusOK, gin.H{"account": accountID, "count": count})
}

func (h *Handler) section(c *gin.Context, pick func(*Snapshot) any) {
	snapshot := h.source.Snapshot()
	if snapshot == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Last-Refreshed", snapshot.RefreshedAt.Format(http.TimeFormat))
	c.JSON(http.StatusOK, pick(snapshot))
}
