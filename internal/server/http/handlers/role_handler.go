package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/server/http/dto"
)

// RoleHandler manages role registry endpoints.
type RoleHandler struct {
	facade RegistryFacade
}

// NewRoleHandler constructs RoleHandler.
func NewRoleHandler(facade RegistryFacade) *RoleHandler {
	return &RoleHandler{facade: facade}
}

// Register handles POST /api/market/role.
func (h *RoleHandler) Register(c *gin.Context) {
	accountID := CurrentAccountID(c)

	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RegisterRole(c.Request.Context(), accountID, model.Role(req.Role)); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// Update handles PUT /api/market/role. Downgrade attempts succeed without
// narrowing the stored role.
func (h *RoleHandler) Update(c *gin.Context) {
	accountID := CurrentAccountID(c)

	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.WidenRole(c.Request.Context(), accountID, model.Role(req.Role)); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// RoleOf handles GET /api/market/role/:account.
func (h *RoleHandler) RoleOf(c *gin.Context) {
	accountID, ok := pathInt64(c, "account")
	if !ok {
		return
	}

	role, err := h.facade.RoleOf(c.Request.Context(), accountID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.RoleResponse{Account: accountID, Role: string(role)})
}
