package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/server/http/middleware"
)

// CurrentAccountID extracts the authenticated account identifier from context.
func CurrentAccountID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AccountIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// statusFromError maps domain sentinels to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidData),
		errors.Is(err, domainErrors.ErrInvalidRating),
		errors.Is(err, domainErrors.ErrInsufficientStock),
		errors.Is(err, domainErrors.ErrOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrNotAuthorized),
		errors.Is(err, domainErrors.ErrNotSeller):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrProductNotFound),
		errors.Is(err, domainErrors.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidState),
		errors.Is(err, domainErrors.ErrAlreadyRegistered),
		errors.Is(err, domainErrors.ErrNotRegistered),
		errors.Is(err, domainErrors.ErrAlreadyRated),
		errors.Is(err, domainErrors.ErrOrderNotReceived),
		errors.Is(err, domainErrors.ErrCannotRemoveRole):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func pathUint64(c *gin.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func pathInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
