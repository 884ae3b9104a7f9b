package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/integration"
	"github.com/vendora/backend/internal/domain/shared"
	"github.com/vendora/backend/internal/interfaces/http/dto"
)

// bindListRequest parses pagination/sort query parameters with defaults
func bindListRequest(c *gin.Context) (dto.ListRequest, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// toFilter converts a list request into the repository filter shape
func toFilter(req dto.ListRequest, filters map[string]interface{}) shared.Filter {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  filters,
	}
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	return filter
}

// storefrontErrorMessage returns the underlying message for storefront
// transport, auth, and credential failures, and "" for anything else.
func storefrontErrorMessage(err error) string {
	switch {
	case errors.Is(err, integration.ErrShopNotConfigured),
		errors.Is(err, integration.ErrStorefrontAuth),
		errors.Is(err, integration.ErrStorefrontUnavailable),
		errors.Is(err, integration.ErrStorefrontRequestFailed),
		errors.Is(err, integration.ErrStorefrontInvalidResponse):
		return err.Error()
	}
	return ""
}

// bindID parses the :id path parameter as a UUID
func bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
