package handler

import (
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// bindListFilter binds pagination query parameters into a shared filter
func bindListFilter(c *gin.Context) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	return filter, nil
}

// parseDateParam parses a YYYY-MM-DD path parameter
func parseDateParam(c *gin.Context, name string) (time.Time, error) {
	return time.Parse(dateLayout, c.Param(name))
}

// parseOptionalDate parses an optional YYYY-MM-DD string, returning the
// zero time when absent
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
