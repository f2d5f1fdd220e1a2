package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/school/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	FirstPage       = 0 // Pages are zero-based
)

// CalculateOffsetLimit converts a zero-based page and a page size into SQL offset/limit.
// Callers validate the inputs; sizes above MaxPageSize are clamped.
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < FirstPage {
		page = FirstPage
	}
	return uint64(page) * uint64(size), uint64(size)
}

// NewPaginationInfo creates a standard PaginationInfo DTO for a zero-based page.
func NewPaginationInfo(page, size, returned int) dto.PaginationInfo {
	return dto.PaginationInfo{
		Page:     page,
		PageSize: size,
		Returned: returned,
	}
}

// ParsePaginationParams extracts "page" and "size" from the query string.
// paged is false when neither parameter is present, meaning the caller wants everything.
func ParsePaginationParams(c *gin.Context) (page, size int, paged bool, err error) {
	pageStr, hasPage := c.GetQuery("page")
	sizeStr, hasSize := c.GetQuery("size")
	if !hasPage && !hasSize {
		return 0, 0, false, nil
	}

	page = FirstPage
	if hasPage {
		if page, err = strconv.Atoi(pageStr); err != nil {
			return 0, 0, true, err
		}
	}

	size = DefaultPageSize
	if hasSize {
		if size, err = strconv.Atoi(sizeStr); err != nil {
			return 0, 0, true, err
		}
	}

	return page, size, true, nil
}
