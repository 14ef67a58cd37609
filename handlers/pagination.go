package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// PaginationParams is an id keyset page: rows with id > AfterID, oldest first.
type PaginationParams struct {
	Limit   int
	AfterID uint
}

type CursorResponse struct {
	Data       interface{} `json:"data"`
	NextCursor string      `json:"next_cursor,omitempty"`
	HasMore    bool        `json:"has_more"`
}

// ParsePagination reads limit and after_id. The second result is false when
// the request asked for no paging at all.
func ParsePagination(c *gin.Context) (PaginationParams, bool) {
	p := PaginationParams{Limit: DefaultLimit}
	requested := false

	if limitStr := c.Query("limit"); limitStr != "" {
		requested = true
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			p.Limit = l
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if afterStr := c.Query("after_id"); afterStr != "" {
		requested = true
		if id, err := strconv.ParseUint(afterStr, 10, 64); err == nil {
			p.AfterID = uint(id)
		}
	}

	return p, requested
}
