package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds sanitized page/limit values from the query string.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit query parameters, clamping them to sane
// bounds so a bad client cannot request a million-row page.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// ListPayload builds the standard list-response body: the items under
// the given key plus total/page/limit stamps.
func (p Params) ListPayload(key string, items interface{}, total int64) gin.H {
	return gin.H{
		key:     items,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}
}
