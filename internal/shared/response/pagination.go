package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageQuery struct {
	Page     int
	PageSize int
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ParsePageQuery reads ?page=&page_size= and clamps them to sane bounds.
func ParsePageQuery(c *gin.Context) PageQuery {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return PageQuery{Page: page, PageSize: size}
}
