package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

// parsePagination normalizes the page and size query values. Anything
// non-numeric or negative collapses to page 0, any size outside (0, 10]
// collapses to the default of 10. Listing endpoints never error on bad
// pagination input
func parsePagination(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 || size > defaultPageSize {
		size = defaultPageSize
	}

	return page, size
}

func totalPages(total int64, size int) int {
	return int((total + int64(size) - 1) / int64(size))
}
