package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pvmlabs/examgate-backend/internal/response"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// parsePagination reads page/per_page query params with sane bounds.
func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return page, perPage
}

func buildPagination(page, perPage, total int) *response.Pagination {
	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
