package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/pkg/pagination"
)

// GetOperator extracts the logged-in operator from the Gin context
func GetOperator(c *gin.Context) string {
	operator, exists := c.Get("operator")
	if !exists {
		return ""
	}
	name, _ := operator.(string)
	return name
}

// paginationParams reads page and per_page from the query string
func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}
