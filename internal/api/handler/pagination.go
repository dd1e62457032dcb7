package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// listResponse is the paginated envelope shared by all list endpoints.
type listResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// pageParams reads page/limit query parameters, leaving normalization to the
// service layer.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
