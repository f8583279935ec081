package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// listParams holds the shared query parameters of the listing endpoints.
// Sort field and order are passed through untouched; the listing service
// maps unknown values to its defaults.
type listParams struct {
	Search string
	SortBy string
	Order  string
}

func readListParams(c echo.Context) listParams {
	sortBy := c.QueryParam("sort_by")
	if sortBy == "" {
		sortBy = c.QueryParam("sortBy")
	}
	return listParams{
		Search: c.QueryParam("search"),
		SortBy: strings.TrimSpace(sortBy),
		Order:  strings.ToUpper(strings.TrimSpace(c.QueryParam("order"))),
	}
}
