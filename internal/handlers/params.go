package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"opsdash/internal/common"
	"opsdash/internal/query"

	"github.com/labstack/echo/v4"
)

// ListResponse wraps a page of records with its pagination metadata.
type ListResponse[T any] struct {
	Data       []T               `json:"data"`
	Pagination common.Pagination `json:"pagination"`
}

// listOptions reads status, search, limit and offset from the query string.
func listOptions(c echo.Context) (query.ListOptions, error) {
	opts := query.ListOptions{
		Status: strings.TrimSpace(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}
	var err error
	if opts.Limit, err = intParam(c, "limit"); err != nil {
		return opts, err
	}
	if opts.Offset, err = intParam(c, "offset"); err != nil {
		return opts, err
	}
	return opts.Normalize()
}

func intParam(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func sendList[T any](c echo.Context, items []T, total int, opts query.ListOptions) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, ListResponse[T]{
		Data: items,
		Pagination: common.Pagination{
			Total:  total,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// idParam returns the trimmed :id path parameter.
func idParam(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", common.NewValidationError("id", "id is required")
	}
	return id, nil
}
