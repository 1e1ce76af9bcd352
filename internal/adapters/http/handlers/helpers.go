package handlers

import (
	"certportal/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// paged returns items as is, or one page of them when the query asks for one
func paged[T any](c *fiber.Ctx, items []T) interface{} {
	if items == nil {
		items = []T{}
	}
	params := pagination.GetParams(c)
	if params == nil {
		return items
	}
	return pagination.Slice(items, params)
}
