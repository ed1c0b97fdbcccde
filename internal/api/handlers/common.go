package handlers

import (
	"blood-portal/domain"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func pagination(c *fiber.Ctx) (int, int) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(c, "limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// invalid turns parser and validator failures into validation errors so they
// render with the right code.
func invalid(err error) error {
	return domain.ValidationError(err.Error())
}
