package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Paginate reads page/limit query params with the 1/10 defaults every list
// endpoint shares and returns the derived offset.
func Paginate(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	return (int(total) + limit - 1) / limit
}
