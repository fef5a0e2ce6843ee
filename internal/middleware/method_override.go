package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverrideParam is the query or form field carrying the intended method.
const MethodOverrideParam = "_method"

var overridable = map[string]bool{
	fiber.MethodPut:    true,
	fiber.MethodPatch:  true,
	fiber.MethodDelete: true,
}

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes by naming the method in a _method query parameter or form field.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		method := c.Query(MethodOverrideParam)
		if method == "" && strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationForm) {
			method = c.FormValue(MethodOverrideParam)
		}

		method = strings.ToUpper(strings.TrimSpace(method))
		if overridable[method] {
			c.Method(method)
		}
		return c.Next()
	}
}
