package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"katalog/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverrideApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.MethodOverride())

	echo := func(c *fiber.Ctx) error { return c.SendString(c.Method()) }
	app.Post("/items/:id", echo)
	app.Put("/items/:id", echo)
	app.Delete("/items/:id", echo)
	app.Get("/items/:id", echo)
	return app
}

func TestMethodOverride(t *testing.T) {
	app := newOverrideApp()

	tests := []struct {
		name   string
		req    func() *http.Request
		expect string
	}{
		{
			name:   "query parameter PUT",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodPost, "/items/1?_method=PUT", nil) },
			expect: fiber.MethodPut,
		},
		{
			name:   "lowercase query parameter DELETE",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodPost, "/items/1?_method=delete", nil) },
			expect: fiber.MethodDelete,
		},
		{
			name: "form field DELETE",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader("_method=DELETE"))
				r.Header.Set("Content-Type", fiber.MIMEApplicationForm)
				return r
			},
			expect: fiber.MethodDelete,
		},
		{
			name:   "unsupported override stays POST",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodPost, "/items/1?_method=GET", nil) },
			expect: fiber.MethodPost,
		},
		{
			name:   "GET is never overridden",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/items/1?_method=DELETE", nil) },
			expect: fiber.MethodGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req(), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, string(body))
		})
	}
}
