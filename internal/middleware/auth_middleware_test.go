package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-stock-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireAuth("secret"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("operator").(string))
	})

	token, err := jwt.GenerateToken([]byte("secret"), "bob", time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", 401},
		{"wrong scheme", "Basic " + token, 401},
		{"garbage", "Bearer nope", 401},
		{"valid", "Bearer " + token, 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
