package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestGatewayAuthMiddleware(t *testing.T) {
	t.Setenv("GATEWAY_SERVICE_TOKEN", "sekret")

	app := fiber.New()
	app.Use(GatewayAuthMiddleware())
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing header", authHeader: "", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong token", authHeader: "Bearer yanlis", wantStatus: fiber.StatusUnauthorized},
		{name: "valid bearer token", authHeader: "Bearer sekret", wantStatus: fiber.StatusOK},
		{name: "raw token", authHeader: "sekret", wantStatus: fiber.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/x", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
		})
	}
}
