// middleware_test.go
//
// A show, binge and tag tracking service with JWT auth and TMDB lookup
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of movieapp.
// movieapp is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// movieapp is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with movieapp.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/config"
	"github.com/localnerve/movieapp/internal/services"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens() *services.TokenService {
	return services.NewTokenService(&config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "movieapp",
		JWTAudience: "movieapp-api",
		JWTTTL:      time.Hour,
	}, services.NewMemoryTokenRevoker())
}

func newApp(tokens *services.TokenService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*types.CustomError); ok {
				return c.Status(e.Code).SendString(e.Type)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(VersionMiddleware())
	app.Get("/private", RequireAuth(tokens), func(c *fiber.Ctx) error {
		return c.SendString(Username(c))
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	tokens := newTokens()
	app := newApp(tokens)
	token, _, err := tokens.Issue("Dave")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	require.NoError(t, tokens.Revoke(token))
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "revoked tokens are refused")
}

func TestVersionMiddleware(t *testing.T) {
	app := newApp(newTokens())
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("X-Api-Version", "1.0")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIVersion, resp.Header.Get("X-Api-Version"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIVersion, resp.Header.Get("X-Api-Version"))
}
