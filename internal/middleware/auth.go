package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/services"
	"github.com/localnerve/movieapp/internal/types"
)

// Locals keys set by RequireAuth
const (
	LocalUsername = "username"
	LocalToken    = "token"
)

const authErrorType = "data.authorization.user"

// RequireAuth validates the bearer token and stores the username and raw token in context
func RequireAuth(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return unauthorized(err.Error())
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			if errors.Is(err, services.ErrTokenRevoked) || errors.Is(err, services.ErrInvalidToken) {
				return unauthorized(fmt.Sprintf("Invalid token: %v", err))
			}
			return err
		}

		c.Locals(LocalUsername, claims.Subject)
		c.Locals(LocalToken, token)

		return c.Next()
	}
}

// Username returns the authenticated username, empty when the route is public
func Username(c *fiber.Ctx) string {
	name, _ := c.Locals(LocalUsername).(string)
	return name
}

// Token returns the raw bearer token of the request
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("Authorization header not found")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("Authorization header must be \"Bearer <token>\"")
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(message string) error {
	return &types.CustomError{
		Code:    fiber.StatusUnauthorized,
		Message: message,
		Type:    authErrorType,
	}
}
