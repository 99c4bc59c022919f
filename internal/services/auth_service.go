package services

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/repositories"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/localnerve/movieapp/internal/utils"
	"gorm.io/gorm"
)

// Login checks the credentials against the stored hash and issues a token for the user
func Login(db *gorm.DB, tokens *TokenService, creds dto.LoginDto) (dto.TokenResponse, error) {
	if creds.Name == "" || creds.Password == "" {
		return dto.TokenResponse{}, types.InvalidArgumentf("name and password are required")
	}

	users := repositories.NewUserRepository(database.NewGateway(db))
	user, err := users.GetByName(creds.Name)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return dto.TokenResponse{}, err
	}
	if user == nil || !utils.CheckPassword(creds.Password, user.Password) {
		return dto.TokenResponse{}, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Invalid name or password",
			Type:    "auth.login",
		}
	}

	token, expiresAt, err := tokens.Issue(user.Name)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	return dto.TokenResponse{Token: token, ExpiresAt: expiresAt.Format(time.RFC3339)}, nil
}
