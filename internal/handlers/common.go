// common.go
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

package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/middleware"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/repositories"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/localnerve/movieapp/internal/utils"
)

// parseID reads a positive integer path parameter
func parseID(c *fiber.Ctx, name string) (int, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, types.InvalidArgumentf("%s must be a positive integer, got %q", name, c.Params(name))
	}
	return id, nil
}

// queryID reads a positive integer query parameter
func queryID(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	id := c.QueryInt(name)
	if raw == "" || id <= 0 {
		return 0, types.InvalidArgumentf("query parameter %s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

// badRequest renders a malformed request body
func badRequest(c *fiber.Ctx, err error, operation string) error {
	return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, operation)
}

// currentUser loads the user named by the bearer token
func currentUser(c *fiber.Ctx, users *repositories.UserRepository) (*models.User, error) {
	user, err := users.GetByName(middleware.Username(c))
	if errors.Is(err, types.ErrNotFound) {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Token user no longer exists",
			Type:    "data.authorization.user",
		}
	}
	return user, err
}

// requireSelf allows the request only when the bearer token belongs to userID
func requireSelf(c *fiber.Ctx, users *repositories.UserRepository, userID int) error {
	if !users.Exists(userID) {
		return types.NotFoundf("user %d", userID)
	}
	user, err := currentUser(c, users)
	if err != nil {
		return err
	}
	if user.ID != userID {
		return forbidden(fmt.Sprintf("User %d cannot modify user %d", user.ID, userID))
	}
	return nil
}

func forbidden(message string) error {
	return &types.CustomError{
		Code:    fiber.StatusForbidden,
		Message: message,
		Type:    "data.authorization.owner",
	}
}
