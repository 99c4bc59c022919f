// user.go
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
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/middleware"
	"github.com/localnerve/movieapp/internal/repositories"
	"github.com/localnerve/movieapp/internal/services"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/localnerve/movieapp/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles user, login and logout routes
type UserHandler struct {
	DB     *gorm.DB
	Tokens *services.TokenService
}

func (h *UserHandler) users() *repositories.UserRepository {
	return repositories.NewUserRepository(database.NewGateway(h.DB))
}

// self returns a user repository after checking that the path user is the token user
func (h *UserHandler) self(c *fiber.Ctx) (*repositories.UserRepository, int, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, 0, err
	}
	users := h.users()
	if err := requireSelf(c, users, id); err != nil {
		return nil, 0, err
	}
	return users, id, nil
}

// GetUsers handles GET /api/user
// @Summary List users
// @Tags User
// @Produce json
// @Success 200 {array} dto.UserDto
// @Security BearerAuth
// @Router /user [get]
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.users().List()
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getUsers")
	}
	return utils.SuccessResponse(c, dto.UsersFromModels(users), fiber.StatusOK)
}

// GetUser handles GET /api/user/byId/:id
// @Summary Get a user by id
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/byId/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getUser")
	}
	user, err := h.users().Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getUser")
	}
	return utils.SuccessResponse(c, dto.UserFromModel(*user), fiber.StatusOK)
}

// GetUserByName handles GET /api/user/byName/:name
// @Summary Get a user by name
// @Tags User
// @Produce json
// @Param name path string true "User name"
// @Success 200 {object} dto.UserDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/byName/{name} [get]
func (h *UserHandler) GetUserByName(c *fiber.Ctx) error {
	user, err := h.users().GetByName(c.Params("name"))
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getUserByName")
	}
	return utils.SuccessResponse(c, dto.UserFromModel(*user), fiber.StatusOK)
}

// GetUserBinges handles GET /api/user/:id/binges
// @Summary List the binges a user owns
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} dto.BingeDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id}/binges [get]
func (h *UserHandler) GetUserBinges(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getUserBinges")
	}
	users := h.users()
	if !users.Exists(id) {
		return utils.RepositoryErrorResponse(c, types.NotFoundf("user %d", id), "getUserBinges")
	}
	binges, err := users.BingesOf(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getUserBinges")
	}
	return utils.SuccessResponse(c, dto.BingesFromModels(binges), fiber.StatusOK)
}

// GetFavoriteShows handles GET /api/user/:id/favoriteShows
// @Summary List a user's favorite shows
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} dto.ShowDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id}/favoriteShows [get]
func (h *UserHandler) GetFavoriteShows(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getFavoriteShows")
	}
	users := h.users()
	if !users.Exists(id) {
		return utils.RepositoryErrorResponse(c, types.NotFoundf("user %d", id), "getFavoriteShows")
	}
	shows, err := users.FavoritesOf(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getFavoriteShows")
	}
	return utils.SuccessResponse(c, dto.ShowsFromModels(shows), fiber.StatusOK)
}

// CreateUser handles POST /api/user and PUT /api/user/newUser
// @Summary Register a user
// @Tags User
// @Accept json
// @Produce json
// @Param user body dto.LoginDto true "Credentials"
// @Success 201 {object} dto.UserDto
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /user [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var body dto.LoginDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "createUser")
	}
	user := body.Model()
	user.ID = 0
	if err := h.users().Create(&user); err != nil {
		return utils.RepositoryErrorResponse(c, err, "createUser")
	}
	return utils.SuccessResponse(c, dto.UserFromModel(user), fiber.StatusCreated)
}

// Login handles POST /api/user/login
// @Summary Log in and receive a bearer token
// @Tags User
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDto true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /user/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "login")
	}
	res, err := services.Login(h.DB, h.Tokens, body)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "login")
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// Logout handles POST /api/user/logout
// @Summary Revoke the bearer token
// @Tags User
// @Produce json
// @Success 200 {object} utils.MessageResponseStruct
// @Security BearerAuth
// @Router /user/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := h.Tokens.Revoke(middleware.Token(c)); err != nil {
		return utils.RepositoryErrorResponse(c, err, "logout")
	}
	return utils.MessageResponse(c, "Logged out")
}

// UpdateUser handles POST /api/user/:id
// @Summary Replace the authenticated user's name, email and optionally password
// @Tags User
// @Accept json
// @Param id path int true "User ID"
// @Param user body dto.LoginDto true "User"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id} [post]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var body dto.LoginDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "updateUser")
	}
	users, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateUser")
	}
	if body.ID != 0 && body.ID != id {
		return utils.ErrorResponse(c, "User id in body does not match the path", fiber.StatusBadRequest, "updateUser")
	}
	body.ID = id

	user := body.Model()
	if err := users.Update(&user); err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateUser")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddBingeToUser handles POST /api/user/:id/newBinge
// @Summary Create a binge owned by the authenticated user
// @Tags User
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param binge body dto.BingeDto true "Binge"
// @Success 201 {object} dto.BingeDto
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id}/newBinge [post]
func (h *UserHandler) AddBingeToUser(c *fiber.Ctx) error {
	var body dto.BingeDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "addBingeToUser")
	}
	_, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "addBingeToUser")
	}

	binge := body.Model()
	binge.ID = 0
	if err := repositories.NewBingeRepository(database.NewGateway(h.DB)).Create(&binge, id); err != nil {
		return utils.RepositoryErrorResponse(c, err, "addBingeToUser")
	}
	return utils.SuccessResponse(c, dto.BingeFromModel(binge), fiber.StatusCreated)
}

// AddFavoriteShow handles PUT /api/user/:id/newFavoriteShow?showId=
// @Summary Mark a show as a favorite
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Param showId query int true "Show ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id}/newFavoriteShow [put]
func (h *UserHandler) AddFavoriteShow(c *fiber.Ctx) error {
	showID, err := queryID(c, "showId")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "addFavoriteShow")
	}
	users, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "addFavoriteShow")
	}
	if err := users.AddFavorite(id, showID); err != nil {
		return utils.RepositoryErrorResponse(c, err, "addFavoriteShow")
	}
	return utils.MessageResponse(c, "Show was added to favorite shows")
}

// DeleteUser handles DELETE /api/user/:id
// @Summary Delete the authenticated user with their binges and favorites
// @Description The token used for the request is revoked
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	users, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteUser")
	}
	user, err := users.Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteUser")
	}
	if err := users.Delete(user); err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteUser")
	}
	if err := h.Tokens.Revoke(middleware.Token(c)); err != nil {
		log.Printf("deleteUser: revoke token of user %d: %v", id, err)
	}
	return utils.MessageResponse(c, "User was successfully deleted")
}

// RemoveFavoriteShow handles DELETE /api/user/:id/removeFavoriteShow?showId=
// @Summary Remove a show from favorites
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Param showId query int true "Show ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id}/removeFavoriteShow [delete]
func (h *UserHandler) RemoveFavoriteShow(c *fiber.Ctx) error {
	showID, err := queryID(c, "showId")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeFavoriteShow")
	}
	users, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeFavoriteShow")
	}
	if err := users.RemoveFavoriteShow(id, showID); err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeFavoriteShow")
	}
	return utils.MessageResponse(c, "Favorite show was successfully removed")
}

// RemoveAllFavoriteShows handles DELETE /api/user/:id/removeAllFavoriteShow
// @Summary Clear the favorites of a user
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Security BearerAuth
// @Router /user/{id}/removeAllFavoriteShow [delete]
func (h *UserHandler) RemoveAllFavoriteShows(c *fiber.Ctx) error {
	users, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllFavoriteShows")
	}
	rels, err := users.FavoriteRelations(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllFavoriteShows")
	}
	if err := users.RemoveFavorites(rels); err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllFavoriteShows")
	}
	return utils.MessageResponse(c, "All favorite shows were successfully removed")
}

// DeleteUserBinge handles DELETE /api/user/:id/deleteBinge?bingeId=
// @Summary Delete one of the user's binges
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Param bingeId query int true "Binge ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id}/deleteBinge [delete]
func (h *UserHandler) DeleteUserBinge(c *fiber.Ctx) error {
	bingeID, err := queryID(c, "bingeId")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteUserBinge")
	}
	users, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteUserBinge")
	}
	if err := users.RemoveBinge(id, bingeID); err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteUserBinge")
	}
	return utils.MessageResponse(c, "Binge was successfully deleted")
}

// DeleteAllUserBinges handles DELETE /api/user/:id/DeleteAllBinges
// @Summary Delete every binge the user owns
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Security BearerAuth
// @Router /user/{id}/DeleteAllBinges [delete]
func (h *UserHandler) DeleteAllUserBinges(c *fiber.Ctx) error {
	users, id, err := h.self(c)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteAllUserBinges")
	}
	if err := users.RemoveAllBinges(id); err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteAllUserBinges")
	}
	return utils.MessageResponse(c, "All of the user's binges were successfully deleted")
}
