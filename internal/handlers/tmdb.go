// tmdb.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/services"
	"github.com/localnerve/movieapp/internal/tmdb"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/localnerve/movieapp/internal/utils"
	"gorm.io/gorm"
)

// TMDBHandler handles movie lookup and import routes
type TMDBHandler struct {
	DB     *gorm.DB
	Client *tmdb.Client
	Policy string
}

// importRequest accepts the TMDB id as a number or a string
type importRequest struct {
	TmdbID types.FlexInt `json:"tmdbId"`
}

// SearchMovies handles GET /api/tmdb/search?query=&page=
// @Summary Search TMDB movies by title
// @Tags TMDB
// @Produce json
// @Param query query string true "Title to search for"
// @Param page query int false "Result page"
// @Success 200 {object} dto.MovieSearchDto
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /tmdb/search [get]
func (h *TMDBHandler) SearchMovies(c *fiber.Ctx) error {
	res, err := services.SearchMovies(h.Client, c.Query("query"), c.QueryInt("page", 1))
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "searchMovies")
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// GetMovie handles GET /api/tmdb/movie/:id
// @Summary Get TMDB movie details
// @Tags TMDB
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} dto.MovieDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tmdb/movie/{id} [get]
func (h *TMDBHandler) GetMovie(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getMovie")
	}
	movie, err := services.GetMovie(h.Client, id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getMovie")
	}
	return utils.SuccessResponse(c, movie, fiber.StatusOK)
}

// GetGenres handles GET /api/tmdb/genres
// @Summary List TMDB movie genre names
// @Tags TMDB
// @Produce json
// @Success 200 {array} string
// @Router /tmdb/genres [get]
func (h *TMDBHandler) GetGenres(c *fiber.Ctx) error {
	genres, err := services.MovieGenres(h.Client)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getGenres")
	}
	return utils.SuccessResponse(c, genres, fiber.StatusOK)
}

// ImportMovie handles POST /api/tmdb/import
// @Summary Create a show from a TMDB movie
// @Tags TMDB
// @Accept json
// @Produce json
// @Param movie body importRequest true "TMDB movie"
// @Success 201 {object} dto.ShowDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /tmdb/import [post]
func (h *TMDBHandler) ImportMovie(c *fiber.Ctx) error {
	var body importRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "importMovie")
	}
	if body.TmdbID.Int() <= 0 {
		return utils.RepositoryErrorResponse(c, types.InvalidArgumentf("tmdbId is required"), "importMovie")
	}
	show, err := services.ImportMovie(h.DB, h.Client, h.Policy, body.TmdbID.Int())
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "importMovie")
	}
	return utils.SuccessResponse(c, dto.ShowFromModel(*show), fiber.StatusCreated)
}
