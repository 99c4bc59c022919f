// binge.go
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
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/repositories"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/localnerve/movieapp/internal/utils"
	"gorm.io/gorm"
)

// BingeHandler handles binge routes. Binges are created through the user routes.
type BingeHandler struct {
	DB *gorm.DB
}

// owned returns a binge repository after checking that the token user owns bingeID
func (h *BingeHandler) owned(c *fiber.Ctx, bingeID int) (*repositories.BingeRepository, error) {
	gw := database.NewGateway(h.DB)
	binges := repositories.NewBingeRepository(gw)
	if !binges.Exists(bingeID) {
		return nil, types.NotFoundf("binge %d", bingeID)
	}
	user, err := currentUser(c, repositories.NewUserRepository(gw))
	if err != nil {
		return nil, err
	}
	if !binges.OwnedBy(user.ID, bingeID) {
		return nil, forbidden(fmt.Sprintf("Binge %d does not belong to user %d", bingeID, user.ID))
	}
	return binges, nil
}

// GetBinges handles GET /api/binge
// @Summary List all binges
// @Tags Binge
// @Produce json
// @Success 200 {array} dto.BingeDto
// @Router /binge [get]
func (h *BingeHandler) GetBinges(c *fiber.Ctx) error {
	binges, err := repositories.NewBingeRepository(database.NewGateway(h.DB)).ListPublic()
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBinges")
	}
	return utils.SuccessResponse(c, dto.BingesFromModels(binges), fiber.StatusOK)
}

// GetBinge handles GET /api/binge/:id
// @Summary Get a binge with its total timespan and show counts
// @Tags Binge
// @Produce json
// @Param id path int true "Binge ID"
// @Success 200 {object} dto.BingeExtDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /binge/{id} [get]
func (h *BingeHandler) GetBinge(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBinge")
	}
	binges := repositories.NewBingeRepository(database.NewGateway(h.DB))
	binge, err := binges.Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBinge")
	}
	stats, err := binges.Stats(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBinge")
	}
	ext := dto.BingeExtFromModel(*binge, stats.Timespan, stats.ShowCount, stats.UnknownTimespanCount)
	return utils.SuccessResponse(c, ext, fiber.StatusOK)
}

// GetBingeShows handles GET /api/binge/:id/shows
// @Summary List the shows in a binge
// @Tags Binge
// @Produce json
// @Param id path int true "Binge ID"
// @Success 200 {array} dto.ShowDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /binge/{id}/shows [get]
func (h *BingeHandler) GetBingeShows(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBingeShows")
	}
	binges := repositories.NewBingeRepository(database.NewGateway(h.DB))
	if !binges.Exists(id) {
		return utils.RepositoryErrorResponse(c, types.NotFoundf("binge %d", id), "getBingeShows")
	}
	shows, err := binges.ShowsIn(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBingeShows")
	}
	return utils.SuccessResponse(c, dto.ShowsFromModels(shows), fiber.StatusOK)
}

// GetBingeTags handles GET /api/binge/:id/tags
// @Summary List the distinct tags of the shows in a binge
// @Tags Binge
// @Produce json
// @Param id path int true "Binge ID"
// @Success 200 {array} dto.TagDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /binge/{id}/tags [get]
func (h *BingeHandler) GetBingeTags(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBingeTags")
	}
	binges := repositories.NewBingeRepository(database.NewGateway(h.DB))
	if !binges.Exists(id) {
		return utils.RepositoryErrorResponse(c, types.NotFoundf("binge %d", id), "getBingeTags")
	}
	tags, err := binges.TagsIn(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getBingeTags")
	}
	return utils.SuccessResponse(c, dto.TagsFromModels(tags), fiber.StatusOK)
}

// UpdateBinge handles PUT /api/binge/:id
// @Summary Rename or describe a binge
// @Tags Binge
// @Accept json
// @Param id path int true "Binge ID"
// @Param binge body dto.BingeDto true "Binge"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /binge/{id} [put]
func (h *BingeHandler) UpdateBinge(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateBinge")
	}
	var body dto.BingeDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "updateBinge")
	}
	if body.ID != 0 && body.ID != id {
		return utils.ErrorResponse(c, "Binge id in body does not match the path", fiber.StatusBadRequest, "updateBinge")
	}
	body.ID = id

	binges, err := h.owned(c, id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateBinge")
	}
	binge := body.Model()
	if err := binges.Update(&binge); err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateBinge")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddShowToBinge handles PUT /api/binge/:id/newShow?showId=
// @Summary Add a show to a binge
// @Tags Binge
// @Produce json
// @Param id path int true "Binge ID"
// @Param showId query int true "Show ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /binge/{id}/newShow [put]
func (h *BingeHandler) AddShowToBinge(c *fiber.Ctx) error {
	bingeID, showID, err := showAndQuery(c, "showId")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "addShowToBinge")
	}
	binges, err := h.owned(c, bingeID)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "addShowToBinge")
	}
	if err := binges.AddShow(bingeID, showID); err != nil {
		return utils.RepositoryErrorResponse(c, err, "addShowToBinge")
	}
	return utils.MessageResponse(c, "Show successfully added to binge")
}

// RemoveShowFromBinge handles DELETE /api/binge/:id/removeShow?showId=
// @Summary Take a show out of a binge
// @Tags Binge
// @Produce json
// @Param id path int true "Binge ID"
// @Param showId query int true "Show ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /binge/{id}/removeShow [delete]
func (h *BingeHandler) RemoveShowFromBinge(c *fiber.Ctx) error {
	bingeID, showID, err := showAndQuery(c, "showId")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeShowFromBinge")
	}
	binges, err := h.owned(c, bingeID)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeShowFromBinge")
	}
	if err := binges.RemoveShow(bingeID, showID); err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeShowFromBinge")
	}
	return utils.MessageResponse(c, "Show was successfully removed from binge")
}

// RemoveAllShowsFromBinge handles DELETE /api/binge/:id/removeAllShows
// @Summary Empty a binge
// @Tags Binge
// @Produce json
// @Param id path int true "Binge ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /binge/{id}/removeAllShows [delete]
func (h *BingeHandler) RemoveAllShowsFromBinge(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllShowsFromBinge")
	}
	binges, err := h.owned(c, id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllShowsFromBinge")
	}
	if err := binges.RemoveAllShows(id); err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllShowsFromBinge")
	}
	return utils.MessageResponse(c, "All shows were successfully removed from binge")
}

// DeleteBinge handles DELETE /api/binge/:id
// @Summary Delete a binge with its show rows
// @Tags Binge
// @Produce json
// @Param id path int true "Binge ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /binge/{id} [delete]
func (h *BingeHandler) DeleteBinge(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteBinge")
	}
	binges, err := h.owned(c, id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteBinge")
	}
	binge, err := binges.Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteBinge")
	}
	if err := binges.Delete(binge); err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteBinge")
	}
	return utils.MessageResponse(c, "Binge was successfully deleted")
}
