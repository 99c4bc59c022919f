// show.go
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
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/repositories"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/localnerve/movieapp/internal/utils"
	"gorm.io/gorm"
)

// ShowHandler handles show routes
type ShowHandler struct {
	DB     *gorm.DB
	Policy string
}

func (h *ShowHandler) shows() *repositories.ShowRepository {
	return repositories.NewShowRepository(database.NewGateway(h.DB), h.Policy)
}

// GetShows handles GET /api/show
// @Summary List shows
// @Tags Show
// @Produce json
// @Success 200 {array} dto.ShowDto
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /show [get]
func (h *ShowHandler) GetShows(c *fiber.Ctx) error {
	shows, err := h.shows().List()
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getShows")
	}
	return utils.SuccessResponse(c, dto.ShowsFromModels(shows), fiber.StatusOK)
}

// GetShow handles GET /api/show/:id
// @Summary Get a show
// @Tags Show
// @Produce json
// @Param id path int true "Show ID"
// @Success 200 {object} dto.ShowDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /show/{id} [get]
func (h *ShowHandler) GetShow(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getShow")
	}
	show, err := h.shows().Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getShow")
	}
	return utils.SuccessResponse(c, dto.ShowFromModel(*show), fiber.StatusOK)
}

// GetShowTags handles GET /api/show/:id/tags
// @Summary List the tags of a show
// @Tags Show
// @Produce json
// @Param id path int true "Show ID"
// @Success 200 {array} dto.TagDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /show/{id}/tags [get]
func (h *ShowHandler) GetShowTags(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getShowTags")
	}
	shows := h.shows()
	if !shows.Exists(id) {
		return utils.RepositoryErrorResponse(c, types.NotFoundf("show %d", id), "getShowTags")
	}
	tags, err := shows.TagsOf(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getShowTags")
	}
	return utils.SuccessResponse(c, dto.TagsFromModels(tags), fiber.StatusOK)
}

// GetShowBinges handles GET /api/show/:id/binges
// @Summary List the binges that contain a show
// @Tags Show
// @Produce json
// @Param id path int true "Show ID"
// @Success 200 {array} dto.BingeDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /show/{id}/binges [get]
func (h *ShowHandler) GetShowBinges(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getShowBinges")
	}
	shows := h.shows()
	if !shows.Exists(id) {
		return utils.RepositoryErrorResponse(c, types.NotFoundf("show %d", id), "getShowBinges")
	}
	binges, err := shows.BingesWith(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getShowBinges")
	}
	return utils.SuccessResponse(c, dto.BingesFromModels(binges), fiber.StatusOK)
}

// CreateShow handles POST /api/show
// @Summary Create a show
// @Description Duplicates are detected by title or by id depending on SHOW_ID_POLICY
// @Tags Show
// @Accept json
// @Produce json
// @Param show body dto.ShowDto true "Show"
// @Success 201 {object} dto.ShowDto
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /show [post]
func (h *ShowHandler) CreateShow(c *fiber.Ctx) error {
	var body dto.ShowDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "createShow")
	}
	show := body.Model()
	if err := h.shows().Create(&show); err != nil {
		return utils.RepositoryErrorResponse(c, err, "createShow")
	}
	return utils.SuccessResponse(c, dto.ShowFromModel(show), fiber.StatusCreated)
}

// UpdateShow handles PUT /api/show/:id
// @Summary Replace a show
// @Tags Show
// @Accept json
// @Param id path int true "Show ID"
// @Param show body dto.ShowDto true "Show"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /show/{id} [put]
func (h *ShowHandler) UpdateShow(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateShow")
	}
	var body dto.ShowDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "updateShow")
	}
	if body.ID != 0 && body.ID != id {
		return utils.ErrorResponse(c, "Show id in body does not match the path", fiber.StatusBadRequest, "updateShow")
	}
	body.ID = id

	show := body.Model()
	if err := h.shows().Update(&show); err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateShow")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddTagToShow handles PUT /api/show/:id/newTag?tagId=
// @Summary Tag a show
// @Tags Show
// @Produce json
// @Param id path int true "Show ID"
// @Param tagId query int true "Tag ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /show/{id}/newTag [put]
func (h *ShowHandler) AddTagToShow(c *fiber.Ctx) error {
	showID, tagID, err := showAndQuery(c, "tagId")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "addTagToShow")
	}
	if err := h.shows().AddTag(showID, tagID); err != nil {
		return utils.RepositoryErrorResponse(c, err, "addTagToShow")
	}
	return utils.MessageResponse(c, "Tag successfully added to show")
}

// DeleteShow handles DELETE /api/show/:id
// @Summary Delete a show with its tag, binge and favorite rows
// @Tags Show
// @Produce json
// @Param id path int true "Show ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /show/{id} [delete]
func (h *ShowHandler) DeleteShow(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteShow")
	}
	shows := h.shows()
	show, err := shows.Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteShow")
	}
	if err := shows.Delete(show); err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteShow")
	}
	return utils.MessageResponse(c, "Show was successfully deleted")
}

// RemoveTagFromShow handles DELETE /api/show/:id/removeTag?tagId=
// @Summary Untag a show
// @Tags Show
// @Produce json
// @Param id path int true "Show ID"
// @Param tagId query int true "Tag ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /show/{id}/removeTag [delete]
func (h *ShowHandler) RemoveTagFromShow(c *fiber.Ctx) error {
	showID, tagID, err := showAndQuery(c, "tagId")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeTagFromShow")
	}
	if err := h.shows().RemoveTag(showID, tagID); err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeTagFromShow")
	}
	return utils.MessageResponse(c, "Tag was successfully removed from show")
}

// RemoveAllTagsFromShow handles DELETE /api/show/:id/removeAllTags
// @Summary Remove every tag of a show
// @Tags Show
// @Produce json
// @Param id path int true "Show ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /show/{id}/removeAllTags [delete]
func (h *ShowHandler) RemoveAllTagsFromShow(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllTagsFromShow")
	}
	if err := h.shows().RemoveAllTags(id); err != nil {
		return utils.RepositoryErrorResponse(c, err, "removeAllTagsFromShow")
	}
	return utils.MessageResponse(c, "All tags were successfully removed from show")
}

// showAndQuery reads the :id path parameter and a second id from the query
func showAndQuery(c *fiber.Ctx, query string) (int, int, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	other, err := queryID(c, query)
	if err != nil {
		return 0, 0, err
	}
	return id, other, nil
}
