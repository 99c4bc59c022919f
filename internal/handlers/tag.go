// tag.go
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

// TagHandler handles tag routes
type TagHandler struct {
	DB *gorm.DB
}

func (h *TagHandler) tags() *repositories.TagRepository {
	return repositories.NewTagRepository(database.NewGateway(h.DB))
}

// GetTags handles GET /api/tag
// @Summary List tags
// @Tags Tag
// @Produce json
// @Success 200 {array} dto.TagDto
// @Router /tag [get]
func (h *TagHandler) GetTags(c *fiber.Ctx) error {
	tags, err := h.tags().List()
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getTags")
	}
	return utils.SuccessResponse(c, dto.TagsFromModels(tags), fiber.StatusOK)
}

// GetTag handles GET /api/tag/byId/:id
// @Summary Get a tag by id
// @Tags Tag
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} dto.TagDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tag/byId/{id} [get]
func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getTag")
	}
	tag, err := h.tags().Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getTag")
	}
	return utils.SuccessResponse(c, dto.TagFromModel(*tag), fiber.StatusOK)
}

// GetTagByName handles GET /api/tag/byName/:name
// @Summary Get a tag by name
// @Tags Tag
// @Produce json
// @Param name path string true "Tag name"
// @Success 200 {object} dto.TagDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tag/byName/{name} [get]
func (h *TagHandler) GetTagByName(c *fiber.Ctx) error {
	tag, err := h.tags().GetByName(c.Params("name"))
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getTagByName")
	}
	return utils.SuccessResponse(c, dto.TagFromModel(*tag), fiber.StatusOK)
}

// GetTagShows handles GET /api/tag/:id/shows
// @Summary List the shows carrying a tag
// @Tags Tag
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {array} dto.ShowDto
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tag/{id}/shows [get]
func (h *TagHandler) GetTagShows(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getTagShows")
	}
	tags := h.tags()
	if !tags.Exists(id) {
		return utils.RepositoryErrorResponse(c, types.NotFoundf("tag %d", id), "getTagShows")
	}
	shows, err := tags.ShowsWith(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "getTagShows")
	}
	return utils.SuccessResponse(c, dto.ShowsFromModels(shows), fiber.StatusOK)
}

// CreateTags handles POST /api/tag
// @Summary Create one tag or a batch of tags
// @Description The body is a tag object or an array of tags; the response has the same shape
// @Tags Tag
// @Accept json
// @Produce json
// @Param tags body []dto.TagDto true "Tag or tags"
// @Success 201 {array} dto.TagDto
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /tag [post]
func (h *TagHandler) CreateTags(c *fiber.Ctx) error {
	var body types.FlexList[dto.TagDto]
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "createTags")
	}
	if body.Len() == 0 {
		return utils.RepositoryErrorResponse(c, types.InvalidArgumentf("at least one tag is required"), "createTags")
	}

	tags := dto.TagsToModels(body.Items)
	repo := h.tags()
	if !body.Array {
		if err := repo.Create(&tags[0]); err != nil {
			return utils.RepositoryErrorResponse(c, err, "createTags")
		}
		return utils.SuccessResponse(c, dto.TagFromModel(tags[0]), fiber.StatusCreated)
	}

	if err := repo.CreateMany(tags); err != nil {
		return utils.RepositoryErrorResponse(c, err, "createTags")
	}
	return utils.SuccessResponse(c, dto.TagsFromModels(tags), fiber.StatusCreated)
}

// UpdateTag handles PUT /api/tag/:id
// @Summary Replace a tag
// @Tags Tag
// @Accept json
// @Param id path int true "Tag ID"
// @Param tag body dto.TagDto true "Tag"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /tag/{id} [put]
func (h *TagHandler) UpdateTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateTag")
	}
	var body dto.TagDto
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err, "updateTag")
	}
	if body.ID != 0 && body.ID != id {
		return utils.ErrorResponse(c, "Tag id in body does not match the path", fiber.StatusBadRequest, "updateTag")
	}
	body.ID = id

	tag := body.Model()
	if err := h.tags().Update(&tag); err != nil {
		return utils.RepositoryErrorResponse(c, err, "updateTag")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteTag handles DELETE /api/tag/:id
// @Summary Delete a tag and detach it from every show
// @Tags Tag
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /tag/{id} [delete]
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteTag")
	}
	tags := h.tags()
	tag, err := tags.Get(id)
	if err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteTag")
	}
	if err := tags.Delete(tag); err != nil {
		return utils.RepositoryErrorResponse(c, err, "deleteTag")
	}
	return utils.MessageResponse(c, "Tag was successfully deleted")
}
