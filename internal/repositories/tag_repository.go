// tag_repository.go
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

package repositories

import (
	"fmt"
	"strings"

	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/types"
)

// TagRepository manages tags
type TagRepository struct {
	gw *database.Gateway
}

// NewTagRepository creates a tag repository
func NewTagRepository(gw *database.Gateway) *TagRepository {
	return &TagRepository{gw: gw}
}

// Exists reports whether a tag with id exists
func (r *TagRepository) Exists(id int) bool {
	return exists(r.gw.Tags().Where("id = ?", id))
}

// ExistsByName reports whether a tag with the name exists, ignoring case and surrounding space
func (r *TagRepository) ExistsByName(name string) bool {
	return exists(r.gw.Tags().Where(sameName("name"), strings.TrimSpace(name)))
}

// Get returns the tag with id
func (r *TagRepository) Get(id int) (*models.Tag, error) {
	var tag models.Tag
	if err := first(r.gw.Tags().Where("id = ?", id), &tag, fmt.Sprintf("tag %d", id)); err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByName returns the tag whose name matches exactly after trimming
func (r *TagRepository) GetByName(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	var tag models.Tag
	if err := first(r.gw.Tags().Where("name = ?", name), &tag, fmt.Sprintf("tag %q", name)); err != nil {
		return nil, err
	}
	return &tag, nil
}

// List returns all tags ordered by id
func (r *TagRepository) List() ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := find(r.gw.Tags().Order("id ASC"), &tags, "tags"); err != nil {
		return nil, err
	}
	return tags, nil
}

// ShowsWith returns the shows carrying a tag
func (r *TagRepository) ShowsWith(tagID int) ([]models.Show, error) {
	shows := []models.Show{}
	showIDs := r.gw.ShowTags().Select("show_id").Where("tag_id = ?", tagID)
	if err := find(r.gw.Shows().Where("id IN (?)", showIDs).Order("id ASC"), &shows, "tagged shows"); err != nil {
		return nil, err
	}
	return shows, nil
}

// Create inserts a tag with a name not yet used by another tag
func (r *TagRepository) Create(tag *models.Tag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return types.InvalidArgumentf("tag name is required")
	}
	if r.ExistsByName(tag.Name) {
		return types.Conflictf("tag %q already exists", tag.Name)
	}

	if err := r.gw.Add(tag); err != nil {
		return abort(r.gw, "create tag", err)
	}
	return save(r.gw, "create tag")
}

// CreateMany inserts several tags in one commit. Nothing is inserted if any tag is invalid
// or duplicated, including duplicates within tags.
func (r *TagRepository) CreateMany(tags []models.Tag) error {
	const op = "create tags"
	seen := make(map[string]bool, len(tags))
	for i := range tags {
		tag := &tags[i]
		tag.Name = strings.TrimSpace(tag.Name)
		key := normalize(tag.Name)
		switch {
		case tag.Name == "":
			return abort(r.gw, op, types.InvalidArgumentf("tag %d: name is required", i))
		case seen[key] || r.ExistsByName(tag.Name):
			return abort(r.gw, op, types.Conflictf("tag %q already exists", tag.Name))
		}
		seen[key] = true
		if err := r.gw.Add(tag); err != nil {
			return abort(r.gw, op, err)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return save(r.gw, op)
}

// Update replaces every field of the tag with id tag.ID
func (r *TagRepository) Update(tag *models.Tag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return types.InvalidArgumentf("tag name is required")
	}
	if !r.Exists(tag.ID) {
		return types.NotFoundf("tag %d", tag.ID)
	}
	if exists(r.gw.Tags().Where(sameName("name")+" AND id <> ?", tag.Name, tag.ID)) {
		return types.Conflictf("tag %q already exists", tag.Name)
	}

	if err := r.gw.Update(tag); err != nil {
		return abort(r.gw, "update tag", err)
	}
	return save(r.gw, "update tag")
}

// Delete removes the tag from every show, then the tag, in one commit
func (r *TagRepository) Delete(tag *models.Tag) error {
	const op = "delete tag"
	if !r.Exists(tag.ID) {
		return types.NotFoundf("tag %d", tag.ID)
	}

	var rows []models.ShowTag
	if err := find(r.gw.ShowTags().Where("tag_id = ?", tag.ID), &rows, "tagged shows"); err != nil {
		return err
	}
	if err := r.gw.RemoveRange(rows); err != nil {
		return abort(r.gw, op, err)
	}
	if err := r.gw.Remove(&models.Tag{ID: tag.ID}); err != nil {
		return abort(r.gw, op, err)
	}
	return save(r.gw, op)
}

// RemoveFromAllShows detaches the tag from every show and keeps the tag
func (r *TagRepository) RemoveFromAllShows(tagID int) error {
	if !r.Exists(tagID) {
		return types.NotFoundf("tag %d", tagID)
	}

	var rows []models.ShowTag
	if err := find(r.gw.ShowTags().Where("tag_id = ?", tagID), &rows, "tagged shows"); err != nil {
		return err
	}
	return removeRows(r.gw, "remove tag from all shows", rows)
}
