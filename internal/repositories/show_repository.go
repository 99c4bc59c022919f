// show_repository.go
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

	"github.com/localnerve/movieapp/internal/config"
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/types"
)

// ShowRepository manages shows and their tag associations
type ShowRepository struct {
	gw     *database.Gateway
	policy string
}

// NewShowRepository creates a show repository. policy is config.ShowIDPolicyTitle or
// config.ShowIDPolicyID and selects how Create detects duplicates.
func NewShowRepository(gw *database.Gateway, policy string) *ShowRepository {
	if policy == "" {
		policy = config.ShowIDPolicyTitle
	}
	return &ShowRepository{gw: gw, policy: policy}
}

// Exists reports whether a show with id exists
func (r *ShowRepository) Exists(id int) bool {
	return exists(r.gw.Shows().Where("id = ?", id))
}

// ExistsByTitle reports whether a show with the title exists, ignoring case and surrounding space
func (r *ShowRepository) ExistsByTitle(title string) bool {
	return exists(r.gw.Shows().Where(sameName("title"), strings.TrimSpace(title)))
}

// Get returns the show with id
func (r *ShowRepository) Get(id int) (*models.Show, error) {
	var show models.Show
	if err := first(r.gw.Shows().Where("id = ?", id), &show, fmt.Sprintf("show %d", id)); err != nil {
		return nil, err
	}
	return &show, nil
}

// GetByTitle returns the show whose title matches exactly after trimming
func (r *ShowRepository) GetByTitle(title string) (*models.Show, error) {
	title = strings.TrimSpace(title)
	var show models.Show
	if err := first(r.gw.Shows().Where("title = ?", title), &show, fmt.Sprintf("show %q", title)); err != nil {
		return nil, err
	}
	return &show, nil
}

// List returns all shows ordered by id
func (r *ShowRepository) List() ([]models.Show, error) {
	shows := []models.Show{}
	if err := find(r.gw.Shows().Order("id ASC"), &shows, "shows"); err != nil {
		return nil, err
	}
	return shows, nil
}

// TagsOf returns the tags of a show, empty when it has none
func (r *ShowRepository) TagsOf(showID int) ([]models.Tag, error) {
	tags := []models.Tag{}
	tagIDs := r.gw.ShowTags().Select("tag_id").Where("show_id = ?", showID)
	if err := find(r.gw.Tags().Where("id IN (?)", tagIDs).Order("id ASC"), &tags, "show tags"); err != nil {
		return nil, err
	}
	return tags, nil
}

// BingesWith returns the binges that contain a show
func (r *ShowRepository) BingesWith(showID int) ([]models.Binge, error) {
	binges := []models.Binge{}
	bingeIDs := r.gw.ShowBinges().Select("binge_id").Where("show_id = ?", showID)
	if err := find(r.gw.Binges().Where("id IN (?)", bingeIDs).Order("id ASC"), &binges, "show binges"); err != nil {
		return nil, err
	}
	return binges, nil
}

// Create inserts a show after the duplicate check selected by the repository policy
func (r *ShowRepository) Create(show *models.Show) error {
	show.Title = strings.TrimSpace(show.Title)
	if show.Title == "" {
		return types.InvalidArgumentf("show title is required")
	}

	switch r.policy {
	case config.ShowIDPolicyID:
		if show.ID == 0 {
			return types.InvalidArgumentf("show id is required")
		}
		if r.Exists(show.ID) {
			return types.Conflictf("show %d already exists", show.ID)
		}
	default:
		if r.ExistsByTitle(show.Title) {
			return types.Conflictf("show %q already exists", show.Title)
		}
		if show.ID != 0 && r.Exists(show.ID) {
			return types.Conflictf("show %d already exists", show.ID)
		}
	}

	if err := r.gw.Add(show); err != nil {
		return abort(r.gw, "create show", err)
	}
	return save(r.gw, "create show")
}

// Update replaces every field of the show with id show.ID
func (r *ShowRepository) Update(show *models.Show) error {
	show.Title = strings.TrimSpace(show.Title)
	if show.Title == "" {
		return types.InvalidArgumentf("show title is required")
	}
	if !r.Exists(show.ID) {
		return types.NotFoundf("show %d", show.ID)
	}
	if r.policy != config.ShowIDPolicyID &&
		exists(r.gw.Shows().Where(sameName("title")+" AND id <> ?", show.Title, show.ID)) {
		return types.Conflictf("show %q already exists", show.Title)
	}

	if err := r.gw.Update(show); err != nil {
		return abort(r.gw, "update show", err)
	}
	return save(r.gw, "update show")
}

// Delete removes the show's tag, binge and favorite rows, then the show, in one commit
func (r *ShowRepository) Delete(show *models.Show) error {
	const op = "delete show"
	if !r.Exists(show.ID) {
		return types.NotFoundf("show %d", show.ID)
	}

	var tags []models.ShowTag
	if err := find(r.gw.ShowTags().Where("show_id = ?", show.ID), &tags, "show tags"); err != nil {
		return err
	}
	var binges []models.ShowBinge
	if err := find(r.gw.ShowBinges().Where("show_id = ?", show.ID), &binges, "show binges"); err != nil {
		return err
	}
	var favorites []models.FavoriteShow
	if err := find(r.gw.FavoriteShows().Where("show_id = ?", show.ID), &favorites, "show favorites"); err != nil {
		return err
	}

	for _, staged := range []interface{}{tags, binges, favorites} {
		if err := r.gw.RemoveRange(staged); err != nil {
			return abort(r.gw, op, err)
		}
	}
	if err := r.gw.Remove(&models.Show{ID: show.ID}); err != nil {
		return abort(r.gw, op, err)
	}
	return save(r.gw, op)
}

// HasTag reports whether the show carries the tag
func (r *ShowRepository) HasTag(showID, tagID int) bool {
	return exists(r.gw.ShowTags().Where("show_id = ? AND tag_id = ?", showID, tagID))
}

// AddTag attaches a tag to a show
func (r *ShowRepository) AddTag(showID, tagID int) error {
	if !r.Exists(showID) {
		return types.NotFoundf("show %d", showID)
	}
	if !exists(r.gw.Tags().Where("id = ?", tagID)) {
		return types.NotFoundf("tag %d", tagID)
	}
	if r.HasTag(showID, tagID) {
		return types.Conflictf("show %d already has tag %d", showID, tagID)
	}

	if err := r.gw.Add(&models.ShowTag{ShowID: showID, TagID: tagID}); err != nil {
		return abort(r.gw, "add tag", err)
	}
	return save(r.gw, "add tag")
}

// RemoveTag detaches a tag from a show
func (r *ShowRepository) RemoveTag(showID, tagID int) error {
	if !r.HasTag(showID, tagID) {
		return types.NotFoundf("show %d does not have tag %d", showID, tagID)
	}

	if err := r.gw.Remove(&models.ShowTag{ShowID: showID, TagID: tagID}); err != nil {
		return abort(r.gw, "remove tag", err)
	}
	return save(r.gw, "remove tag")
}

// RemoveAllTags detaches every tag from a show. A show without tags is left as is.
func (r *ShowRepository) RemoveAllTags(showID int) error {
	if !r.Exists(showID) {
		return types.NotFoundf("show %d", showID)
	}

	var rows []models.ShowTag
	if err := find(r.gw.ShowTags().Where("show_id = ?", showID), &rows, "show tags"); err != nil {
		return err
	}
	return removeRows(r.gw, "remove all tags", rows)
}

// RemoveFromAllBinges takes a show out of every binge that holds it
func (r *ShowRepository) RemoveFromAllBinges(showID int) error {
	if !r.Exists(showID) {
		return types.NotFoundf("show %d", showID)
	}

	var rows []models.ShowBinge
	if err := find(r.gw.ShowBinges().Where("show_id = ?", showID), &rows, "show binges"); err != nil {
		return err
	}
	return removeRows(r.gw, "remove from all binges", rows)
}
