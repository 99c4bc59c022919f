// binge_repository.go
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

// BingeStats holds the values derived from the shows in a binge.
// Shows with a null or negative timespan count as unknown and add nothing to Timespan.
type BingeStats struct {
	Timespan             int `json:"timespan"`
	UnknownTimespanCount int `json:"unknownTimespanCount"`
	ShowCount            int `json:"showCount"`
}

// IsTimespanAccurate reports whether every show in the binge has a known timespan
func (s BingeStats) IsTimespanAccurate() bool {
	return s.UnknownTimespanCount == 0
}

type bingeStatsRow struct {
	Timespan int64
	Unknown  int64
	Shows    int64
}

// BingeRepository manages binges and the shows in them
type BingeRepository struct {
	gw *database.Gateway
}

// NewBingeRepository creates a binge repository
func NewBingeRepository(gw *database.Gateway) *BingeRepository {
	return &BingeRepository{gw: gw}
}

// Exists reports whether a binge with id exists
func (r *BingeRepository) Exists(bingeID int) bool {
	return exists(r.gw.Binges().Where("id = ?", bingeID))
}

// HasShow reports whether the binge contains the show
func (r *BingeRepository) HasShow(bingeID, showID int) bool {
	return exists(r.gw.ShowBinges().Where("binge_id = ? AND show_id = ?", bingeID, showID))
}

// OwnedBy reports whether the binge belongs to the user
func (r *BingeRepository) OwnedBy(userID, bingeID int) bool {
	return exists(r.gw.Binges().Where("id = ? AND user_id = ?", bingeID, userID))
}

// Get returns the binge with id
func (r *BingeRepository) Get(bingeID int) (*models.Binge, error) {
	var binge models.Binge
	if err := first(r.gw.Binges().Where("id = ?", bingeID), &binge, fmt.Sprintf("binge %d", bingeID)); err != nil {
		return nil, err
	}
	return &binge, nil
}

// ListPublic returns all binges ordered by id
func (r *BingeRepository) ListPublic() ([]models.Binge, error) {
	binges := []models.Binge{}
	if err := find(r.gw.Binges().Order("id ASC"), &binges, "binges"); err != nil {
		return nil, err
	}
	return binges, nil
}

// ShowsIn returns the shows in a binge
func (r *BingeRepository) ShowsIn(bingeID int) ([]models.Show, error) {
	shows := []models.Show{}
	if err := find(r.gw.Shows().Where("id IN (?)", r.showIDs(bingeID)).Order("id ASC"), &shows, "binge shows"); err != nil {
		return nil, err
	}
	return shows, nil
}

// TagsIn returns each tag attached to any show in the binge, once
func (r *BingeRepository) TagsIn(bingeID int) ([]models.Tag, error) {
	tags := []models.Tag{}
	tagIDs := r.gw.ShowTags().Select("tag_id").Where("show_id IN (?)", r.showIDs(bingeID))
	if err := find(r.gw.Tags().Where("id IN (?)", tagIDs).Order("id ASC"), &tags, "binge tags"); err != nil {
		return nil, err
	}
	return tags, nil
}

// Stats computes the timespan, unknown timespan count and show count of a binge in one query
func (r *BingeRepository) Stats(bingeID int) (BingeStats, error) {
	var row bingeStatsRow
	err := r.gw.Shows().
		Select("COALESCE(SUM(CASE WHEN timespan >= 0 THEN timespan ELSE 0 END), 0) AS timespan, "+
			"COALESCE(SUM(CASE WHEN timespan IS NULL OR timespan < 0 THEN 1 ELSE 0 END), 0) AS unknown, "+
			"COUNT(*) AS shows").
		Where("id IN (?)", r.showIDs(bingeID)).
		Scan(&row).Error
	if err != nil {
		return BingeStats{}, types.Storage("binge stats", err)
	}
	return BingeStats{
		Timespan:             int(row.Timespan),
		UnknownTimespanCount: int(row.Unknown),
		ShowCount:            int(row.Shows),
	}, nil
}

// Timespan returns the summed known timespan of the shows in a binge
func (r *BingeRepository) Timespan(bingeID int) (int, error) {
	stats, err := r.Stats(bingeID)
	return stats.Timespan, err
}

// UnknownTimespanCount returns how many shows in the binge have no usable timespan
func (r *BingeRepository) UnknownTimespanCount(bingeID int) (int, error) {
	stats, err := r.Stats(bingeID)
	return stats.UnknownTimespanCount, err
}

// ShowCount returns the number of shows in a binge
func (r *BingeRepository) ShowCount(bingeID int) (int, error) {
	stats, err := r.Stats(bingeID)
	return stats.ShowCount, err
}

// Create inserts a binge owned by authorID
func (r *BingeRepository) Create(binge *models.Binge, authorID int) error {
	binge.Name = strings.TrimSpace(binge.Name)
	if binge.Name == "" {
		return types.InvalidArgumentf("binge name is required")
	}
	if !exists(r.gw.Users().Where("id = ?", authorID)) {
		return types.NotFoundf("user %d", authorID)
	}

	binge.UserID = authorID
	if err := r.gw.Add(binge); err != nil {
		return abort(r.gw, "create binge", err)
	}
	return save(r.gw, "create binge")
}

// Update replaces the name and description of a binge. The owner never changes.
func (r *BingeRepository) Update(binge *models.Binge) error {
	binge.Name = strings.TrimSpace(binge.Name)
	if binge.Name == "" {
		return types.InvalidArgumentf("binge name is required")
	}
	stored, err := r.Get(binge.ID)
	if err != nil {
		return err
	}

	binge.UserID = stored.UserID
	if err := r.gw.Update(binge); err != nil {
		return abort(r.gw, "update binge", err)
	}
	return save(r.gw, "update binge")
}

// AddShow puts a show in a binge
func (r *BingeRepository) AddShow(bingeID, showID int) error {
	if !r.Exists(bingeID) {
		return types.NotFoundf("binge %d", bingeID)
	}
	if !exists(r.gw.Shows().Where("id = ?", showID)) {
		return types.NotFoundf("show %d", showID)
	}
	if r.HasShow(bingeID, showID) {
		return types.Conflictf("binge %d already has show %d", bingeID, showID)
	}

	if err := r.gw.Add(&models.ShowBinge{ShowID: showID, BingeID: bingeID}); err != nil {
		return abort(r.gw, "add show", err)
	}
	return save(r.gw, "add show")
}

// RemoveShow takes a show out of a binge
func (r *BingeRepository) RemoveShow(bingeID, showID int) error {
	if !r.HasShow(bingeID, showID) {
		return types.NotFoundf("binge %d does not have show %d", bingeID, showID)
	}

	if err := r.gw.Remove(&models.ShowBinge{ShowID: showID, BingeID: bingeID}); err != nil {
		return abort(r.gw, "remove show", err)
	}
	return save(r.gw, "remove show")
}

// RemoveAllShows empties a binge. Emptying an empty binge succeeds.
func (r *BingeRepository) RemoveAllShows(bingeID int) error {
	if !r.Exists(bingeID) {
		return types.NotFoundf("binge %d", bingeID)
	}

	var rows []models.ShowBinge
	if err := find(r.gw.ShowBinges().Where("binge_id = ?", bingeID), &rows, "binge shows"); err != nil {
		return err
	}
	return removeRows(r.gw, "remove all shows", rows)
}

// Delete removes a binge and its show rows in one commit
func (r *BingeRepository) Delete(binge *models.Binge) error {
	if !r.Exists(binge.ID) {
		return types.NotFoundf("binge %d", binge.ID)
	}
	return r.DeleteMany([]models.Binge{*binge})
}

// DeleteMany removes several binges and all their show rows in one commit
func (r *BingeRepository) DeleteMany(binges []models.Binge) error {
	return deleteBinges(r.gw, "delete binges", binges)
}

func (r *BingeRepository) showIDs(bingeID int) interface{} {
	return r.gw.ShowBinges().Select("show_id").Where("binge_id = ?", bingeID)
}

// deleteBinges stages the show rows of every binge followed by the binges and commits once
func deleteBinges(gw *database.Gateway, op string, binges []models.Binge) error {
	if len(binges) == 0 {
		return nil
	}

	ids := make([]int, len(binges))
	for i, binge := range binges {
		ids[i] = binge.ID
	}

	var rows []models.ShowBinge
	if err := find(gw.ShowBinges().Where("binge_id IN ?", ids), &rows, "binge shows"); err != nil {
		return err
	}
	if err := gw.RemoveRange(rows); err != nil {
		return abort(gw, op, err)
	}
	for _, id := range ids {
		if err := gw.Remove(&models.Binge{ID: id}); err != nil {
			return abort(gw, op, err)
		}
	}
	return save(gw, op)
}
