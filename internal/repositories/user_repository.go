// user_repository.go
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
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/localnerve/movieapp/internal/utils"
)

// UserRepository manages users, their favorite shows and the binges they own
type UserRepository struct {
	gw *database.Gateway
}

// NewUserRepository creates a user repository
func NewUserRepository(gw *database.Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

// Exists reports whether a user with id exists
func (r *UserRepository) Exists(id int) bool {
	return exists(r.gw.Users().Where("id = ?", id))
}

// ExistsByName reports whether a user with the name exists, ignoring case and surrounding space
func (r *UserRepository) ExistsByName(name string) bool {
	return exists(r.gw.Users().Where(sameName("name"), strings.TrimSpace(name)))
}

// Get returns the user with id
func (r *UserRepository) Get(id int) (*models.User, error) {
	var user models.User
	if err := first(r.gw.Users().Where("id = ?", id), &user, fmt.Sprintf("user %d", id)); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByName returns the user with the name, ignoring case and surrounding space
func (r *UserRepository) GetByName(name string) (*models.User, error) {
	var user models.User
	q := r.gw.Users().Where(sameName("name"), strings.TrimSpace(name))
	if err := first(q, &user, fmt.Sprintf("user %q", strings.TrimSpace(name))); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by id
func (r *UserRepository) List() ([]models.User, error) {
	users := []models.User{}
	if err := find(r.gw.Users().Order("id ASC"), &users, "users"); err != nil {
		return nil, err
	}
	return users, nil
}

// IsFavorite reports whether the show is one of the user's favorites
func (r *UserRepository) IsFavorite(userID, showID int) bool {
	return exists(r.gw.FavoriteShows().Where("user_id = ? AND show_id = ?", userID, showID))
}

// FavoritesOf returns the user's favorite shows
func (r *UserRepository) FavoritesOf(userID int) ([]models.Show, error) {
	shows := []models.Show{}
	showIDs := r.gw.FavoriteShows().Select("show_id").Where("user_id = ?", userID)
	if err := find(r.gw.Shows().Where("id IN (?)", showIDs).Order("id ASC"), &shows, "favorite shows"); err != nil {
		return nil, err
	}
	return shows, nil
}

// FavoriteRelations returns the user's favorite rows
func (r *UserRepository) FavoriteRelations(userID int) ([]models.FavoriteShow, error) {
	rows := []models.FavoriteShow{}
	if err := find(r.gw.FavoriteShows().Where("user_id = ?", userID).Order("show_id ASC"), &rows, "favorites"); err != nil {
		return nil, err
	}
	return rows, nil
}

// FavoriteRelation returns the favorite row for a user and show
func (r *UserRepository) FavoriteRelation(userID, showID int) (*models.FavoriteShow, error) {
	var row models.FavoriteShow
	q := r.gw.FavoriteShows().Where("user_id = ? AND show_id = ?", userID, showID)
	if err := first(q, &row, fmt.Sprintf("favorite show %d of user %d", showID, userID)); err != nil {
		return nil, err
	}
	return &row, nil
}

// BingesOf returns the binges owned by the user ordered by id
func (r *UserRepository) BingesOf(userID int) ([]models.Binge, error) {
	binges := []models.Binge{}
	if err := find(r.gw.Binges().Where("user_id = ?", userID).Order("id ASC"), &binges, "user binges"); err != nil {
		return nil, err
	}
	return binges, nil
}

// Create inserts a user. The password is given in plain text and stored as a bcrypt hash.
func (r *UserRepository) Create(user *models.User) error {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return types.InvalidArgumentf("user name is required")
	}
	if user.Password == "" {
		return types.InvalidArgumentf("password is required")
	}
	if r.ExistsByName(user.Name) {
		return types.Conflictf("user %q already exists", user.Name)
	}

	hash, err := utils.HashPassword(user.Password)
	if err != nil {
		return types.InvalidArgumentf("password: %v", err)
	}
	user.Password = hash

	if err := r.gw.Add(user); err != nil {
		return abort(r.gw, "create user", err)
	}
	return save(r.gw, "create user")
}

// Update replaces the user's fields. An empty password keeps the stored one.
func (r *UserRepository) Update(user *models.User) error {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return types.InvalidArgumentf("user name is required")
	}
	stored, err := r.Get(user.ID)
	if err != nil {
		return err
	}
	if exists(r.gw.Users().Where(sameName("name")+" AND id <> ?", user.Name, user.ID)) {
		return types.Conflictf("user %q already exists", user.Name)
	}

	if user.Password == "" {
		user.Password = stored.Password
	} else {
		hash, err := utils.HashPassword(user.Password)
		if err != nil {
			return types.InvalidArgumentf("password: %v", err)
		}
		user.Password = hash
	}

	if err := r.gw.Update(user); err != nil {
		return abort(r.gw, "update user", err)
	}
	return save(r.gw, "update user")
}

// AddFavorite marks a show as a favorite of the user
func (r *UserRepository) AddFavorite(userID, showID int) error {
	if !r.Exists(userID) {
		return types.NotFoundf("user %d", userID)
	}
	if !exists(r.gw.Shows().Where("id = ?", showID)) {
		return types.NotFoundf("show %d", showID)
	}
	if r.IsFavorite(userID, showID) {
		return types.Conflictf("show %d is already a favorite of user %d", showID, userID)
	}

	if err := r.gw.Add(&models.FavoriteShow{UserID: userID, ShowID: showID}); err != nil {
		return abort(r.gw, "add favorite", err)
	}
	return save(r.gw, "add favorite")
}

// RemoveFavorite deletes one favorite row
func (r *UserRepository) RemoveFavorite(rel *models.FavoriteShow) error {
	if !r.IsFavorite(rel.UserID, rel.ShowID) {
		return types.NotFoundf("favorite show %d of user %d", rel.ShowID, rel.UserID)
	}

	if err := r.gw.Remove(rel); err != nil {
		return abort(r.gw, "remove favorite", err)
	}
	return save(r.gw, "remove favorite")
}

// RemoveFavorites deletes several favorite rows in one commit
func (r *UserRepository) RemoveFavorites(rels []models.FavoriteShow) error {
	return removeRows(r.gw, "remove favorites", rels)
}

// RemoveFavoriteShow removes a show from the user's favorites; the favorite must exist
func (r *UserRepository) RemoveFavoriteShow(userID, showID int) error {
	rel, err := r.FavoriteRelation(userID, showID)
	if err != nil {
		return err
	}
	return r.RemoveFavorite(rel)
}

// RemoveBinge deletes one of the user's binges with its show rows; the user must own it
func (r *UserRepository) RemoveBinge(userID, bingeID int) error {
	var binge models.Binge
	q := r.gw.Binges().Where("id = ? AND user_id = ?", bingeID, userID)
	if err := first(q, &binge, fmt.Sprintf("binge %d of user %d", bingeID, userID)); err != nil {
		return err
	}
	return deleteBinges(r.gw, "remove binge", []models.Binge{binge})
}

// RemoveAllBinges deletes every binge the user owns with their show rows in one commit
func (r *UserRepository) RemoveAllBinges(userID int) error {
	if !r.Exists(userID) {
		return types.NotFoundf("user %d", userID)
	}
	binges, err := r.BingesOf(userID)
	if err != nil {
		return err
	}
	return deleteBinges(r.gw, "remove all binges", binges)
}

// Delete removes a user with everything that depends on it, in order:
// the show rows of the user's binges, the binges, the favorite rows and the user row.
// Each step commits on its own. A failed step does not stop later ones; all failures are returned joined.
func (r *UserRepository) Delete(user *models.User) error {
	if !r.Exists(user.ID) {
		return types.NotFoundf("user %d", user.ID)
	}

	var errs []error
	step := func(name string, stage func() (bool, error)) {
		staged, err := stage()
		if err == nil && staged {
			err = save(r.gw, name)
		}
		if err != nil {
			r.gw.Discard()
			errs = append(errs, fmt.Errorf("delete user %d: %w", user.ID, err))
		}
	}

	bingeIDs := r.gw.Binges().Select("id").Where("user_id = ?", user.ID)

	step("remove binge shows", func() (bool, error) {
		var rows []models.ShowBinge
		if err := find(r.gw.ShowBinges().Where("binge_id IN (?)", bingeIDs), &rows, "binge shows"); err != nil {
			return false, err
		}
		return len(rows) > 0, r.gw.RemoveRange(rows)
	})

	step("remove binges", func() (bool, error) {
		var binges []models.Binge
		if err := find(r.gw.Binges().Where("user_id = ?", user.ID), &binges, "user binges"); err != nil {
			return false, err
		}
		return len(binges) > 0, r.gw.RemoveRange(binges)
	})

	step("remove favorites", func() (bool, error) {
		var rows []models.FavoriteShow
		if err := find(r.gw.FavoriteShows().Where("user_id = ?", user.ID), &rows, "favorites"); err != nil {
			return false, err
		}
		return len(rows) > 0, r.gw.RemoveRange(rows)
	})

	step("remove user", func() (bool, error) {
		return true, r.gw.Remove(&models.User{ID: user.ID})
	})

	return errors.Join(errs...)
}
