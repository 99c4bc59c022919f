// fixtures.go
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

package testutil

import (
	"testing"

	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// String returns a pointer to v
func String(v string) *string {
	return &v
}

// CreateUser inserts a user with a hashed password
func CreateUser(t testing.TB, db *gorm.DB, name, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{Name: name, Password: hash}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

// CreateShow inserts a show; timespan may be nil for an unknown runtime
func CreateShow(t testing.TB, db *gorm.DB, title string, timespan *int) models.Show {
	t.Helper()
	show := models.Show{Title: title, Timespan: timespan}
	if err := db.Create(&show).Error; err != nil {
		t.Fatalf("Failed to create show %s: %v", title, err)
	}
	return show
}

// CreateTag inserts a tag
func CreateTag(t testing.TB, db *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("Failed to create tag %s: %v", name, err)
	}
	return tag
}

// CreateBinge inserts a binge owned by userID
func CreateBinge(t testing.TB, db *gorm.DB, name string, userID int) models.Binge {
	t.Helper()
	binge := models.Binge{Name: name, UserID: userID}
	if err := db.Omit(clause.Associations).Create(&binge).Error; err != nil {
		t.Fatalf("Failed to create binge %s: %v", name, err)
	}
	return binge
}

// Link inserts a join row (ShowTag, ShowBinge or FavoriteShow)
func Link(t testing.TB, db *gorm.DB, join interface{}) {
	t.Helper()
	if err := db.Omit(clause.Associations).Create(join).Error; err != nil {
		t.Fatalf("Failed to create %T: %v", join, err)
	}
}

// Count returns the number of rows of model matching the optional condition
func Count(t testing.TB, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("Failed to count %T: %v", model, err)
	}
	return n
}
