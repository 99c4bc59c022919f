// gateway_test.go
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

package database_test

import (
	"errors"
	"testing"

	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/testutil"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayCommitCountsRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	gw := database.NewGateway(db)

	show := &models.Show{Title: "Avatar", Timespan: testutil.Int(162)}
	tag := &models.Tag{Name: "scifi"}
	require.NoError(t, gw.Add(show))
	require.NoError(t, gw.Add(tag))
	assert.Equal(t, 2, gw.Pending())

	affected, err := gw.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, 0, gw.Pending())
	assert.NotZero(t, show.ID)
	assert.NotZero(t, tag.ID)

	affected, err = gw.Commit()
	require.NoError(t, err)
	assert.Zero(t, affected, "empty commit touches nothing")
}

func TestGatewayUpdateIsFullReplace(t *testing.T) {
	db := testutil.NewTestDB(t)
	show := testutil.CreateShow(t, db, "Avatar", testutil.Int(162))
	gw := database.NewGateway(db)

	replacement := &models.Show{ID: show.ID, Title: "Avatar 2"}
	require.NoError(t, gw.Update(replacement))
	affected, err := gw.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var stored models.Show
	require.NoError(t, gw.Shows().First(&stored, show.ID).Error)
	assert.Equal(t, "Avatar 2", stored.Title)
	assert.Nil(t, stored.Timespan, "omitted fields are cleared")

	require.NoError(t, gw.Update(&models.Show{ID: 999, Title: "missing"}))
	affected, err = gw.Commit()
	require.NoError(t, err)
	assert.Zero(t, affected, "update never inserts")
}

func TestGatewayRejectsUnrecognizedEntities(t *testing.T) {
	gw := database.NewGateway(testutil.NewTestDB(t))

	assert.ErrorIs(t, gw.Add(&struct{ ID int }{}), database.ErrUnrecognizedEntity)
	assert.ErrorIs(t, gw.Update(models.Show{}), database.ErrUnrecognizedEntity, "values must be pointers")
	assert.ErrorIs(t, gw.RemoveRange(&models.Show{}), database.ErrUnrecognizedEntity)
	assert.ErrorIs(t, gw.RemoveRange([]interface{}{&models.Show{}, "x"}), database.ErrUnrecognizedEntity)
	assert.Equal(t, 0, gw.Pending(), "a bad range stages nothing")
}

func TestGatewayRemoveRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "Dave", "xxx")
	show1 := testutil.CreateShow(t, db, "Avatar", nil)
	show2 := testutil.CreateShow(t, db, "Cake Boss", nil)
	testutil.Link(t, db, &models.FavoriteShow{UserID: user.ID, ShowID: show1.ID})
	testutil.Link(t, db, &models.FavoriteShow{UserID: user.ID, ShowID: show2.ID})

	gw := database.NewGateway(db)
	var favorites []models.FavoriteShow
	require.NoError(t, gw.FavoriteShows().Where("user_id = ?", user.ID).Find(&favorites).Error)
	require.Len(t, favorites, 2)

	require.NoError(t, gw.RemoveRange(favorites))
	affected, err := gw.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Zero(t, testutil.Count(t, db, &models.FavoriteShow{}, ""))
	assert.Equal(t, int64(2), testutil.Count(t, db, &models.Show{}, ""), "shows are untouched")
}

func TestGatewayDiscard(t *testing.T) {
	db := testutil.NewTestDB(t)
	gw := database.NewGateway(db)

	require.NoError(t, gw.Add(&models.Tag{Name: "drama"}))
	gw.Discard()
	affected, err := gw.Commit()
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Zero(t, testutil.Count(t, db, &models.Tag{}, ""))
}

func TestGatewayTranslatesConstraintErrors(t *testing.T) {
	db := testutil.NewTestDB(t)
	show := testutil.CreateShow(t, db, "Avatar", nil)
	tag := testutil.CreateTag(t, db, "scifi")
	testutil.Link(t, db, &models.ShowTag{ShowID: show.ID, TagID: tag.ID})
	gw := database.NewGateway(db)

	require.NoError(t, gw.Add(&models.ShowTag{ShowID: show.ID, TagID: tag.ID}))
	_, err := gw.Commit()
	assert.ErrorIs(t, err, types.ErrConflict, "duplicate pair")

	require.NoError(t, gw.Add(&models.Binge{Name: "orphan", UserID: 42}))
	_, err = gw.Commit()
	assert.ErrorIs(t, err, types.ErrNotFound, "missing owner")
	assert.Zero(t, testutil.Count(t, db, &models.Binge{}, ""))
}

func TestGatewayCommitIsAtomic(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateTag(t, db, "scifi")
	gw := database.NewGateway(db)

	require.NoError(t, gw.Add(&models.Tag{Name: "drama"}))
	require.NoError(t, gw.Add(&models.Tag{Name: "scifi"}))
	affected, err := gw.Commit()
	require.Error(t, err)
	assert.Zero(t, affected)
	assert.False(t, errors.Is(err, types.ErrNotFound))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Tag{}, ""), "the first insert rolled back")
}
