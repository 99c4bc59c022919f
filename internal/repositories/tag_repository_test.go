// tag_repository_test.go
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
	"testing"

	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/testutil"
	"github.com/localnerve/movieapp/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCreateAndLookup(t *testing.T) {
	f := newFixture(t)

	tag := &models.Tag{Name: " scifi "}
	require.NoError(t, f.tags.Create(tag))
	assert.Equal(t, "scifi", tag.Name)
	assert.True(t, f.tags.Exists(tag.ID))
	assert.True(t, f.tags.ExistsByName("SciFi"))

	assert.ErrorIs(t, f.tags.Create(&models.Tag{Name: "SCIFI"}), types.ErrConflict)
	assert.ErrorIs(t, f.tags.Create(&models.Tag{Name: ""}), types.ErrInvalidArgument)

	got, err := f.tags.GetByName("scifi")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.ID)

	_, err = f.tags.Get(999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTagCreateMany(t *testing.T) {
	f := newFixture(t)
	testutil.CreateTag(t, f.db, "drama")

	err := f.tags.CreateMany([]models.Tag{{Name: "comedy"}, {Name: "Drama"}})
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.ErrorIs(t, f.tags.CreateMany([]models.Tag{{Name: "a"}, {Name: " A"}}), types.ErrConflict)
	assert.Equal(t, 0, f.gw.Pending())
	assert.False(t, f.tags.ExistsByName("comedy"), "nothing from a failed batch is saved")

	batch := []models.Tag{{Name: "comedy"}, {Name: "horror"}}
	require.NoError(t, f.tags.CreateMany(batch))
	assert.NotZero(t, batch[0].ID)
	assert.NotZero(t, batch[1].ID)

	tags, err := f.tags.List()
	require.NoError(t, err)
	assert.Len(t, tags, 3)
}

func TestTagUpdate(t *testing.T) {
	f := newFixture(t)
	scifi := testutil.CreateTag(t, f.db, "scifi")
	testutil.CreateTag(t, f.db, "drama")

	require.NoError(t, f.tags.Update(&models.Tag{ID: scifi.ID, Name: "science fiction", Description: testutil.String("space")}))
	got, err := f.tags.Get(scifi.ID)
	require.NoError(t, err)
	assert.Equal(t, "science fiction", got.Name)

	assert.ErrorIs(t, f.tags.Update(&models.Tag{ID: scifi.ID, Name: "Drama"}), types.ErrConflict)
	assert.ErrorIs(t, f.tags.Update(&models.Tag{ID: 999, Name: "x"}), types.ErrNotFound)
}

func TestTagDeleteRemovesItFromEveryShow(t *testing.T) {
	f := newFixture(t)
	scifi := testutil.CreateTag(t, f.db, "scifi")
	drama := testutil.CreateTag(t, f.db, "drama")
	shows := []models.Show{
		testutil.CreateShow(t, f.db, "Avatar", nil),
		testutil.CreateShow(t, f.db, "Neo", nil),
	}
	for _, show := range shows {
		testutil.Link(t, f.db, &models.ShowTag{ShowID: show.ID, TagID: scifi.ID})
		testutil.Link(t, f.db, &models.ShowTag{ShowID: show.ID, TagID: drama.ID})
	}

	tagged, err := f.tags.ShowsWith(scifi.ID)
	require.NoError(t, err)
	assert.Len(t, tagged, 2)

	require.NoError(t, f.tags.Delete(&scifi))
	assert.False(t, f.tags.Exists(scifi.ID))

	for _, show := range shows {
		tags, err := f.shows.TagsOf(show.ID)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, drama.ID, tags[0].ID)
	}
}

func TestTagRemoveFromAllShows(t *testing.T) {
	f := newFixture(t)
	tag := testutil.CreateTag(t, f.db, "scifi")
	show := testutil.CreateShow(t, f.db, "Avatar", nil)
	testutil.Link(t, f.db, &models.ShowTag{ShowID: show.ID, TagID: tag.ID})

	require.NoError(t, f.tags.RemoveFromAllShows(tag.ID))
	assert.True(t, f.tags.Exists(tag.ID))
	assert.False(t, f.shows.HasTag(show.ID, tag.ID))
	require.NoError(t, f.tags.RemoveFromAllShows(tag.ID))
	assert.ErrorIs(t, f.tags.RemoveFromAllShows(999), types.ErrNotFound)
}
