// binge_repository_test.go
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

func TestBingeScenario(t *testing.T) {
	f := newFixture(t)
	dave := &models.User{ID: 1, Name: "Dave", Password: "xxx"}
	require.NoError(t, f.users.Create(dave))

	binge := &models.Binge{Name: "scary movies"}
	require.NoError(t, f.binges.Create(binge, dave.ID))

	owned, err := f.users.BingesOf(dave.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, binge.ID, owned[0].ID)

	got, err := f.binges.Get(binge.ID)
	require.NoError(t, err)
	assert.Equal(t, owned[0], *got)

	for i, timespan := range []*int{testutil.Int(90), testutil.Int(45), nil} {
		show := testutil.CreateShow(t, f.db, []string{"Avatar", "Cake Boss", "Impractical Jokers"}[i], timespan)
		require.NoError(t, f.binges.AddShow(binge.ID, show.ID))
	}

	stats, err := f.binges.Stats(binge.ID)
	require.NoError(t, err)
	assert.Equal(t, BingeStats{Timespan: 135, UnknownTimespanCount: 1, ShowCount: 3}, stats)
	assert.False(t, stats.IsTimespanAccurate())

	timespan, err := f.binges.Timespan(binge.ID)
	require.NoError(t, err)
	assert.Equal(t, 135, timespan)
	unknown, err := f.binges.UnknownTimespanCount(binge.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unknown)
	count, err := f.binges.ShowCount(binge.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestBingeStatsEdges(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "Dave", "xxx")
	empty := testutil.CreateBinge(t, f.db, "empty", user.ID)

	stats, err := f.binges.Stats(empty.ID)
	require.NoError(t, err)
	assert.Equal(t, BingeStats{}, stats)
	assert.True(t, stats.IsTimespanAccurate())

	negative := testutil.CreateBinge(t, f.db, "negative", user.ID)
	for _, show := range []models.Show{
		testutil.CreateShow(t, f.db, "a", testutil.Int(-5)),
		testutil.CreateShow(t, f.db, "b", nil),
	} {
		testutil.Link(t, f.db, &models.ShowBinge{ShowID: show.ID, BingeID: negative.ID})
	}
	stats, err = f.binges.Stats(negative.ID)
	require.NoError(t, err)
	assert.Equal(t, BingeStats{Timespan: 0, UnknownTimespanCount: 2, ShowCount: 2}, stats)
}

func TestBingeCreateValidation(t *testing.T) {
	f := newFixture(t)

	err := f.binges.Create(&models.Binge{Name: "orphan"}, 42)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Zero(t, testutil.Count(t, f.db, &models.Binge{}, ""), "no binge is committed for a missing author")

	user := testutil.CreateUser(t, f.db, "Dave", "xxx")
	assert.ErrorIs(t, f.binges.Create(&models.Binge{Name: " "}, user.ID), types.ErrInvalidArgument)
}

func TestBingeUpdateKeepsOwner(t *testing.T) {
	f := newFixture(t)
	dave := testutil.CreateUser(t, f.db, "Dave", "xxx")
	eve := testutil.CreateUser(t, f.db, "Eve", "yyy")
	binge := testutil.CreateBinge(t, f.db, "scary movies", dave.ID)

	require.NoError(t, f.binges.Update(&models.Binge{ID: binge.ID, Name: "scarier movies", UserID: eve.ID}))
	got, err := f.binges.Get(binge.ID)
	require.NoError(t, err)
	assert.Equal(t, "scarier movies", got.Name)
	assert.Equal(t, dave.ID, got.UserID)
	assert.True(t, f.binges.OwnedBy(dave.ID, binge.ID))
	assert.False(t, f.binges.OwnedBy(eve.ID, binge.ID))

	assert.ErrorIs(t, f.binges.Update(&models.Binge{ID: 999, Name: "x"}), types.ErrNotFound)
}

func TestBingeShowMembership(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "Dave", "xxx")
	binge := testutil.CreateBinge(t, f.db, "funny movies", user.ID)
	show := testutil.CreateShow(t, f.db, "Neo", nil)

	assert.ErrorIs(t, f.binges.AddShow(999, show.ID), types.ErrNotFound)
	assert.ErrorIs(t, f.binges.AddShow(binge.ID, 999), types.ErrNotFound)
	require.NoError(t, f.binges.AddShow(binge.ID, show.ID))
	assert.ErrorIs(t, f.binges.AddShow(binge.ID, show.ID), types.ErrConflict)
	assert.True(t, f.binges.HasShow(binge.ID, show.ID))

	require.NoError(t, f.binges.RemoveShow(binge.ID, show.ID))
	assert.ErrorIs(t, f.binges.RemoveShow(binge.ID, show.ID), types.ErrNotFound)

	require.NoError(t, f.binges.RemoveAllShows(binge.ID), "emptying an empty binge succeeds")
	assert.ErrorIs(t, f.binges.RemoveAllShows(999), types.ErrNotFound)
}

func TestBingeTagsInIsDistinct(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "Dave", "xxx")
	binge := testutil.CreateBinge(t, f.db, "scary movies", user.ID)
	scifi := testutil.CreateTag(t, f.db, "scifi")
	horror := testutil.CreateTag(t, f.db, "horror")
	testutil.CreateTag(t, f.db, "unused")

	for _, title := range []string{"Avatar", "Neo"} {
		show := testutil.CreateShow(t, f.db, title, nil)
		testutil.Link(t, f.db, &models.ShowBinge{ShowID: show.ID, BingeID: binge.ID})
		testutil.Link(t, f.db, &models.ShowTag{ShowID: show.ID, TagID: scifi.ID})
		if title == "Neo" {
			testutil.Link(t, f.db, &models.ShowTag{ShowID: show.ID, TagID: horror.ID})
		}
	}

	tags, err := f.binges.TagsIn(binge.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, scifi.ID, tags[0].ID)
	assert.Equal(t, horror.ID, tags[1].ID)

	shows, err := f.binges.ShowsIn(binge.ID)
	require.NoError(t, err)
	assert.Len(t, shows, 2)
}

func TestBingeDeleteIsSelfContained(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "Dave", "xxx")
	b1 := testutil.CreateBinge(t, f.db, "one", user.ID)
	b2 := testutil.CreateBinge(t, f.db, "two", user.ID)
	b3 := testutil.CreateBinge(t, f.db, "three", user.ID)
	show := testutil.CreateShow(t, f.db, "Avatar", nil)
	for _, b := range []models.Binge{b1, b2, b3} {
		testutil.Link(t, f.db, &models.ShowBinge{ShowID: show.ID, BingeID: b.ID})
	}

	require.NoError(t, f.binges.Delete(&b1))
	assert.False(t, f.binges.Exists(b1.ID))
	assert.Zero(t, testutil.Count(t, f.db, &models.ShowBinge{}, "binge_id = ?", b1.ID))
	assert.ErrorIs(t, f.binges.Delete(&b1), types.ErrNotFound)

	require.NoError(t, f.binges.DeleteMany([]models.Binge{b2, b3}))
	assert.Zero(t, testutil.Count(t, f.db, &models.Binge{}, ""))
	assert.Zero(t, testutil.Count(t, f.db, &models.ShowBinge{}, ""))
	assert.True(t, f.shows.Exists(show.ID))
	require.NoError(t, f.binges.DeleteMany(nil))

	all, err := f.binges.ListPublic()
	require.NoError(t, err)
	assert.Empty(t, all)
}
