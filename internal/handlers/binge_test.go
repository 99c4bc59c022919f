// binge_test.go
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

package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/testutil"
)

func TestBingeStatsAndOwnership(t *testing.T) {
	env := newTestEnv(t, "")
	dave := testutil.CreateUser(t, env.db, "Dave", "xxx")
	testutil.CreateUser(t, env.db, "Eve", "yyy")
	daveToken := env.token("Dave")
	eveToken := env.token("Eve")

	binge := testutil.CreateBinge(t, env.db, "scary movies", dave.ID)
	avatar := testutil.CreateShow(t, env.db, "Avatar", testutil.Int(90))
	cake := testutil.CreateShow(t, env.db, "Cake Boss", testutil.Int(45))
	jokers := testutil.CreateShow(t, env.db, "Impractical Jokers", nil)

	for _, show := range []models.Show{avatar, cake, jokers} {
		resp := env.do("PUT", path("/api/binge/%d/newShow?showId=%d", binge.ID, show.ID), nil, daveToken)
		testutil.AssertStatus(t, resp, fiber.StatusOK)
	}
	testutil.AssertStatus(t, env.do("PUT", path("/api/binge/%d/newShow?showId=%d", binge.ID, avatar.ID), nil, daveToken), fiber.StatusConflict)
	testutil.AssertStatus(t, env.do("PUT", path("/api/binge/%d/newShow?showId=%d", binge.ID, avatar.ID), nil, eveToken), fiber.StatusForbidden)
	testutil.AssertStatus(t, env.do("PUT", path("/api/binge/999/newShow?showId=%d", avatar.ID), nil, daveToken), fiber.StatusNotFound)

	resp := env.do("GET", path("/api/binge/%d", binge.ID), nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var ext dto.BingeExtDto
	testutil.ParseJSON(t, resp, &ext)
	if ext.Timespan != 135 || ext.ShowCount != 3 || ext.UnknownTimespanCount != 1 || ext.IsTimespanAccurate {
		t.Errorf("Unexpected binge stats: %+v", ext)
	}
	if ext.UserID != dave.ID {
		t.Errorf("Expected owner %d, got %d", dave.ID, ext.UserID)
	}

	resp = env.do("GET", path("/api/binge/%d/shows", binge.ID), nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var shows []dto.ShowDto
	testutil.ParseJSON(t, resp, &shows)
	if len(shows) != 3 {
		t.Errorf("Expected 3 shows, got %d", len(shows))
	}

	testutil.AssertStatus(t, env.do("PUT", path("/api/binge/%d", binge.ID), dto.BingeDto{Name: "stolen"}, eveToken), fiber.StatusForbidden)
	testutil.AssertStatus(t, env.do("PUT", path("/api/binge/%d", binge.ID), dto.BingeDto{Name: "spooky"}, daveToken), fiber.StatusNoContent)

	removeShow := path("/api/binge/%d/removeShow?showId=%d", binge.ID, jokers.ID)
	testutil.AssertStatus(t, env.do("DELETE", removeShow, nil, daveToken), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("DELETE", removeShow, nil, daveToken), fiber.StatusNotFound)

	testutil.AssertStatus(t, env.do("DELETE", path("/api/binge/%d/removeAllShows", binge.ID), nil, daveToken), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("DELETE", path("/api/binge/%d/removeAllShows", binge.ID), nil, daveToken), fiber.StatusOK)

	testutil.AssertStatus(t, env.do("DELETE", path("/api/binge/%d", binge.ID), nil, eveToken), fiber.StatusForbidden)
	testutil.AssertStatus(t, env.do("DELETE", path("/api/binge/%d", binge.ID), nil, daveToken), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("GET", path("/api/binge/%d", binge.ID), nil, ""), fiber.StatusNotFound)
}

func TestBingeTags(t *testing.T) {
	env := newTestEnv(t, "")
	dave := testutil.CreateUser(t, env.db, "Dave", "xxx")
	binge := testutil.CreateBinge(t, env.db, "funny movies", dave.ID)
	neo := testutil.CreateShow(t, env.db, "Neo", nil)
	fools := testutil.CreateShow(t, env.db, "Impractical Fools", nil)
	funny := testutil.CreateTag(t, env.db, "funny")
	testutil.Link(t, env.db, &models.ShowBinge{ShowID: neo.ID, BingeID: binge.ID})
	testutil.Link(t, env.db, &models.ShowBinge{ShowID: fools.ID, BingeID: binge.ID})
	testutil.Link(t, env.db, &models.ShowTag{ShowID: neo.ID, TagID: funny.ID})
	testutil.Link(t, env.db, &models.ShowTag{ShowID: fools.ID, TagID: funny.ID})

	resp := env.do("GET", path("/api/binge/%d/tags", binge.ID), nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var tags []dto.TagDto
	testutil.ParseJSON(t, resp, &tags)
	if len(tags) != 1 || tags[0].Name != "funny" {
		t.Errorf("Expected the distinct tag once, got %+v", tags)
	}

	resp = env.do("GET", "/api/binge", nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var binges []dto.BingeDto
	testutil.ParseJSON(t, resp, &binges)
	if len(binges) != 1 {
		t.Errorf("Expected 1 binge, got %d", len(binges))
	}
}
