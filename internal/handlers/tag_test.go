// tag_test.go
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

func TestCreateTagsSingleAndBatch(t *testing.T) {
	env := newTestEnv(t, "")
	testutil.CreateUser(t, env.db, "Dave", "xxx")
	token := env.token("Dave")

	resp := env.do("POST", "/api/tag", `{"name":"scary"}`, token)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var single dto.TagDto
	testutil.ParseJSON(t, resp, &single)
	if single.ID == 0 || single.Name != "scary" {
		t.Fatalf("Unexpected tag: %+v", single)
	}

	resp = env.do("POST", "/api/tag", `[{"name":"funny"},{"name":"reality"}]`, token)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var batch []dto.TagDto
	testutil.ParseJSON(t, resp, &batch)
	if len(batch) != 2 || batch[0].ID == 0 || batch[1].ID == 0 {
		t.Fatalf("Unexpected batch: %+v", batch)
	}

	testutil.AssertStatus(t, env.do("POST", "/api/tag", `[{"name":"new"},{"name":"Scary"}]`, token), fiber.StatusConflict)
	if n := testutil.Count(t, env.db, &models.Tag{}, ""); n != 3 {
		t.Errorf("A rejected batch must insert nothing, have %d tags", n)
	}
	testutil.AssertStatus(t, env.do("POST", "/api/tag", `[]`, token), fiber.StatusUnprocessableEntity)
}

func TestTagLookups(t *testing.T) {
	env := newTestEnv(t, "")
	testutil.CreateUser(t, env.db, "Dave", "xxx")
	token := env.token("Dave")
	tag := testutil.CreateTag(t, env.db, "scary")
	show := testutil.CreateShow(t, env.db, "Avatar", nil)
	testutil.Link(t, env.db, &models.ShowTag{ShowID: show.ID, TagID: tag.ID})

	testutil.AssertStatus(t, env.do("GET", path("/api/tag/byId/%d", tag.ID), nil, ""), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("GET", "/api/tag/byName/scary", nil, ""), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("GET", "/api/tag/byName/none", nil, ""), fiber.StatusNotFound)

	resp := env.do("GET", path("/api/tag/%d/shows", tag.ID), nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var shows []dto.ShowDto
	testutil.ParseJSON(t, resp, &shows)
	if len(shows) != 1 || shows[0].ID != show.ID {
		t.Errorf("Unexpected shows: %+v", shows)
	}

	testutil.AssertStatus(t, env.do("PUT", path("/api/tag/%d", tag.ID), dto.TagDto{Name: "spooky"}, token), fiber.StatusNoContent)
	testutil.AssertStatus(t, env.do("DELETE", path("/api/tag/%d", tag.ID), nil, token), fiber.StatusOK)
	if n := testutil.Count(t, env.db, &models.ShowTag{}, ""); n != 0 {
		t.Errorf("Deleting a tag must remove its show rows, have %d", n)
	}
}
