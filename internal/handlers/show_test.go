// show_test.go
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

func TestShowLifecycle(t *testing.T) {
	env := newTestEnv(t, "")
	testutil.CreateUser(t, env.db, "Dave", "xxx")
	token := env.token("Dave")

	resp := env.do("POST", "/api/show", dto.ShowDto{Title: "Avatar", Timespan: testutil.Int(162)}, token)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var created dto.ShowDto
	testutil.ParseJSON(t, resp, &created)
	if created.ID == 0 || created.Title != "Avatar" {
		t.Fatalf("Unexpected show: %+v", created)
	}

	testutil.AssertStatus(t, env.do("POST", "/api/show", dto.ShowDto{Title: " avatar "}, token), fiber.StatusConflict)
	testutil.AssertStatus(t, env.do("POST", "/api/show", dto.ShowDto{Title: ""}, token), fiber.StatusUnprocessableEntity)
	testutil.AssertStatus(t, env.do("POST", "/api/show", "{not json", token), fiber.StatusBadRequest)

	resp = env.do("GET", path("/api/show/%d", created.ID), nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	testutil.AssertStatus(t, env.do("GET", "/api/show/999", nil, ""), fiber.StatusNotFound)

	update := dto.ShowDto{ID: created.ID, Title: "Avatar", Description: testutil.String("Blue")}
	resp = env.do("PUT", path("/api/show/%d", created.ID), update, token)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
	testutil.AssertNoContent(t, resp)

	var stored models.Show
	if err := env.db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("Failed to load show: %v", err)
	}
	if stored.Timespan != nil || stored.Description == nil || *stored.Description != "Blue" {
		t.Errorf("Update should fully replace the show, got %+v", stored)
	}

	mismatch := dto.ShowDto{ID: created.ID + 1, Title: "x"}
	testutil.AssertStatus(t, env.do("PUT", path("/api/show/%d", created.ID), mismatch, token), fiber.StatusBadRequest)
	testutil.AssertStatus(t, env.do("PUT", "/api/show/999", dto.ShowDto{Title: "x"}, token), fiber.StatusNotFound)

	resp = env.do("GET", "/api/show", nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var shows []dto.ShowDto
	testutil.ParseJSON(t, resp, &shows)
	if len(shows) != 1 {
		t.Errorf("Expected 1 show, got %d", len(shows))
	}

	testutil.AssertStatus(t, env.do("DELETE", path("/api/show/%d", created.ID), nil, token), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("DELETE", path("/api/show/%d", created.ID), nil, token), fiber.StatusNotFound)
}

func TestShowTags(t *testing.T) {
	env := newTestEnv(t, "")
	testutil.CreateUser(t, env.db, "Dave", "xxx")
	token := env.token("Dave")
	show := testutil.CreateShow(t, env.db, "Cake Boss", nil)
	tag := testutil.CreateTag(t, env.db, "baking")

	newTag := path("/api/show/%d/newTag?tagId=%d", show.ID, tag.ID)
	testutil.AssertStatus(t, env.do("PUT", newTag, nil, token), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("PUT", newTag, nil, token), fiber.StatusConflict)
	testutil.AssertStatus(t, env.do("PUT", path("/api/show/%d/newTag?tagId=999", show.ID), nil, token), fiber.StatusNotFound)

	resp := env.do("GET", path("/api/show/%d/tags", show.ID), nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var tags []dto.TagDto
	testutil.ParseJSON(t, resp, &tags)
	if len(tags) != 1 || tags[0].Name != "baking" {
		t.Errorf("Unexpected tags: %+v", tags)
	}
	testutil.AssertStatus(t, env.do("GET", "/api/show/999/tags", nil, ""), fiber.StatusNotFound)

	removeTag := path("/api/show/%d/removeTag?tagId=%d", show.ID, tag.ID)
	testutil.AssertStatus(t, env.do("DELETE", removeTag, nil, token), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("DELETE", removeTag, nil, token), fiber.StatusNotFound)

	testutil.Link(t, env.db, &models.ShowTag{ShowID: show.ID, TagID: tag.ID})
	testutil.AssertStatus(t, env.do("DELETE", path("/api/show/%d/removeAllTags", show.ID), nil, token), fiber.StatusOK)
	if n := testutil.Count(t, env.db, &models.ShowTag{}, ""); n != 0 {
		t.Errorf("Expected no show tags, got %d", n)
	}
}
