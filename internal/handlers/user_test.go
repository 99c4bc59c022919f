// user_test.go
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
	"github.com/localnerve/movieapp/internal/utils"
)

func TestRegisterLoginLogout(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do("POST", "/api/user", dto.LoginDto{Name: "Dave", Password: "xxx"}, "")
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var created dto.UserDto
	testutil.ParseJSON(t, resp, &created)
	if created.ID == 0 || created.Name != "Dave" {
		t.Fatalf("Unexpected user: %+v", created)
	}

	testutil.AssertStatus(t, env.do("PUT", "/api/user/newUser", dto.LoginDto{Name: " dave", Password: "y"}, ""), fiber.StatusConflict)
	testutil.AssertStatus(t, env.do("PUT", "/api/user/newUser", dto.LoginDto{Name: "Eve"}, ""), fiber.StatusUnprocessableEntity)

	testutil.AssertStatus(t, env.do("POST", "/api/user/login", dto.LoginDto{Name: "Dave", Password: "wrong"}, ""), fiber.StatusUnauthorized)

	resp = env.do("POST", "/api/user/login", dto.LoginDto{Name: "Dave", Password: "xxx"}, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var login dto.TokenResponse
	testutil.ParseJSON(t, resp, &login)
	if login.Token == "" {
		t.Fatal("Expected a token")
	}

	testutil.AssertStatus(t, env.do("GET", "/api/user", nil, login.Token), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("POST", "/api/user/logout", nil, login.Token), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("GET", "/api/user", nil, login.Token), fiber.StatusUnauthorized)
}

func TestUserSelfService(t *testing.T) {
	env := newTestEnv(t, "")
	dave := testutil.CreateUser(t, env.db, "Dave", "xxx")
	eve := testutil.CreateUser(t, env.db, "Eve", "yyy")
	daveToken := env.token("Dave")
	show := testutil.CreateShow(t, env.db, "Avatar", nil)

	testutil.AssertStatus(t, env.do("POST", path("/api/user/%d/newBinge", eve.ID), dto.BingeDto{Name: "x"}, daveToken), fiber.StatusForbidden)

	resp := env.do("POST", path("/api/user/%d/newBinge", dave.ID), dto.BingeDto{Name: "scary movies"}, daveToken)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var binge dto.BingeDto
	testutil.ParseJSON(t, resp, &binge)
	if binge.UserID != dave.ID {
		t.Errorf("Binge should belong to Dave, got %+v", binge)
	}

	resp = env.do("GET", path("/api/user/%d/binges", dave.ID), nil, daveToken)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var binges []dto.BingeDto
	testutil.ParseJSON(t, resp, &binges)
	if len(binges) != 1 || binges[0].ID != binge.ID {
		t.Errorf("Unexpected binges: %+v", binges)
	}

	favorite := path("/api/user/%d/newFavoriteShow?showId=%d", dave.ID, show.ID)
	testutil.AssertStatus(t, env.do("PUT", favorite, nil, daveToken), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("PUT", favorite, nil, daveToken), fiber.StatusConflict)

	resp = env.do("GET", path("/api/user/%d/favoriteShows", dave.ID), nil, daveToken)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var favorites []dto.ShowDto
	testutil.ParseJSON(t, resp, &favorites)
	if len(favorites) != 1 {
		t.Errorf("Expected 1 favorite, got %d", len(favorites))
	}

	removeFavorite := path("/api/user/%d/removeFavoriteShow?showId=%d", dave.ID, show.ID)
	testutil.AssertStatus(t, env.do("DELETE", removeFavorite, nil, daveToken), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("DELETE", removeFavorite, nil, daveToken), fiber.StatusNotFound)
	testutil.AssertStatus(t, env.do("DELETE", path("/api/user/%d/removeAllFavoriteShow", dave.ID), nil, daveToken), fiber.StatusOK)

	update := dto.LoginDto{Name: "David", Email: testutil.String("d@example.com")}
	testutil.AssertStatus(t, env.do("POST", path("/api/user/%d", dave.ID), update, daveToken), fiber.StatusNoContent)
	testutil.AssertStatus(t, env.do("POST", path("/api/user/%d", dave.ID), update, daveToken), fiber.StatusUnauthorized)

	davidToken := env.token("David")
	var stored models.User
	if err := env.db.First(&stored, dave.ID).Error; err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	if !utils.CheckPassword("xxx", stored.Password) {
		t.Error("Update without a password should keep the old one")
	}

	deleteBinge := path("/api/user/%d/deleteBinge?bingeId=%d", dave.ID, binge.ID)
	testutil.AssertStatus(t, env.do("DELETE", deleteBinge, nil, davidToken), fiber.StatusOK)
	testutil.AssertStatus(t, env.do("DELETE", deleteBinge, nil, davidToken), fiber.StatusNotFound)
	testutil.AssertStatus(t, env.do("DELETE", path("/api/user/%d/DeleteAllBinges", dave.ID), nil, davidToken), fiber.StatusOK)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t, "")
	dave := testutil.CreateUser(t, env.db, "Dave", "xxx")
	eve := testutil.CreateUser(t, env.db, "Eve", "yyy")
	token := env.token("Dave")
	show := testutil.CreateShow(t, env.db, "Avatar", nil)
	binge := testutil.CreateBinge(t, env.db, "scary movies", dave.ID)
	testutil.Link(t, env.db, &models.ShowBinge{ShowID: show.ID, BingeID: binge.ID})
	testutil.Link(t, env.db, &models.FavoriteShow{UserID: dave.ID, ShowID: show.ID})

	testutil.AssertStatus(t, env.do("DELETE", path("/api/user/%d", eve.ID), nil, token), fiber.StatusForbidden)
	testutil.AssertStatus(t, env.do("DELETE", path("/api/user/%d", dave.ID), nil, token), fiber.StatusOK)

	for _, model := range []interface{}{&models.ShowBinge{}, &models.Binge{}, &models.FavoriteShow{}} {
		if n := testutil.Count(t, env.db, model, ""); n != 0 {
			t.Errorf("Expected no %T rows, got %d", model, n)
		}
	}
	if n := testutil.Count(t, env.db, &models.Show{}, ""); n != 1 {
		t.Errorf("Shows must survive the user, got %d", n)
	}
	testutil.AssertStatus(t, env.do("GET", "/api/user", nil, token), fiber.StatusUnauthorized)
}
