// tmdb_test.go
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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/testutil"
)

func newMovieServer(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"total_pages":1,"total_results":1,"results":[{"id":19995,"title":"Avatar"}]}`))
	})
	mux.HandleFunc("/movie/19995", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":19995,"title":"Avatar","overview":"Blue people","runtime":162,"genres":[{"id":28,"name":"Action"}]}`))
	})
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func TestMovieLookupAndImport(t *testing.T) {
	env := newTestEnv(t, newMovieServer(t))
	testutil.CreateUser(t, env.db, "Dave", "xxx")
	token := env.token("Dave")

	resp := env.do("GET", "/api/tmdb/search?query=avatar", nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var search dto.MovieSearchDto
	testutil.ParseJSON(t, resp, &search)
	if len(search.Results) != 1 || search.Results[0].TmdbID != 19995 {
		t.Errorf("Unexpected search: %+v", search)
	}
	testutil.AssertStatus(t, env.do("GET", "/api/tmdb/search", nil, ""), fiber.StatusUnprocessableEntity)

	resp = env.do("GET", "/api/tmdb/movie/19995", nil, "")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var movie dto.MovieDto
	testutil.ParseJSON(t, resp, &movie)
	if movie.Timespan == nil || *movie.Timespan != 162 {
		t.Errorf("Unexpected movie: %+v", movie)
	}
	testutil.AssertStatus(t, env.do("GET", "/api/tmdb/movie/1", nil, ""), fiber.StatusNotFound)
	testutil.AssertStatus(t, env.do("GET", "/api/tmdb/genres", nil, ""), fiber.StatusOK)

	resp = env.do("POST", "/api/tmdb/import", `{"tmdbId":"19995"}`, token)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var show dto.ShowDto
	testutil.ParseJSON(t, resp, &show)
	if show.ID == 0 || show.Title != "Avatar" || len(show.Genres) != 1 {
		t.Errorf("Unexpected imported show: %+v", show)
	}
	testutil.AssertStatus(t, env.do("POST", "/api/tmdb/import", `{"tmdbId":19995}`, token), fiber.StatusConflict)
	testutil.AssertStatus(t, env.do("POST", "/api/tmdb/import", `{}`, token), fiber.StatusUnprocessableEntity)
}

func TestMovieLookupDisabled(t *testing.T) {
	env := newTestEnv(t, "")
	testutil.AssertStatus(t, env.do("GET", "/api/tmdb/movie/19995", nil, ""), fiber.StatusServiceUnavailable)
}
