// routes.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/config"
	"github.com/localnerve/movieapp/internal/middleware"
	"github.com/localnerve/movieapp/internal/services"
	"github.com/localnerve/movieapp/internal/tmdb"
	"gorm.io/gorm"
)

// Dependencies are the shared services the route handlers use
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Tokens  *services.TokenService
	Revoker services.TokenRevoker
	TMDB    *tmdb.Client
}

// RegisterRoutes mounts the API on router, normally the /api group
func RegisterRoutes(router fiber.Router, deps Dependencies) {
	auth := middleware.RequireAuth(deps.Tokens)
	policy := deps.Config.ShowIDPolicy

	health := &HealthHandler{Config: deps.Config, DB: deps.DB, Revoker: deps.Revoker}
	router.Get("/health", health.GetHealth)

	shows := &ShowHandler{DB: deps.DB, Policy: policy}
	show := router.Group("/show")
	show.Get("/", shows.GetShows)
	show.Get("/:id", shows.GetShow)
	show.Get("/:id/tags", shows.GetShowTags)
	show.Get("/:id/binges", shows.GetShowBinges)
	show.Post("/", auth, shows.CreateShow)
	show.Put("/:id", auth, shows.UpdateShow)
	show.Put("/:id/newTag", auth, shows.AddTagToShow)
	show.Delete("/:id", auth, shows.DeleteShow)
	show.Delete("/:id/removeTag", auth, shows.RemoveTagFromShow)
	show.Delete("/:id/removeAllTags", auth, shows.RemoveAllTagsFromShow)

	tags := &TagHandler{DB: deps.DB}
	tag := router.Group("/tag")
	tag.Get("/", tags.GetTags)
	tag.Get("/byId/:id", tags.GetTag)
	tag.Get("/byName/:name", tags.GetTagByName)
	tag.Get("/:id/shows", tags.GetTagShows)
	tag.Post("/", auth, tags.CreateTags)
	tag.Put("/:id", auth, tags.UpdateTag)
	tag.Delete("/:id", auth, tags.DeleteTag)

	binges := &BingeHandler{DB: deps.DB}
	binge := router.Group("/binge")
	binge.Get("/", binges.GetBinges)
	binge.Get("/:id", binges.GetBinge)
	binge.Get("/:id/shows", binges.GetBingeShows)
	binge.Get("/:id/tags", binges.GetBingeTags)
	binge.Put("/:id", auth, binges.UpdateBinge)
	binge.Put("/:id/newShow", auth, binges.AddShowToBinge)
	binge.Delete("/:id", auth, binges.DeleteBinge)
	binge.Delete("/:id/removeShow", auth, binges.RemoveShowFromBinge)
	binge.Delete("/:id/removeAllShows", auth, binges.RemoveAllShowsFromBinge)

	users := &UserHandler{DB: deps.DB, Tokens: deps.Tokens}
	user := router.Group("/user")
	user.Post("/", users.CreateUser)
	user.Put("/newUser", users.CreateUser)
	user.Post("/login", users.Login)
	user.Post("/logout", auth, users.Logout)
	user.Get("/", auth, users.GetUsers)
	user.Get("/byId/:id", auth, users.GetUser)
	user.Get("/byName/:name", auth, users.GetUserByName)
	user.Get("/:id/binges", auth, users.GetUserBinges)
	user.Get("/:id/favoriteShows", auth, users.GetFavoriteShows)
	user.Post("/:id", auth, users.UpdateUser)
	user.Post("/:id/newBinge", auth, users.AddBingeToUser)
	user.Put("/:id/newFavoriteShow", auth, users.AddFavoriteShow)
	user.Delete("/:id", auth, users.DeleteUser)
	user.Delete("/:id/removeFavoriteShow", auth, users.RemoveFavoriteShow)
	user.Delete("/:id/removeAllFavoriteShow", auth, users.RemoveAllFavoriteShows)
	user.Delete("/:id/deleteBinge", auth, users.DeleteUserBinge)
	user.Delete("/:id/DeleteAllBinges", auth, users.DeleteAllUserBinges)

	movies := &TMDBHandler{DB: deps.DB, Client: deps.TMDB, Policy: policy}
	movie := router.Group("/tmdb")
	movie.Get("/search", movies.SearchMovies)
	movie.Get("/genres", movies.GetGenres)
	movie.Get("/movie/:id", movies.GetMovie)
	movie.Post("/import", auth, movies.ImportMovie)
}
