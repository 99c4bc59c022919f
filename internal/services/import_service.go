// import_service.go
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

package services

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/config"
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/dto"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/repositories"
	"github.com/localnerve/movieapp/internal/tmdb"
	"github.com/localnerve/movieapp/internal/types"
	"gorm.io/gorm"
)

// SearchMovies looks up movies by title on TMDB
func SearchMovies(client *tmdb.Client, query string, page int) (dto.MovieSearchDto, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return dto.MovieSearchDto{}, types.InvalidArgumentf("query is required")
	}

	res, err := client.SearchMovies(query, page)
	if err != nil {
		return dto.MovieSearchDto{}, lookupError(err)
	}

	out := dto.MovieSearchDto{
		Page:         res.Page,
		TotalPages:   res.TotalPages,
		TotalResults: res.TotalResults,
		Results:      make([]dto.MovieDto, 0, len(res.Results)),
	}
	for _, movie := range res.Results {
		out.Results = append(out.Results, dto.MovieDto{
			TmdbID:      movie.ID,
			Title:       movie.Title,
			Overview:    movie.Overview,
			ReleaseDate: movie.ReleaseDate,
			PosterURL:   tmdb.BuildPosterURL(movie.PosterPath),
		})
	}
	return out, nil
}

// GetMovie returns the TMDB details of one movie
func GetMovie(client *tmdb.Client, tmdbID int) (dto.MovieDto, error) {
	details, err := client.GetMovieDetails(tmdbID)
	if err != nil {
		return dto.MovieDto{}, lookupError(err)
	}
	return movieFromDetails(details), nil
}

// ImportMovie creates a show from a TMDB movie, subject to the show creation policy.
// Under the id policy the show takes the TMDB id.
func ImportMovie(db *gorm.DB, client *tmdb.Client, policy string, tmdbID int) (*models.Show, error) {
	details, err := client.GetMovieDetails(tmdbID)
	if err != nil {
		return nil, lookupError(err)
	}

	show := ShowFromMovie(movieFromDetails(details))
	if policy == config.ShowIDPolicyID {
		show.ID = details.ID
	}
	shows := repositories.NewShowRepository(database.NewGateway(db), policy)
	if err := shows.Create(&show); err != nil {
		return nil, err
	}
	return &show, nil
}

// ShowFromMovie maps a movie to a new show; empty fields stay unset
func ShowFromMovie(movie dto.MovieDto) models.Show {
	show := models.Show{
		Title:    movie.Title,
		Timespan: movie.Timespan,
	}
	if movie.Overview != "" {
		overview := movie.Overview
		show.Description = &overview
	}
	if movie.PosterURL != "" {
		poster := movie.PosterURL
		show.ImageURL = &poster
	}
	if len(movie.Genres) > 0 {
		show.Genres = models.StringsJSON(movie.Genres)
	}
	return show
}

func movieFromDetails(details *tmdb.MovieDetails) dto.MovieDto {
	movie := dto.MovieDto{
		TmdbID:      details.ID,
		Title:       details.Title,
		Overview:    details.Overview,
		ReleaseDate: details.ReleaseDate,
		PosterURL:   tmdb.BuildPosterURL(details.PosterPath),
	}
	if details.Runtime > 0 {
		runtime := details.Runtime
		movie.Timespan = &runtime
	}
	for _, genre := range details.Genres {
		movie.Genres = append(movie.Genres, genre.Name)
	}
	return movie
}

// lookupError maps TMDB client failures onto the response error kinds
func lookupError(err error) error {
	var statusErr *tmdb.StatusError
	switch {
	case errors.Is(err, tmdb.ErrNotConfigured):
		return &types.CustomError{
			Code:    fiber.StatusServiceUnavailable,
			Message: "Movie lookup is not configured",
			Type:    "tmdb.config",
		}
	case errors.As(err, &statusErr) && statusErr.StatusCode == fiber.StatusNotFound:
		return types.NotFoundf("movie")
	}
	return &types.CustomError{
		Code:    fiber.StatusBadGateway,
		Message: err.Error(),
		Type:    "tmdb.lookup",
	}
}

// MovieGenres returns the names of the TMDB movie genres
func MovieGenres(client *tmdb.Client) ([]string, error) {
	genres, err := client.GetGenres()
	if err != nil {
		return nil, lookupError(err)
	}
	names := make([]string, len(genres))
	for i, genre := range genres {
		names[i] = genre.Name
	}
	return names, nil
}
