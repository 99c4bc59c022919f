// dto.go
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

// Package dto holds the wire shapes of the HTTP API and the mappings to and from the models.
// The models never carry join collections, so mapping has no side effects on the store.
package dto

import (
	"strings"

	"github.com/localnerve/movieapp/internal/models"
)

// ShowDto is the wire shape of a show
type ShowDto struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Timespan    *int     `json:"timespan,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// TagDto is the wire shape of a tag
type TagDto struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// BingeDto is the wire shape of a binge
type BingeDto struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	UserID      int     `json:"userId,omitempty"`
}

// BingeExtDto is a binge with the values derived from its shows
type BingeExtDto struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	Description          *string `json:"description,omitempty"`
	UserID               int     `json:"userId"`
	Timespan             int     `json:"timespan"`
	ShowCount            int     `json:"showCount"`
	UnknownTimespanCount int     `json:"unknownTimespanCount"`
	IsTimespanAccurate   bool    `json:"isTimespanAccurate"`
}

// UserDto is the public shape of a user; the password never leaves the server
type UserDto struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// LoginDto carries credentials for login, user creation and user update
type LoginDto struct {
	ID       int     `json:"id,omitempty"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password"`
}

// TokenResponse is returned by login
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// ShowFromModel maps a show to its wire shape
func ShowFromModel(show models.Show) ShowDto {
	return ShowDto{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Timespan:    show.Timespan,
		ImageURL:    show.ImageURL,
		Genres:      show.Genres.Strings(),
	}
}

// Model maps the wire shape back to a show
func (d ShowDto) Model() models.Show {
	return models.Show{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Timespan:    d.Timespan,
		ImageURL:    d.ImageURL,
		Genres:      models.StringsJSON(d.Genres),
	}
}

// ShowsFromModels maps a list of shows
func ShowsFromModels(shows []models.Show) []ShowDto {
	out := make([]ShowDto, len(shows))
	for i, show := range shows {
		out[i] = ShowFromModel(show)
	}
	return out
}

// TagFromModel maps a tag to its wire shape
func TagFromModel(tag models.Tag) TagDto {
	return TagDto{ID: tag.ID, Name: tag.Name, Description: tag.Description}
}

// Model maps the wire shape back to a tag
func (d TagDto) Model() models.Tag {
	return models.Tag{ID: d.ID, Name: d.Name, Description: d.Description}
}

// TagsFromModels maps a list of tags
func TagsFromModels(tags []models.Tag) []TagDto {
	out := make([]TagDto, len(tags))
	for i, tag := range tags {
		out[i] = TagFromModel(tag)
	}
	return out
}

// TagsToModels maps a list of wire tags back to tags
func TagsToModels(tags []TagDto) []models.Tag {
	out := make([]models.Tag, len(tags))
	for i, tag := range tags {
		out[i] = tag.Model()
	}
	return out
}

// BingeFromModel maps a binge to its wire shape
func BingeFromModel(binge models.Binge) BingeDto {
	return BingeDto{ID: binge.ID, Name: binge.Name, Description: binge.Description, UserID: binge.UserID}
}

// Model maps the wire shape back to a binge. The owner is set by the repository.
func (d BingeDto) Model() models.Binge {
	return models.Binge{ID: d.ID, Name: d.Name, Description: d.Description}
}

// BingesFromModels maps a list of binges
func BingesFromModels(binges []models.Binge) []BingeDto {
	out := make([]BingeDto, len(binges))
	for i, binge := range binges {
		out[i] = BingeFromModel(binge)
	}
	return out
}

// BingeExtFromModel combines a binge with its derived values
func BingeExtFromModel(binge models.Binge, timespan, showCount, unknown int) BingeExtDto {
	return BingeExtDto{
		ID:                   binge.ID,
		Name:                 binge.Name,
		Description:          binge.Description,
		UserID:               binge.UserID,
		Timespan:             timespan,
		ShowCount:            showCount,
		UnknownTimespanCount: unknown,
		IsTimespanAccurate:   unknown == 0,
	}
}

// UserFromModel maps a user to its public shape
func UserFromModel(user models.User) UserDto {
	return UserDto{ID: user.ID, Name: user.Name, Email: user.Email}
}

// UsersFromModels maps a list of users
func UsersFromModels(users []models.User) []UserDto {
	out := make([]UserDto, len(users))
	for i, user := range users {
		out[i] = UserFromModel(user)
	}
	return out
}

// Model maps credentials to a user holding the plain password
func (d LoginDto) Model() models.User {
	return models.User{ID: d.ID, Name: strings.TrimSpace(d.Name), Email: d.Email, Password: d.Password}
}

// MovieDto is a TMDB movie reduced to the fields a show can hold
type MovieDto struct {
	TmdbID      int      `json:"tmdbId"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	Timespan    *int     `json:"timespan,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// MovieSearchDto is one page of TMDB search results
type MovieSearchDto struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"totalPages"`
	TotalResults int        `json:"totalResults"`
	Results      []MovieDto `json:"results"`
}
