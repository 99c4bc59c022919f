// client.go
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

package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("tmdb api key is not configured")

// StatusError is a non-200 response from the API
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb api error: status %d", e.StatusCode)
}

type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Enabled reports whether the client has an API key
func (c *Client) Enabled() bool {
	return c.config.Enabled()
}

func (c *Client) get(endpoint string, params url.Values, target interface{}) error {
	if !c.config.Enabled() {
		return ErrNotConfigured
	}
	if params == nil {
		params = url.Values{}
	}

	// Log the request before the key is added
	log.Printf("TMDb API request: %s%s?%s", c.config.BaseURL, endpoint, params.Encode())
	params.Set("api_key", c.config.APIKey)

	resp, err := c.httpClient.Get(fmt.Sprintf("%s%s?%s", c.config.BaseURL, endpoint, params.Encode()))
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("TMDb API error: status %d, body: %s", resp.StatusCode, string(body))
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

func (c *Client) SearchMovies(query string, page int) (*MovieSearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if page > 1 {
		params.Set("page", fmt.Sprint(page))
	}

	var result MovieSearchResponse
	if err := c.get("/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetMovieDetails(tmdbID int) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(fmt.Sprintf("/movie/%d", tmdbID), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) GetGenres() ([]Genre, error) {
	var result GenreListResponse
	if err := c.get("/genre/movie/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Genres, nil
}
