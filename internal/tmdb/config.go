// config.go
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
	"fmt"
	"strings"
)

const (
	BaseURL      = "https://api.themoviedb.org/3"
	ImageBaseURL = "https://image.tmdb.org/t/p/"
)

const (
	SizePosterW185 = "w185"
	SizePosterW500 = "w500"
	SizeOriginal   = "original"
)

type Config struct {
	APIKey  string
	BaseURL string
}

// NewConfig builds a client configuration; an empty baseURL selects the public API
func NewConfig(apiKey, baseURL string) *Config {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Config{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Enabled reports whether an API key is configured
func (c *Config) Enabled() bool {
	return c != nil && c.APIKey != ""
}

func BuildImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s%s%s", ImageBaseURL, size, path)
}

func BuildPosterURL(path string) string {
	return BuildImageURL(SizePosterW500, path)
}
