// seed.go
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

// Package seed loads the demo data used by "server seeddata".
package seed

import (
	"errors"
	"fmt"
	"log"

	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/repositories"
	"github.com/localnerve/movieapp/internal/types"
	"gorm.io/gorm"
)

type bingeSeed struct {
	name        string
	description string
	shows       []string
}

// DemoUser is the name and password of the seeded user
const (
	DemoUser     = "Dave"
	DemoPassword = "xxx"
)

var demoBinges = []bingeSeed{
	{"scary movies", "a buncha scary movies", []string{"Avatar", "Cake Boss", "Impractical Jokers"}},
	{"funny movies", "a buncha funny movies", []string{"Neo", "Cake Loser", "Impractical Fools"}},
}

// Run inserts the demo user with two binges of three shows each when no users exist.
// It reports whether anything was inserted; the data is written in one transaction.
func Run(db *gorm.DB, policy string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, types.Storage("count users", err)
	}
	if count > 0 {
		log.Printf("Seed skipped: %d users already exist", count)
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		gw := database.NewGateway(tx)
		users := repositories.NewUserRepository(gw)
		shows := repositories.NewShowRepository(gw, policy)
		binges := repositories.NewBingeRepository(gw)

		user := &models.User{Name: DemoUser, Password: DemoPassword}
		if err := users.Create(user); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		for _, seed := range demoBinges {
			description := seed.description
			binge := &models.Binge{Name: seed.name, Description: &description}
			if err := binges.Create(binge, user.ID); err != nil {
				return fmt.Errorf("seed binge %q: %w", seed.name, err)
			}
			for _, title := range seed.shows {
				show, err := findOrCreateShow(shows, title)
				if err != nil {
					return fmt.Errorf("seed show %q: %w", title, err)
				}
				if err := binges.AddShow(binge.ID, show.ID); err != nil {
					return fmt.Errorf("seed binge %q show %q: %w", seed.name, title, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Printf("Seeded user %s with %d binges", DemoUser, len(demoBinges))
	return true, nil
}

func findOrCreateShow(shows *repositories.ShowRepository, title string) (*models.Show, error) {
	show, err := shows.GetByTitle(title)
	if err == nil {
		return show, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	show = &models.Show{Title: title}
	if err := shows.Create(show); err != nil {
		return nil, err
	}
	return show, nil
}
