// repository_test.go
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

package repositories

import (
	"testing"

	"github.com/localnerve/movieapp/internal/config"
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/testutil"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	gw     *database.Gateway
	shows  *ShowRepository
	tags   *TagRepository
	binges *BingeRepository
	users  *UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	gw := database.NewGateway(db)
	return &fixture{
		db:     db,
		gw:     gw,
		shows:  NewShowRepository(gw, config.ShowIDPolicyTitle),
		tags:   NewTagRepository(gw),
		binges: NewBingeRepository(gw),
		users:  NewUserRepository(gw),
	}
}
