// repository.go
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
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/types"
	"gorm.io/gorm"
)

// save commits the staged changes of op. A commit that affects no rows is reported as
// types.ErrNothingSaved.
func save(gw *database.Gateway, op string) error {
	affected, err := gw.Commit()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, types.ErrNothingSaved)
	}
	return nil
}

// abort drops whatever op staged before failing, so a later commit cannot flush it
func abort(gw *database.Gateway, op string, err error) error {
	gw.Discard()
	return fmt.Errorf("%s: %w", op, err)
}

// exists reports whether q matches any row. Query failures are logged and read as false.
func exists(q *gorm.DB) bool {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		log.Printf("exists query failed: %v", err)
		return false
	}
	return count > 0
}

// first loads one row into dest, mapping a missing row to types.ErrNotFound
func first(q *gorm.DB, dest interface{}, what string) error {
	err := q.First(dest).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.NotFoundf("%s", what)
	}
	return types.Storage("get "+what, err)
}

// find loads all rows of q into dest
func find(q *gorm.DB, dest interface{}, what string) error {
	if err := q.Find(dest).Error; err != nil {
		return types.Storage("list "+what, err)
	}
	return nil
}

// normalize folds a name for case-insensitive comparison in memory
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// sameName is a condition matching column against one argument ignoring case.
// Both sides are folded by the store, so a value always matches itself; SQLite folds ASCII only.
func sameName(column string) string {
	return "LOWER(" + column + ") = LOWER(?)"
}

// removeRows deletes a slice of join rows in one commit; an empty slice is a no-op
func removeRows[T any](gw *database.Gateway, op string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := gw.RemoveRange(rows); err != nil {
		return abort(gw, op, err)
	}
	return save(gw, op)
}
