// gateway.go
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

package database

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/localnerve/movieapp/internal/models"
	"github.com/localnerve/movieapp/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// ErrUnrecognizedEntity is returned when a value outside the model is staged
var ErrUnrecognizedEntity = errors.New("unrecognized entity type")

type operation int

const (
	opAdd operation = iota
	opUpdate
	opRemove
)

func (op operation) String() string {
	switch op {
	case opAdd:
		return "add"
	case opUpdate:
		return "update"
	default:
		return "remove"
	}
}

type change struct {
	op     operation
	entity interface{}
}

// Gateway is a unit of work over one database session.
// Changes are staged with Add, Update, Remove and RemoveRange and written by Commit.
// A Gateway is not safe for concurrent use; create one per request.
type Gateway struct {
	db      *gorm.DB
	pending []change
}

// NewGateway creates a gateway over db
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// Add stages an insert. The entity must be a pointer to a model; its id is filled on commit.
func (g *Gateway) Add(entity interface{}) error {
	return g.stage(opAdd, entity)
}

// Update stages a full-record replace by primary key
func (g *Gateway) Update(entity interface{}) error {
	return g.stage(opUpdate, entity)
}

// Remove stages a delete by primary key
func (g *Gateway) Remove(entity interface{}) error {
	return g.stage(opRemove, entity)
}

// RemoveRange stages a delete for every element of a slice of models.
// Nothing is staged if any element is unrecognized.
func (g *Gateway) RemoveRange(entities interface{}) error {
	v := reflect.ValueOf(entities)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("%w: %T is not a slice", ErrUnrecognizedEntity, entities)
	}

	staged := make([]change, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		if item.Kind() == reflect.Interface {
			item = item.Elem()
		}
		if item.Kind() != reflect.Ptr {
			if !item.CanAddr() {
				return fmt.Errorf("%w: element %d", ErrUnrecognizedEntity, i)
			}
			item = item.Addr()
		}
		entity := item.Interface()
		if !recognized(entity) {
			return fmt.Errorf("%w: %T", ErrUnrecognizedEntity, entity)
		}
		staged = append(staged, change{op: opRemove, entity: entity})
	}

	g.pending = append(g.pending, staged...)
	return nil
}

// Pending reports the number of staged changes
func (g *Gateway) Pending() int {
	return len(g.pending)
}

// Discard drops all staged changes
func (g *Gateway) Discard() {
	g.pending = nil
}

// Commit writes the staged changes in one transaction and returns the number of affected rows.
// The error is set only when the store fails; the caller decides whether zero rows is a failure.
// Duplicate keys are reported as types.ErrConflict and foreign key violations as types.ErrNotFound.
func (g *Gateway) Commit() (int64, error) {
	if len(g.pending) == 0 {
		return 0, nil
	}

	pending := g.pending
	g.pending = nil

	var affected int64
	err := g.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range pending {
			n, err := apply(tx, c)
			if err != nil {
				return fmt.Errorf("%s %T: %w", c.op, c.entity, err)
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}

	return affected, nil
}

// DB returns the underlying connection
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Users returns a query over users
func (g *Gateway) Users() *gorm.DB {
	return g.collection(&models.User{}, "users")
}

// Shows returns a query over shows
func (g *Gateway) Shows() *gorm.DB {
	return g.collection(&models.Show{}, "shows")
}

// Tags returns a query over tags
func (g *Gateway) Tags() *gorm.DB {
	return g.collection(&models.Tag{}, "tags")
}

// Binges returns a query over binges
func (g *Gateway) Binges() *gorm.DB {
	return g.collection(&models.Binge{}, "binges")
}

// ShowTags returns a query over show/tag pairs
func (g *Gateway) ShowTags() *gorm.DB {
	return g.collection(&models.ShowTag{}, "show_tags")
}

// ShowBinges returns a query over show/binge pairs
func (g *Gateway) ShowBinges() *gorm.DB {
	return g.collection(&models.ShowBinge{}, "show_binges")
}

// FavoriteShows returns a query over user/show favorites
func (g *Gateway) FavoriteShows() *gorm.DB {
	return g.collection(&models.FavoriteShow{}, "favorite_shows")
}

// collection scopes a quiet read session to one model, tagging the SQL with its name
func (g *Gateway) collection(model interface{}, name string) *gorm.DB {
	return g.db.Session(&gorm.Session{Logger: g.db.Logger.LogMode(logger.Silent)}).
		Clauses(hints.CommentBefore("select", "movieapp:"+name)).
		Model(model)
}

func (g *Gateway) stage(op operation, entity interface{}) error {
	if !recognized(entity) {
		return fmt.Errorf("%w: %T", ErrUnrecognizedEntity, entity)
	}
	g.pending = append(g.pending, change{op: op, entity: entity})
	return nil
}

func apply(tx *gorm.DB, c change) (int64, error) {
	var result *gorm.DB
	switch c.op {
	case opAdd:
		result = tx.Omit(clause.Associations).Create(c.entity)
	case opUpdate:
		result = tx.Model(c.entity).Select("*").Omit(clause.Associations).Updates(c.entity)
	default:
		result = remove(tx, c.entity)
	}
	return result.RowsAffected, result.Error
}

// remove deletes join rows by explicit column equality. gorm would match a composite key with
// a row-value IN, which SQL Server does not support.
func remove(tx *gorm.DB, entity interface{}) *gorm.DB {
	switch e := entity.(type) {
	case *models.ShowTag:
		return tx.Where("show_id = ? AND tag_id = ?", e.ShowID, e.TagID).Delete(&models.ShowTag{})
	case *models.ShowBinge:
		return tx.Where("show_id = ? AND binge_id = ?", e.ShowID, e.BingeID).Delete(&models.ShowBinge{})
	case *models.FavoriteShow:
		return tx.Where("user_id = ? AND show_id = ?", e.UserID, e.ShowID).Delete(&models.FavoriteShow{})
	}
	return tx.Omit(clause.Associations).Delete(entity)
}

func recognized(entity interface{}) bool {
	switch entity.(type) {
	case *models.User, *models.Show, *models.Tag, *models.Binge,
		*models.ShowTag, *models.ShowBinge, *models.FavoriteShow:
		return true
	}
	return false
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicateMessage(err):
		return fmt.Errorf("%w: %w", types.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced row is missing: %w", types.ErrNotFound, err)
	}
	return types.Storage("commit", err)
}

// isDuplicateMessage covers drivers that do not implement gorm's error translation
func isDuplicateMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
