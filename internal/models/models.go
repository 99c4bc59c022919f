// models.go
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

package models

// User is an account that owns binges and favorite shows.
// Binges and favorites are reached through repository queries, never through fields here.
type User struct {
	ID       int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Email    *string `gorm:"size:255" json:"email,omitempty"`
	Password string  `gorm:"size:255;not null" json:"-"`
}

// Show is a movie or TV show. Timespan is the runtime in minutes; nil means unknown.
type Show struct {
	ID          int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"size:255;not null;index" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Timespan    *int    `json:"timespan,omitempty"`
	ImageURL    *string `gorm:"size:1024" json:"imageUrl,omitempty"`
	Genres      JSON    `json:"genres,omitempty"`
}

// Tag labels shows.
type Tag struct {
	ID          int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}

// Binge is a named collection of shows owned by exactly one user.
type Binge struct {
	ID          int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	UserID      int     `gorm:"not null;index" json:"userId"`

	// Author only declares the foreign key constraint; it is never loaded.
	Author *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ShowTag joins a show to a tag.
type ShowTag struct {
	ShowID int `gorm:"primaryKey;autoIncrement:false" json:"showId"`
	TagID  int `gorm:"primaryKey;autoIncrement:false;index" json:"tagId"`

	Show *Show `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"-"`
	Tag  *Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

// ShowBinge joins a show to a binge.
type ShowBinge struct {
	ShowID  int `gorm:"primaryKey;autoIncrement:false" json:"showId"`
	BingeID int `gorm:"primaryKey;autoIncrement:false;index" json:"bingeId"`

	Show  *Show  `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"-"`
	Binge *Binge `gorm:"foreignKey:BingeID;constraint:OnDelete:CASCADE" json:"-"`
}

// FavoriteShow marks a show as a favorite of a user.
type FavoriteShow struct {
	UserID int `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	ShowID int `gorm:"primaryKey;autoIncrement:false;index" json:"showId"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Show *Show `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Show
func (Show) TableName() string {
	return "shows"
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// TableName overrides the table name for Binge
func (Binge) TableName() string {
	return "binges"
}

// TableName overrides the table name for ShowTag
func (ShowTag) TableName() string {
	return "show_tags"
}

// TableName overrides the table name for ShowBinge
func (ShowBinge) TableName() string {
	return "show_binges"
}

// TableName overrides the table name for FavoriteShow
func (FavoriteShow) TableName() string {
	return "favorite_shows"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Show{},
		&Tag{},
		&Binge{},
		&ShowTag{},
		&ShowBinge{},
		&FavoriteShow{},
	}
}
