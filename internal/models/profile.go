// profile.go
//
// Persistent records for the notes service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import "time"

// Role is the authorization level of a profile
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// UserProfile is one per authenticated identity. Identity fields are mirrored
// from the provider at first sign-in only.
type UserProfile struct {
	UID         string    `gorm:"primaryKey;size:128" json:"uid" firestore:"uid"`
	DisplayName string    `gorm:"size:255" json:"displayName" firestore:"displayName"`
	Email       string    `gorm:"size:255" json:"email" firestore:"email"`
	PhotoURL    string    `gorm:"size:1024" json:"photoURL" firestore:"photoURL"`
	Role        Role      `gorm:"size:16;not null;default:student" json:"role" firestore:"role"`
	Bookmarks   StringSet `json:"bookmarks" firestore:"bookmarks"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// TableName overrides the table name for UserProfile
func (UserProfile) TableName() string {
	return "users"
}

// Department is a browsable classification for notes
type Department struct {
	ID        string `gorm:"primaryKey;size:64" json:"id" firestore:"-"`
	Name      string `gorm:"size:255;not null" json:"name" firestore:"name"`
	ShortName string `gorm:"size:32" json:"shortName" firestore:"shortName"`
	SortOrder int    `gorm:"not null;default:0" json:"-" firestore:"sortOrder"`
}

// TableName overrides the table name for Department
func (Department) TableName() string {
	return "departments"
}
