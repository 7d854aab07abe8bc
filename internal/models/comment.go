// comment.go
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

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a rated remark attached to exactly one note. Immutable once created.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" firestore:"-"`
	NoteID    string    `gorm:"size:36;not null;index:idx_comments_note" json:"noteId" firestore:"noteId"`
	UserID    string    `gorm:"size:128;not null" json:"userId" firestore:"userId"`
	UserName  string    `gorm:"size:255" json:"userName" firestore:"userName"`
	UserPhoto string    `gorm:"size:1024" json:"userPhoto" firestore:"userPhoto"`
	Text      string    `gorm:"type:text;not null" json:"text" firestore:"text"`
	Rating    int       `gorm:"not null" json:"rating" firestore:"rating"`
	CreatedAt time.Time `gorm:"index:idx_comments_note" json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// BeforeCreate assigns an id when the caller has not
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
