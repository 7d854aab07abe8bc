// note.go
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

// NoteType is the kind of resource a note points at
type NoteType string

const (
	NoteTypePDF   NoteType = "pdf"
	NoteTypeVideo NoteType = "video"
)

// NoteStatus is the moderation state of a note. Only pending -> approved exists.
type NoteStatus string

const (
	StatusPending  NoteStatus = "pending"
	StatusApproved NoteStatus = "approved"
)

// Note is a shareable learning resource, either a PDF document or a video reference
type Note struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id" firestore:"-"`
	Title        string     `gorm:"size:255;not null" json:"title" firestore:"title"`
	Type         NoteType   `gorm:"size:16;not null" json:"type" firestore:"type"`
	DepartmentID string     `gorm:"size:64;not null;index:idx_notes_scope,priority:1" json:"departmentId" firestore:"departmentId"`
	Semester     int        `gorm:"not null;index:idx_notes_scope,priority:2" json:"semester" firestore:"semester"`
	CourseCode   string     `gorm:"size:64" json:"courseCode" firestore:"courseCode"`
	Description  string     `gorm:"type:text" json:"description" firestore:"description"`
	Tags         StringSet  `json:"tags" firestore:"tags"`
	FileURL      string     `gorm:"size:1024;not null" json:"fileURL" firestore:"fileURL"`
	UploadedBy   string     `gorm:"size:255" json:"uploadedBy" firestore:"uploadedBy"`
	UserID       *string    `gorm:"size:128;index" json:"userId" firestore:"userId"`
	Status       NoteStatus `gorm:"size:16;not null;default:pending;index:idx_notes_scope,priority:3" json:"status" firestore:"status"`
	Downloads    int64      `gorm:"not null;default:0" json:"downloads" firestore:"downloads"`
	Rating       float64    `gorm:"not null;default:0" json:"rating" firestore:"rating"`
	CommentCount int64      `gorm:"not null;default:0" json:"commentCount" firestore:"commentCount"`
	CreatedAt    time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time  `json:"-" firestore:"-"`
}

// OwnedBy reports whether uid owns the note
func (n *Note) OwnedBy(uid string) bool {
	return uid != "" && n.UserID != nil && *n.UserID == uid
}

// BeforeCreate assigns an id when the caller has not
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Note
func (Note) TableName() string {
	return "notes"
}
