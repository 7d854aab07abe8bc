// store.go
//
// Remote document store for the notes feed
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

// Package store is the remote document store behind the note feed. Two
// implementations exist: GormStore over a SQL database and FirestoreStore over
// Cloud Firestore. Both deliver full snapshots to subscribers on every change.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/notesdb/internal/config"
	"github.com/localnerve/notesdb/internal/database"
	"github.com/localnerve/notesdb/internal/models"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the addressed record does not exist
var ErrNotFound = errors.New("not found")

// NoteFilter is a set of equality filters. Zero fields do not filter.
type NoteFilter struct {
	DepartmentID string
	Semester     int
	Status       models.NoteStatus
	UserID       string
	// IDs restricts the result to these ids; missing ids are skipped.
	IDs []string
}

// Store is the system of record for notes, comments, profiles and departments.
type Store interface {
	QueryNotes(ctx context.Context, filter NoteFilter) ([]models.Note, error)
	// SubscribeNotes sends the current snapshot, then a full snapshot after
	// every change. The channel closes when ctx is done.
	SubscribeNotes(ctx context.Context, filter NoteFilter) (<-chan []models.Note, error)
	GetNote(ctx context.Context, id string) (models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) error
	// ApproveNote is a no-op for a note that is already approved.
	ApproveNote(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
	// DeleteNote removes the note and its comments together.
	DeleteNote(ctx context.Context, id string) error

	// AddComment inserts the comment and updates the parent's comment count
	// and average rating in one transaction.
	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, noteID string) ([]models.Comment, error)
	SubscribeComments(ctx context.Context, noteID string) (<-chan []models.Comment, error)

	GetProfile(ctx context.Context, uid string) (models.UserProfile, error)
	// EnsureProfile returns the stored profile, creating it from p when absent.
	EnsureProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error)
	AddBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error)
	RemoveBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error)
	SetRole(ctx context.Context, uid string, role models.Role) error

	ListDepartments(ctx context.Context) ([]models.Department, error)
	UpsertDepartment(ctx context.Context, dept models.Department) error

	Ping(ctx context.Context) error
	Close() error
}

// Open connects the store selected by DB_TYPE
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Store, error) {
	if cfg.DBType == "firestore" {
		return NewFirestoreStore(ctx, cfg.FirestoreProjectID, cfg.FirebaseCredentialsFile, log)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return NewGormStore(db, log), nil
}

// runningAverage folds one more rating into an average over count ratings
func runningAverage(avg float64, count int64, rating int) float64 {
	if count < 0 {
		count = 0
	}
	return (avg*float64(count) + float64(rating)) / float64(count+1)
}
