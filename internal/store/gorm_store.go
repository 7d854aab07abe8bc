// gorm_store.go
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

package store

import (
	"context"
	"errors"

	"github.com/localnerve/notesdb/internal/database"
	"github.com/localnerve/notesdb/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

const (
	notesTopic       = "notes"
	commentsTopicPre = "comments:"
)

// GormStore implements Store over a SQL database. Change notification is
// in-process, so subscribers only see writes made through this instance.
type GormStore struct {
	db     *gorm.DB
	log    *zap.Logger
	events *notifier
}

// NewGormStore wraps a migrated database
func NewGormStore(db *gorm.DB, log *zap.Logger) *GormStore {
	return &GormStore{db: db, log: log, events: newNotifier()}
}

// DB exposes the underlying connection for tooling
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// silent suppresses gorm's record-not-found logging for lookups
func (s *GormStore) silent(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Session(&gorm.Session{Logger: s.db.Logger.LogMode(logger.Silent)})
}

// forUpdate adds a row lock where the dialect has one
// storedCount reads comment_count with negatives clamped to zero
const storedCount = "(CASE WHEN comment_count > 0 THEN comment_count ELSE 0 END)"

func forUpdate(tx *gorm.DB) *gorm.DB {
	switch tx.Dialector.Name() {
	case "sqlite", "sqlserver":
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) QueryNotes(ctx context.Context, f NoteFilter) ([]models.Note, error) {
	out := []models.Note{}
	if f.IDs != nil && len(f.IDs) == 0 {
		return out, nil
	}

	q := s.db.WithContext(ctx).Model(&models.Note{})
	if f.DepartmentID != "" && f.Semester > 0 && s.db.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.UseIndex("idx_notes_scope"))
	}
	if f.DepartmentID != "" {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.Semester > 0 {
		q = q.Where("semester = ?", f.Semester)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}

	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SubscribeNotes(ctx context.Context, f NoteFilter) (<-chan []models.Note, error) {
	return watch(ctx, s.log, s.events, notesTopic, func(ctx context.Context) ([]models.Note, error) {
		return s.QueryNotes(ctx, f)
	})
}

func (s *GormStore) GetNote(ctx context.Context, id string) (models.Note, error) {
	var n models.Note
	if err := s.silent(ctx).First(&n, "id = ?", id).Error; err != nil {
		return n, notFound(err)
	}
	return n, nil
}

func (s *GormStore) CreateNote(ctx context.Context, note *models.Note) error {
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return err
	}
	s.events.publish(notesTopic)
	return nil
}

func (s *GormStore) ApproveNote(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n models.Note
		if err := forUpdate(tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})).
			First(&n, "id = ?", id).Error; err != nil {
			return err
		}
		if n.Status == models.StatusApproved {
			return nil
		}
		return tx.Model(&models.Note{}).Where("id = ?", id).Update("status", models.StatusApproved).Error
	})
	if err != nil {
		return notFound(err)
	}
	s.events.publish(notesTopic)
	return nil
}

func (s *GormStore) IncrementDownloads(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Note{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.events.publish(notesTopic)
	return nil
}

func (s *GormStore) DeleteNote(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Note{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.events.publish(notesTopic)
	s.events.publish(commentsTopicPre + id)
	return nil
}

func (s *GormStore) AddComment(ctx context.Context, c *models.Comment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n models.Note
		if err := forUpdate(tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})).
			First(&n, "id = ?", c.NoteID).Error; err != nil {
			return err
		}
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		// Both aggregates are computed from the row as stored. rating is
		// assigned first since mysql evaluates SET left to right.
		return tx.Exec("UPDATE "+n.TableName()+" SET "+
			"rating = (rating * "+storedCount+" + ?) / ("+storedCount+" + 1), "+
			"comment_count = "+storedCount+" + 1 "+
			"WHERE id = ?", c.Rating, n.ID).Error
	})
	if err != nil {
		return notFound(err)
	}
	s.events.publish(notesTopic)
	s.events.publish(commentsTopicPre + c.NoteID)
	return nil
}

func (s *GormStore) ListComments(ctx context.Context, noteID string) ([]models.Comment, error) {
	out := []models.Comment{}
	err := s.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SubscribeComments(ctx context.Context, noteID string) (<-chan []models.Comment, error) {
	return watch(ctx, s.log, s.events, commentsTopicPre+noteID, func(ctx context.Context) ([]models.Comment, error) {
		return s.ListComments(ctx, noteID)
	})
}

func (s *GormStore) GetProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	var p models.UserProfile
	if err := s.silent(ctx).First(&p, "uid = ?", uid).Error; err != nil {
		return p, notFound(err)
	}
	return p, nil
}

func (s *GormStore) EnsureProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	if p.Role == "" {
		p.Role = models.RoleStudent
	}
	if p.Bookmarks == nil {
		p.Bookmarks = models.StringSet{}
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
		return models.UserProfile{}, err
	}
	return s.GetProfile(ctx, p.UID)
}

func (s *GormStore) AddBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error) {
	return s.updateBookmarks(ctx, uid, func(set models.StringSet) models.StringSet {
		return set.Union(noteID)
	})
}

func (s *GormStore) RemoveBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error) {
	return s.updateBookmarks(ctx, uid, func(set models.StringSet) models.StringSet {
		return set.Remove(noteID)
	})
}

func (s *GormStore) updateBookmarks(ctx context.Context, uid string, fn func(models.StringSet) models.StringSet) (models.StringSet, error) {
	var out models.StringSet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.UserProfile
		if err := forUpdate(tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})).
			First(&p, "uid = ?", uid).Error; err != nil {
			return err
		}
		out = fn(p.Bookmarks)
		return tx.Model(&models.UserProfile{}).Where("uid = ?", uid).Update("bookmarks", out).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *GormStore) SetRole(ctx context.Context, uid string, role models.Role) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.UserProfile
		if err := forUpdate(tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})).
			First(&p, "uid = ?", uid).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserProfile{}).Where("uid = ?", uid).Update("role", role).Error
	})
	return notFound(err)
}

func (s *GormStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	out := []models.Department{}
	if err := s.db.WithContext(ctx).Order("sort_order, id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) UpsertDepartment(ctx context.Context, dept models.Department) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dept).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	return database.Close(s.db)
}

// watch re-runs query after every change signal on key and sends the result.
// The first snapshot is sent before any signal.
func watch[T any](ctx context.Context, log *zap.Logger, n *notifier, key string, query func(context.Context) (T, error)) (<-chan T, error) {
	signals, unsubscribe := n.subscribe(key)

	initial, err := query(ctx)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan T, 1)
	out <- initial

	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
			}

			snapshot, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn("snapshot query failed", zap.String("topic", key), zap.Error(err))
				continue
			}

			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
