// comments.go
//
// Domain services behind the notes feed
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

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/localnerve/notesdb/internal/metrics"
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/store"
	"go.uber.org/zap"
)

// Comments aggregates comments and ratings on notes
type Comments struct {
	Store  store.Store
	Guard  Guard
	Window time.Duration
	Log    *zap.Logger
}

// CommentInput is one comment submission
type CommentInput struct {
	NoteID         string
	Text           string
	Rating         int
	IdempotencyKey string
}

// Submit adds a comment and folds its rating into the note average.
// Identical submissions inside the dedupe window are rejected.
func (c *Comments) Submit(ctx context.Context, s *Session, in CommentInput) (models.Comment, error) {
	if s == nil {
		return models.Comment{}, ErrUnauthenticated
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return models.Comment{}, invalid("text", "required", "Comment text is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return models.Comment{}, invalid("rating", "range", "Rating must be between 1 and 5")
	}

	if _, err := visibleNote(ctx, c.Store, c.Log, &s.Viewer, in.NoteID); err != nil {
		return models.Comment{}, err
	}

	key := submissionKey(s.Viewer.ID, in.NoteID, text, in.Rating, in.IdempotencyKey)
	claimed, err := c.Guard.Claim(ctx, key, c.Window)
	if err != nil {
		c.Log.Warn("idempotency guard unavailable", zap.Error(err))
	} else if !claimed {
		metrics.Comments.WithLabelValues("duplicate").Inc()
		return models.Comment{}, ErrDuplicateSubmission
	}

	comment := models.Comment{
		NoteID:    in.NoteID,
		UserID:    s.Viewer.ID,
		UserName:  s.Viewer.Name,
		UserPhoto: s.Viewer.Photo,
		Text:      text,
		Rating:    in.Rating,
	}
	if err := c.Store.AddComment(ctx, &comment); err != nil {
		if claimed {
			if rerr := c.Guard.Release(ctx, key); rerr != nil {
				c.Log.Warn("failed to release idempotency key", zap.Error(rerr))
			}
		}
		metrics.Comments.WithLabelValues("failed").Inc()
		return models.Comment{}, storeFailure(c.Log, "add_comment", err)
	}

	metrics.Comments.WithLabelValues("added").Inc()
	return comment, nil
}

// List returns a note's comments, newest first. Comments on notes the
// viewer cannot see are reported as not found.
func (c *Comments) List(ctx context.Context, viewer *notes.Viewer, noteID string) ([]models.Comment, error) {
	if _, err := visibleNote(ctx, c.Store, c.Log, viewer, noteID); err != nil {
		return nil, err
	}
	list, err := c.Store.ListComments(ctx, noteID)
	if err != nil {
		return nil, storeFailure(c.Log, "list_comments", err)
	}
	return list, nil
}

// Watch streams comment snapshots for a note until ctx is done
func (c *Comments) Watch(ctx context.Context, viewer *notes.Viewer, noteID string) (<-chan []models.Comment, error) {
	if _, err := visibleNote(ctx, c.Store, c.Log, viewer, noteID); err != nil {
		return nil, err
	}
	ch, err := c.Store.SubscribeComments(ctx, noteID)
	if err != nil {
		return nil, storeFailure(c.Log, "watch_comments", err)
	}
	return ch, nil
}

// submissionKey scopes a client key to the viewer, or derives one from the
// submission content when the client sent none.
func submissionKey(uid, noteID, text string, rating int, clientKey string) string {
	h := sha256.New()
	if clientKey != "" {
		h.Write([]byte("key\x00" + uid + "\x00" + clientKey))
	} else {
		h.Write([]byte(strings.Join([]string{"content", uid, noteID, text, strconv.Itoa(rating)}, "\x00")))
	}
	return "comment:" + hex.EncodeToString(h.Sum(nil))
}
