// profiles.go
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
	"errors"

	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/store"
	"go.uber.org/zap"
)

// Profiles resolves signed-in users to stored profiles
type Profiles struct {
	Store store.Store
	Log   *zap.Logger
}

// Overview is the profile page: own uploads and bookmarked notes
type Overview struct {
	Profile   models.UserProfile `json:"profile"`
	Uploads   []models.Note      `json:"uploads"`
	Bookmarks []models.Note      `json:"bookmarks"`
}

// Ensure returns a session for the identity, creating a student profile on
// first sign-in. An existing profile is returned unchanged.
func (p *Profiles) Ensure(ctx context.Context, id Identity) (*Session, error) {
	if id.UID == "" {
		return nil, ErrUnauthenticated
	}
	profile, err := p.Store.EnsureProfile(ctx, models.UserProfile{
		UID:         id.UID,
		DisplayName: id.DisplayName,
		Email:       id.Email,
		PhotoURL:    id.PhotoURL,
		Role:        models.RoleStudent,
		Bookmarks:   models.StringSet{},
	})
	if err != nil {
		return nil, storeFailure(p.Log, "ensure_profile", err)
	}
	return NewSession(profile), nil
}

// Overview lists the viewer's uploads in any status, newest first, and the
// bookmarked notes the viewer can still see. Bookmarks to deleted notes are
// skipped.
func (p *Profiles) Overview(ctx context.Context, s *Session) (Overview, error) {
	if s == nil {
		return Overview{}, ErrUnauthenticated
	}

	uploads, err := p.Store.QueryNotes(ctx, store.NoteFilter{UserID: s.Viewer.ID})
	if err != nil {
		return Overview{}, storeFailure(p.Log, "uploads", err)
	}

	bookmarks := []models.Note{}
	if ids := s.Bookmarks.IDs(); len(ids) > 0 {
		raw, err := p.Store.QueryNotes(ctx, store.NoteFilter{IDs: ids})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return Overview{}, storeFailure(p.Log, "bookmarks", err)
		}
		bookmarks = notes.SortByRecency(notes.Visible(normalizeLogged(p.Log, raw), &s.Viewer))
		if skipped := len(ids) - len(raw); skipped > 0 {
			p.Log.Debug("skipped orphaned bookmarks", zap.String("uid", s.Viewer.ID), zap.Int("count", skipped))
		}
	}

	return Overview{
		Profile:   s.Profile,
		Uploads:   notes.SortByRecency(normalizeLogged(p.Log, uploads)),
		Bookmarks: bookmarks,
	}, nil
}
