// session.go
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

	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
)

// Identity is what an identity provider tells us about a signed-in user
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// Credentials are the request parts a SessionValidator may inspect
type Credentials struct {
	Cookie      string
	BearerToken string
	Protocol    string
	Host        string
}

// Empty reports whether no credential was presented
func (c Credentials) Empty() bool {
	return c.Cookie == "" && c.BearerToken == ""
}

// SessionValidator resolves credentials to an identity
type SessionValidator interface {
	Validate(ctx context.Context, creds Credentials) (*Identity, error)
}

// Session is the signed-in viewer passed explicitly into every operation
type Session struct {
	Viewer    notes.Viewer
	Profile   models.UserProfile
	Bookmarks *notes.BookmarkOverlay
}

// NewSession builds a session from a stored profile
func NewSession(p models.UserProfile) *Session {
	return &Session{
		Viewer: notes.Viewer{
			ID:      p.UID,
			Name:    p.DisplayName,
			Photo:   p.PhotoURL,
			IsAdmin: p.Role == models.RoleAdmin,
		},
		Profile:   p,
		Bookmarks: notes.NewBookmarkOverlay(p.Bookmarks),
	}
}

// ViewerOf returns the session viewer, or nil for an anonymous request
func ViewerOf(s *Session) *notes.Viewer {
	if s == nil {
		return nil
	}
	return &s.Viewer
}
