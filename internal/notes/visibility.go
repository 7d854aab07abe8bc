// visibility.go
//
// Note feed view-model
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

package notes

import "github.com/localnerve/notesdb/internal/models"

// Viewer is the actor invoking view-model operations. A nil *Viewer is anonymous.
type Viewer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Photo   string `json:"photo,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// Visible returns the notes the viewer may see. Admins see everything, other
// viewers see approved notes plus their own submissions, anonymous viewers see
// approved notes only.
func Visible(notes []models.Note, viewer *Viewer) []models.Note {
	if viewer != nil && viewer.IsAdmin {
		return notes
	}
	out := make([]models.Note, 0, len(notes))
	for i := range notes {
		if CanSee(viewer, &notes[i]) {
			out = append(out, notes[i])
		}
	}
	return out
}

// CanSee is the single-note form of Visible
func CanSee(viewer *Viewer, n *models.Note) bool {
	if n.Status == models.StatusApproved {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin || n.OwnedBy(viewer.ID)
}

// CanDelete reports whether the viewer may delete the note
func CanDelete(viewer *Viewer, n *models.Note) bool {
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin || n.OwnedBy(viewer.ID)
}

// CanModerate reports whether the viewer may approve notes and seed videos
func CanModerate(viewer *Viewer) bool {
	return viewer != nil && viewer.IsAdmin
}
