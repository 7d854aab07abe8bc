// normalize.go
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

// Package notes holds the note feed view-model: record normalization, viewer
// visibility, tag and text filtering, ordering, video reference resolution and
// the optimistic bookmark overlay. Everything here is free of I/O.
package notes

import (
	"fmt"
	"strings"

	"github.com/localnerve/notesdb/internal/models"
)

// NormalizeError describes a record that cannot be shaped into a Note
type NormalizeError struct {
	ID     string
	Reason string
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("note %q: %s", e.ID, e.Reason)
}

// Normalize shapes a raw record into its canonical form.
func Normalize(n models.Note) (models.Note, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.CourseCode = strings.TrimSpace(n.CourseCode)
	n.Description = strings.TrimSpace(n.Description)
	n.UploadedBy = strings.TrimSpace(n.UploadedBy)
	n.Tags = normalizeTags(n.Tags)

	if n.Title == "" {
		return n, &NormalizeError{ID: n.ID, Reason: "empty title"}
	}

	switch n.Type {
	case models.NoteTypePDF, models.NoteTypeVideo:
	default:
		return n, &NormalizeError{ID: n.ID, Reason: fmt.Sprintf("unknown type %q", n.Type)}
	}

	switch n.Status {
	case "":
		n.Status = models.StatusPending
	case models.StatusPending, models.StatusApproved:
	default:
		return n, &NormalizeError{ID: n.ID, Reason: fmt.Sprintf("unknown status %q", n.Status)}
	}

	if n.UserID != nil && *n.UserID == "" {
		n.UserID = nil
	}
	if n.Downloads < 0 {
		n.Downloads = 0
	}
	if n.CommentCount < 0 {
		n.CommentCount = 0
	}
	return n, nil
}

// NormalizeAll normalizes a snapshot, dropping records that fail.
// The dropped errors are returned so the caller can log them.
func NormalizeAll(raw []models.Note) ([]models.Note, []error) {
	out := make([]models.Note, 0, len(raw))
	var dropped []error
	for _, n := range raw {
		clean, err := Normalize(n)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		out = append(out, clean)
	}
	return out, dropped
}

// ParseTags splits a comma separated tag string. Entries are trimmed and
// lowercased, empties and repeats dropped.
func ParseTags(s string) models.StringSet {
	return normalizeTags(strings.Split(s, ","))
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func normalizeTags(tags []string) models.StringSet {
	out := models.StringSet{}
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" || out.Contains(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
