// common.go
//
// HTTP handlers for the notes feed
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

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notesdb/internal/middleware"
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/services"
)

// NoteView is a note as rendered to clients
type NoteView struct {
	models.Note
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoID      string `json:"videoId,omitempty"`
	Bookmarked   bool   `json:"bookmarked"`
}

func present(s *services.Session, n models.Note) NoteView {
	v := NoteView{
		Note:         n,
		ThumbnailURL: notes.ThumbnailURL(n),
	}
	if n.Type == models.NoteTypeVideo {
		v.VideoID, _ = notes.ExtractVideoID(n.FileURL)
	}
	if s != nil {
		v.Bookmarked = s.Bookmarks.Bookmarked(n.ID)
	}
	return v
}

func presentAll(s *services.Session, list []models.Note) []NoteView {
	out := make([]NoteView, 0, len(list))
	for _, n := range list {
		out = append(out, present(s, n))
	}
	return out
}

// ScopeResponse is a rendered scope listing
type ScopeResponse struct {
	Notes       []NoteView `json:"notes"`
	Tags        []string   `json:"tags"`
	SelectedTag string     `json:"selectedTag,omitempty"`
	Search      string     `json:"search,omitempty"`
}

func presentScope(s *services.Session, v notes.ScopeView) ScopeResponse {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return ScopeResponse{
		Notes:       presentAll(s, v.Notes),
		Tags:        tags,
		SelectedTag: v.SelectedTag,
		Search:      v.Search,
	}
}

// scopeQuery reads the department and semester path params and the q and tag
// query params. A semester that is not a number is reported by the service as
// out of range.
func scopeQuery(c *fiber.Ctx) services.ScopeQuery {
	semester, _ := c.ParamsInt("sem")
	return services.ScopeQuery{
		DepartmentID: c.Params("dept"),
		Semester:     semester,
		Search:       strings.TrimSpace(c.Query("q")),
		Tag:          strings.ToLower(strings.TrimSpace(c.Query("tag"))),
	}
}

func sessionOf(c *fiber.Ctx) *services.Session {
	return middleware.SessionFrom(c)
}
