// routes.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notesdb/internal/middleware"
)

// Routes is the full set of API handlers
type Routes struct {
	Session     fiber.Handler
	Notes       *NotesHandler
	Comments    *CommentsHandler
	Departments *DepartmentsHandler
	Profile     *ProfileHandler
	Admin       *AdminHandler
	Health      *HealthHandler
}

// Register mounts the routes on api, normally the /api group
func (r *Routes) Register(api fiber.Router) {
	api.Use(middleware.VersionMiddleware())
	api.Get("/health", r.Health.Check)

	api.Use(r.Session)
	user := middleware.RequireViewer()
	admin := middleware.RequireAdmin()

	// Public and optional-viewer routes
	api.Get("/departments", r.Departments.List)
	api.Get("/departments/:dept/semesters/:sem/notes", r.Notes.Scope)
	api.Get("/departments/:dept/semesters/:sem/feed", r.Notes.ScopeFeed)
	api.Get("/notes/trending", r.Notes.Trending)
	api.Get("/notes/:id", r.Notes.Get)
	api.Get("/notes/:id/download", r.Notes.Download)
	api.Get("/notes/:id/comments", r.Comments.List)
	api.Get("/notes/:id/comments/feed", r.Comments.Feed)

	// Signed-in routes
	api.Post("/notes", user, r.Notes.Submit)
	api.Delete("/notes/:id", user, r.Notes.Delete)
	api.Post("/notes/:id/bookmark", user, r.Notes.Bookmark)
	api.Post("/notes/:id/comments", user, r.Comments.Create)
	api.Get("/profile", user, r.Profile.Get)

	// Admin routes
	api.Get("/admin/notes", admin, r.Admin.ListNotes)
	api.Post("/admin/notes/:id/approve", admin, r.Admin.Approve)
	api.Post("/admin/videos", admin, r.Admin.AddVideo)
}
