// notes.go
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
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/types"
	"github.com/localnerve/notesdb/internal/utils"
)

// NotesHandler handles note feed and note interaction routes
type NotesHandler struct {
	Feeds          *services.Feeds
	Interactions   *services.Interactions
	Streamer       *Streamer
	MaxUploadBytes int64
}

// SubmitRequest is the JSON body of a note submission
type SubmitRequest struct {
	Title        string          `json:"title"`
	Type         models.NoteType `json:"type"`
	DepartmentID string          `json:"departmentId"`
	Semester     types.FlexInt   `json:"semester" swaggertype:"integer"`
	CourseCode   string          `json:"courseCode"`
	Description  string          `json:"description"`
	Tags         types.TagList   `json:"tags" swaggertype:"array,string"`
	URL          string          `json:"url"`
}

// BookmarkResponse reports the bookmark state after a toggle
type BookmarkResponse struct {
	NoteID     string `json:"noteId"`
	Bookmarked bool   `json:"bookmarked"`
}

// Trending handles GET /api/notes/trending
// @Summary Trending notes
// @Description The most downloaded approved notes
// @Tags Notes
// @Produce json
// @Success 200 {array} NoteView
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /notes/trending [get]
func (h *NotesHandler) Trending(c *fiber.Ctx) error {
	list, err := h.Feeds.Trending(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, presentAll(sessionOf(c), list), fiber.StatusOK)
}

// Scope handles GET /api/departments/:dept/semesters/:sem/notes
// @Summary Notes of a department semester
// @Description Approved notes of one scope, plus the viewer's own, filtered by text and tag and newest first
// @Tags Notes
// @Produce json
// @Param dept path string true "Department ID"
// @Param sem path int true "Semester"
// @Param q query string false "Search text (title, description, course code)"
// @Param tag query string false "Selected tag"
// @Success 200 {object} ScopeResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /departments/{dept}/semesters/{sem}/notes [get]
func (h *NotesHandler) Scope(c *fiber.Ctx) error {
	s := sessionOf(c)
	view, err := h.Feeds.Scope(c.UserContext(), services.ViewerOf(s), scopeQuery(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, presentScope(s, view), fiber.StatusOK)
}

// ScopeFeed handles GET /api/departments/:dept/semesters/:sem/feed
// @Summary Live notes of a department semester
// @Description Server-sent events, one "snapshot" event per change, each carrying a full ScopeResponse
// @Tags Notes
// @Produce text/event-stream
// @Param dept path string true "Department ID"
// @Param sem path int true "Semester"
// @Param q query string false "Search text"
// @Param tag query string false "Selected tag"
// @Success 200 {object} ScopeResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /departments/{dept}/semesters/{sem}/feed [get]
func (h *NotesHandler) ScopeFeed(c *fiber.Ctx) error {
	s := sessionOf(c)
	ctx, cancel := h.Streamer.context()
	views, err := h.Feeds.WatchScope(ctx, services.ViewerOf(s), scopeQuery(c))
	if err != nil {
		cancel()
		return err
	}
	return stream(h.Streamer, c, ctx, cancel, views, func(v notes.ScopeView) interface{} {
		return presentScope(s, v)
	})
}

// Get handles GET /api/notes/:id
// @Summary Get a note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} NoteView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [get]
func (h *NotesHandler) Get(c *fiber.Ctx) error {
	s := sessionOf(c)
	n, err := h.Feeds.Note(c.UserContext(), services.ViewerOf(s), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, present(s, n), fiber.StatusOK)
}

// Download handles GET /api/notes/:id/download
// @Summary Download or play a note
// @Description Counts the download and redirects to the asset. The count is recorded in the background.
// @Tags Notes
// @Param id path string true "Note ID"
// @Success 302
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notes/{id}/download [get]
func (h *NotesHandler) Download(c *fiber.Ctx) error {
	n, err := h.Feeds.Note(c.UserContext(), services.ViewerOf(sessionOf(c)), c.Params("id"))
	if err != nil {
		return err
	}
	h.Interactions.RecordDownloadAsync(n.ID)
	return c.Redirect(notes.DownloadURL(n), fiber.StatusFound)
}

// Submit handles POST /api/notes
// @Summary Submit a note
// @Description Submits a PDF (multipart, field "file") or a video link (JSON or multipart) for moderation
// @Tags Notes
// @Accept json
// @Accept mpfd
// @Produce json
// @Param body body SubmitRequest false "Note (JSON)"
// @Param file formData file false "PDF file (multipart)"
// @Success 201 {object} NoteView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /notes [post]
func (h *NotesHandler) Submit(c *fiber.Ctx) error {
	s := sessionOf(c)

	var (
		input  services.SubmitInput
		upload *services.Upload
	)
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		semester, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("semester")))
		input = services.SubmitInput{
			Title:        c.FormValue("title"),
			Type:         models.NoteType(c.FormValue("type")),
			DepartmentID: c.FormValue("departmentId"),
			Semester:     semester,
			CourseCode:   c.FormValue("courseCode"),
			Description:  c.FormValue("description"),
			Tags:         c.FormValue("tags"),
			URL:          c.FormValue("url"),
		}
		var err error
		if upload, err = h.readUpload(c); err != nil {
			return err
		}
	} else {
		var req SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return &types.CustomError{
				Code:    fiber.StatusBadRequest,
				Message: "Invalid request body",
				Type:    "validation",
			}
		}
		input = services.SubmitInput{
			Title:        req.Title,
			Type:         req.Type,
			DepartmentID: req.DepartmentID,
			Semester:     req.Semester.Int(),
			CourseCode:   req.CourseCode,
			Description:  req.Description,
			Tags:         req.Tags.String(),
			URL:          req.URL,
		}
	}

	n, err := h.Interactions.SubmitNote(c.UserContext(), s, input, upload)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, present(s, n), fiber.StatusCreated)
}

// readUpload reads the "file" form field, reading at most one byte past the
// limit so oversize files are rejected by validation
func (h *NotesHandler) readUpload(c *fiber.Ctx) (*services.Upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

// Delete handles DELETE /api/notes/:id
// @Summary Delete a note
// @Description Deletes a note and its comments. Owner or admin only. Requires confirm=true.
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 428 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /notes/{id} [delete]
func (h *NotesHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Interactions.DeleteNote(c.UserContext(), sessionOf(c), id, c.QueryBool("confirm")); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, fiber.Map{"id": id})
}

// Bookmark handles POST /api/notes/:id/bookmark
// @Summary Toggle a bookmark
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} BookmarkResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /notes/{id}/bookmark [post]
func (h *NotesHandler) Bookmark(c *fiber.Ctx) error {
	id := c.Params("id")
	on, err := h.Interactions.ToggleBookmark(c.UserContext(), sessionOf(c), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, BookmarkResponse{NoteID: id, Bookmarked: on}, fiber.StatusOK)
}
