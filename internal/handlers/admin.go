// admin.go
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
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/types"
	"github.com/localnerve/notesdb/internal/utils"
)

// AdminHandler handles moderation routes
type AdminHandler struct {
	Feeds        *services.Feeds
	Interactions *services.Interactions
}

// AdminResponse is the moderation dashboard
type AdminResponse struct {
	Notes []NoteView  `json:"notes"`
	Stats notes.Stats `json:"stats"`
}

// VideoRequest is the body of an admin video note
type VideoRequest struct {
	Title        string        `json:"title"`
	URL          string        `json:"url"`
	DepartmentID string        `json:"departmentId"`
	Semester     types.FlexInt `json:"semester" swaggertype:"integer"`
	CourseCode   string        `json:"courseCode"`
	Description  string        `json:"description"`
	Tags         types.TagList `json:"tags" swaggertype:"array,string"`
}

// ListNotes handles GET /api/admin/notes
// @Summary Moderation dashboard
// @Description All notes newest first, searched by title or uploader, with counts over the whole collection
// @Tags Admin
// @Produce json
// @Param q query string false "Search title or uploader"
// @Success 200 {object} AdminResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/notes [get]
func (h *AdminHandler) ListNotes(c *fiber.Ctx) error {
	s := sessionOf(c)
	view, err := h.Feeds.Admin(c.UserContext(), services.ViewerOf(s), c.Query("q"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, AdminResponse{
		Notes: presentAll(s, view.Notes),
		Stats: view.Stats,
	}, fiber.StatusOK)
}

// Approve handles POST /api/admin/notes/:id/approve
// @Summary Approve a note
// @Tags Admin
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/notes/{id}/approve [post]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Interactions.Approve(c.UserContext(), sessionOf(c), id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, fiber.Map{"id": id})
}

// AddVideo handles POST /api/admin/videos
// @Summary Add a video note
// @Description Creates an approved YouTube note without moderation
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body VideoRequest true "Video"
// @Success 201 {object} NoteView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/videos [post]
func (h *AdminHandler) AddVideo(c *fiber.Ctx) error {
	var req VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
			Type:    "validation",
		}
	}

	s := sessionOf(c)
	n, err := h.Interactions.AddVideoDirect(c.UserContext(), s, services.VideoInput{
		Title:        req.Title,
		URL:          req.URL,
		DepartmentID: req.DepartmentID,
		Semester:     req.Semester.Int(),
		CourseCode:   req.CourseCode,
		Description:  req.Description,
		Tags:         req.Tags.String(),
	})
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, present(s, n), fiber.StatusCreated)
}
