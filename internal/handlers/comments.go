// comments.go
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
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/types"
	"github.com/localnerve/notesdb/internal/utils"
)

// CommentsHandler handles comment routes
type CommentsHandler struct {
	Comments *services.Comments
	Streamer *Streamer
}

// CommentRequest is the body of a new comment
type CommentRequest struct {
	Text   string        `json:"text"`
	Rating types.FlexInt `json:"rating" swaggertype:"integer"`
}

// List handles GET /api/notes/:id/comments
// @Summary List comments
// @Description Comments on a note, newest first
// @Tags Comments
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /notes/{id}/comments [get]
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	list, err := h.Comments.List(c.UserContext(), services.ViewerOf(sessionOf(c)), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// Feed handles GET /api/notes/:id/comments/feed
// @Summary Live comments
// @Description Server-sent events, one "snapshot" event with the full comment list per change
// @Tags Comments
// @Produce text/event-stream
// @Param id path string true "Note ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notes/{id}/comments/feed [get]
func (h *CommentsHandler) Feed(c *fiber.Ctx) error {
	ctx, cancel := h.Streamer.context()
	ch, err := h.Comments.Watch(ctx, services.ViewerOf(sessionOf(c)), c.Params("id"))
	if err != nil {
		cancel()
		return err
	}
	return stream(h.Streamer, c, ctx, cancel, ch, func(list []models.Comment) interface{} {
		return list
	})
}

// Create handles POST /api/notes/:id/comments
// @Summary Add a comment
// @Description Adds a comment with a 1-5 rating. Resubmitting the same comment, or reusing an Idempotency-Key, inside the dedupe window is rejected.
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param Idempotency-Key header string false "Client submission key"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /notes/{id}/comments [post]
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
			Type:    "validation",
		}
	}

	comment, err := h.Comments.Submit(c.UserContext(), sessionOf(c), services.CommentInput{
		NoteID:         c.Params("id"),
		Text:           req.Text,
		Rating:         req.Rating.Int(),
		IdempotencyKey: c.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, comment, fiber.StatusCreated)
}
