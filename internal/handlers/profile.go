// profile.go
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
	"github.com/localnerve/notesdb/internal/utils"
)

// ProfileHandler handles the signed-in user's profile page
type ProfileHandler struct {
	Profiles *services.Profiles
}

// ProfileResponse is the profile page
type ProfileResponse struct {
	Profile   models.UserProfile `json:"profile"`
	Uploads   []NoteView         `json:"uploads"`
	Bookmarks []NoteView         `json:"bookmarks"`
}

// Get handles GET /api/profile
// @Summary Profile overview
// @Description The viewer's profile, uploads in any status and bookmarked notes
// @Tags Profile
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	s := sessionOf(c)
	ov, err := h.Profiles.Overview(c.UserContext(), s)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, ProfileResponse{
		Profile:   ov.Profile,
		Uploads:   presentAll(s, ov.Uploads),
		Bookmarks: presentAll(s, ov.Bookmarks),
	}, fiber.StatusOK)
}
