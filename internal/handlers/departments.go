// departments.go
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
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/utils"
)

// DepartmentsHandler handles the department directory
type DepartmentsHandler struct {
	Feeds *services.Feeds
}

// List handles GET /api/departments
// @Summary List departments
// @Tags Departments
// @Produce json
// @Param q query string false "Match name or short name"
// @Success 200 {array} models.Department
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /departments [get]
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	depts, err := h.Feeds.Departments(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, depts, fiber.StatusOK)
}
