// errors_test.go
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

package handlers_test

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notesdb/internal/handlers"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/testutil"
	"github.com/localnerve/notesdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestErrorHandlerMapping(t *testing.T) {
	cases := []struct {
		err       error
		status    int
		errorType string
	}{
		{services.ErrUnauthenticated, fiber.StatusUnauthorized, "authentication"},
		{services.ErrUnauthorized, fiber.StatusForbidden, "authorization"},
		{&services.ValidationError{Field: "title", Rule: "required", Message: "Title is required"}, fiber.StatusBadRequest, "validation"},
		{services.ErrConfirmationRequired, fiber.StatusPreconditionRequired, "confirmation"},
		{services.ErrDuplicateSubmission, fiber.StatusConflict, "duplicate"},
		{services.ErrNotFound, fiber.StatusNotFound, "notFound"},
		{fmt.Errorf("%w: add_comment", services.ErrStoreUnavailable), fiber.StatusServiceUnavailable, "store"},
		{services.ErrUploadsDisabled, fiber.StatusServiceUnavailable, "uploads"},
		{&types.CustomError{Code: 418, Message: "teapot", Type: "custom"}, 418, "custom"},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "http"},
		{errors.New("unexpected"), fiber.StatusInternalServerError, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.errorType, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(zaptest.NewLogger(t))})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.errorType, testutil.ErrorType(t, resp))
		})
	}
}
