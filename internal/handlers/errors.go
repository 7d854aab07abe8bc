// errors.go
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
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/types"
	"github.com/localnerve/notesdb/internal/utils"
	"go.uber.org/zap"
)

// statusOf maps service errors to a status, message and error type
func statusOf(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "Sign in required", "authentication"
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusForbidden, "You are not permitted to do that", "authorization"
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "Resource not found", "notFound"
	case errors.Is(err, services.ErrConfirmationRequired):
		return fiber.StatusPreconditionRequired, "Confirm the deletion with confirm=true", "confirmation"
	case errors.Is(err, services.ErrDuplicateSubmission):
		return fiber.StatusConflict, "This comment was already submitted", "duplicate"
	case errors.Is(err, services.ErrUploadsDisabled):
		return fiber.StatusServiceUnavailable, "Uploads are not available", "uploads"
	case errors.Is(err, services.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, "Service temporarily unavailable, try again", "store"
	}
	return fiber.StatusInternalServerError, "Internal server error", "unknown"
}

// ErrorHandler renders every error that escapes a handler in the standard
// error body
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.ValidationErrorResponse(c, verr.Message, verr.Field, verr.Rule)
		}

		var cerr *types.CustomError
		if errors.As(err, &cerr) {
			return utils.ErrorResponse(c, cerr.Message, cerr.Code, cerr.Type)
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			errorType := "http"
			if ferr.Code == fiber.StatusNotFound {
				errorType = "notFound"
			}
			return utils.ErrorResponse(c, ferr.Message, ferr.Code, errorType)
		}

		status, message, errorType := statusOf(err)
		if status == fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return utils.ErrorResponse(c, message, status, errorType)
	}
}

// NotFound is the catch-all for unmatched routes
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}
