// session.go
//
// HTTP middleware for the notes service
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

package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/types"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionConfig wires the session middleware
type SessionConfig struct {
	Validator services.SessionValidator
	Profiles  *services.Profiles
	Log       *zap.Logger
}

// Session resolves the request credentials to a *services.Session stored in
// Locals. Requests without valid credentials continue anonymously.
func Session(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		creds := services.Credentials{
			Cookie:      c.Cookies("cookie_session"),
			BearerToken: bearerToken(c.Get(fiber.HeaderAuthorization)),
			Protocol:    c.Protocol(),
			Host:        c.Hostname(),
		}
		if creds.Empty() {
			return c.Next()
		}

		identity, err := cfg.Validator.Validate(c.UserContext(), creds)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				cfg.Log.Debug("rejected credentials", zap.Error(err))
			} else {
				cfg.Log.Warn("session validation failed", zap.Error(err))
			}
			return c.Next()
		}

		session, err := cfg.Profiles.Ensure(c.UserContext(), *identity)
		if err != nil {
			return err
		}
		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// SessionFrom returns the request session, or nil for an anonymous request
func SessionFrom(c *fiber.Ctx) *services.Session {
	s, _ := c.Locals(sessionKey).(*services.Session)
	return s
}

// RequireViewer rejects anonymous requests
func RequireViewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionFrom(c) == nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Sign in required",
				Type:    "authorization.user",
			}
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests from anyone but an admin
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := SessionFrom(c)
		if s == nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Sign in required",
				Type:    "authorization.admin",
			}
		}
		if !s.Viewer.IsAdmin {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Admin role required",
				Type:    "authorization.admin",
			}
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
