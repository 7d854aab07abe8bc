// health.go
//
// Domain services behind the notes feed
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

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/notesdb/internal/config"
	"github.com/localnerve/notesdb/internal/store"
	"github.com/localnerve/notesdb/internal/utils"
	"go.uber.org/zap"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Store        string            `json:"store"`
	Identity     string            `json:"identity"`
	Uploads      string            `json:"uploads,omitempty"`
	Guard        string            `json:"guard,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Pinger is a dependency that can report reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health checks the service dependencies
type Health struct {
	Config *config.Config
	Store  store.Store
	// Guard is checked when it is shared, nil otherwise
	Guard Pinger
	Log   *zap.Logger
}

func (r *HealthCheckResult) fail(component, detail string, err error) {
	r.Status = "unhealthy"
	r.Details[component+"_error"] = err.Error()
	msg := fmt.Sprintf("%s: %v", detail, err)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
}

// Check performs a comprehensive health check of the service
func (h *Health) Check(ctx context.Context) HealthCheckResult {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	if err := h.Store.Ping(ctx); err != nil {
		result.Store = "unreachable"
		result.fail("store", "Store ping failed", err)
		h.Log.Warn("health check failed", zap.String("component", "store"), zap.Error(err))
	} else {
		result.Store = "ok"
		result.Details["store_type"] = h.Config.DBType
	}

	switch h.Config.AuthProvider {
	case "authorizer":
		if err := utils.PingService(ctx, h.Config.AuthzURL, 1500*time.Millisecond); err != nil {
			result.Identity = "unreachable"
			result.fail("identity", "Authorizer ping failed", err)
			h.Log.Warn("health check failed", zap.String("component", "authorizer"), zap.Error(err))
		} else {
			result.Identity = "ok"
			result.Details["authorizer_url"] = h.Config.AuthzURL
		}
	default:
		result.Identity = h.Config.AuthProvider
	}

	if h.Config.UploadsEnabled() {
		if err := utils.PingSupabase(ctx, h.Config.SupabaseURL); err != nil {
			result.Uploads = "unreachable"
			result.fail("uploads", "Storage ping failed", err)
			h.Log.Warn("health check failed", zap.String("component", "uploads"), zap.Error(err))
		} else {
			result.Uploads = "ok"
		}
	}

	if h.Guard != nil {
		if err := h.Guard.Ping(ctx); err != nil {
			result.Guard = "unreachable"
			result.fail("guard", "Redis ping failed", err)
			h.Log.Warn("health check failed", zap.String("component", "guard"), zap.Error(err))
		} else {
			result.Guard = "ok"
		}
	}

	if result.Status == "healthy" {
		h.Log.Debug("health check passed")
	}
	return result
}
