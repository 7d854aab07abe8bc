// errors.go
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
	"errors"
	"fmt"

	"github.com/localnerve/notesdb/internal/metrics"
	"github.com/localnerve/notesdb/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrUnauthenticated is returned when a mutating action has no signed-in viewer
	ErrUnauthenticated = errors.New("sign in required")
	// ErrUnauthorized is returned when the viewer lacks the role or ownership
	ErrUnauthorized = errors.New("not permitted")
	// ErrStoreUnavailable wraps every store failure other than not found
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound is returned for missing or invisible notes
	ErrNotFound = store.ErrNotFound
	// ErrConfirmationRequired is returned by destructive calls made without confirmation
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrDuplicateSubmission is returned when the same comment is submitted twice
	ErrDuplicateSubmission = errors.New("duplicate submission")
	// ErrUploadsDisabled is returned for PDF submissions when no asset store is configured
	ErrUploadsDisabled = errors.New("uploads are not configured")
)

// ValidationError reports one violated input rule
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, rule, message string) error {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// storeFailure logs and classifies an error from the store. Nothing is retried.
func storeFailure(log *zap.Logger, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	metrics.StoreErrors.WithLabelValues(op).Inc()
	log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, op)
}
