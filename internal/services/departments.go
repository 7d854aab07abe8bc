// departments.go
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

	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/store"
	"go.uber.org/zap"
)

// SeedDepartments writes depts when the store has no departments yet and
// reports how many were written
func SeedDepartments(ctx context.Context, st store.Store, depts []models.Department, log *zap.Logger) (int, error) {
	existing, err := st.ListDepartments(ctx)
	if err != nil {
		return 0, storeFailure(log, "list_departments", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, d := range depts {
		if err := st.UpsertDepartment(ctx, d); err != nil {
			return 0, storeFailure(log, "upsert_department", err)
		}
	}
	log.Info("seeded departments", zap.Int("count", len(depts)))
	return len(depts), nil
}
