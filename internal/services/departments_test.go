// departments_test.go
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

package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/notesdb/data"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDepartments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	depts, err := data.LoadDepartments()
	require.NoError(t, err)

	n, err := services.SeedDepartments(ctx, f.store, depts, f.log)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = services.SeedDepartments(ctx, f.store, depts, f.log)
	require.NoError(t, err)
	assert.Zero(t, n)

	stored, err := f.store.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "cse", stored[0].ID)
}
