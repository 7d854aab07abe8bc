// embed.go
//
// Embedded seed data for the notes service
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

package data

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/localnerve/notesdb/internal/models"
)

//go:embed departments.json
var departmentsJSON []byte

// seedDepartment mirrors models.Department with the sort order exposed
type seedDepartment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	SortOrder int    `json:"sortOrder"`
}

// LoadDepartments returns the built-in department directory
func LoadDepartments() ([]models.Department, error) {
	var seeds []seedDepartment
	if err := json.Unmarshal(departmentsJSON, &seeds); err != nil {
		return nil, fmt.Errorf("invalid departments.json: %w", err)
	}
	out := make([]models.Department, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, models.Department{
			ID:        s.ID,
			Name:      s.Name,
			ShortName: s.ShortName,
			SortOrder: s.SortOrder,
		})
	}
	return out, nil
}
