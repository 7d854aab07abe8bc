// string_set.go
//
// Persistent records for the notes service
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

package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringSet is an unordered set of strings persisted as a JSON array.
// Used for note tags and profile bookmarks.
type StringSet []string

// Contains reports whether v is a member of the set.
func (s StringSet) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Union returns the set with v added. The receiver is not modified.
func (s StringSet) Union(v string) StringSet {
	if s.Contains(v) {
		return s
	}
	out := make(StringSet, 0, len(s)+1)
	out = append(out, s...)
	return append(out, v)
}

// Remove returns the set without v. The receiver is not modified.
func (s StringSet) Remove(v string) StringSet {
	out := make(StringSet, 0, len(s))
	for _, item := range s {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// MarshalJSON renders a nil set as an empty array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Value implements driver.Valuer
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		s = StringSet{}
	}
	return datatypes.JSONSlice[string](s).Value()
}

// Scan implements sql.Scanner
func (s *StringSet) Scan(value interface{}) error {
	var js datatypes.JSONSlice[string]
	if value != nil {
		if err := js.Scan(value); err != nil {
			return err
		}
	}
	*s = StringSet(js)
	return nil
}

// GormDBDataType picks a JSON column type per driver.
// MSSQL has no json type.
func (StringSet) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "sqlite":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}
