// types_test.go
//
// Shared wire types for the notes service
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

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagList(t *testing.T) {
	var body struct {
		Tags TagList `json:"tags"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"tags":["DSA","Exam"]}`), &body))
	assert.Equal(t, TagList{"DSA", "Exam"}, body.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":"dsa, exam"}`), &body))
	assert.Equal(t, TagList{"dsa", " exam"}, body.Tags)
	assert.Equal(t, "dsa, exam", body.Tags.String())

	assert.Error(t, json.Unmarshal([]byte(`{"tags":7}`), &body))
}

func TestFlexInt(t *testing.T) {
	var body struct {
		Semester FlexInt `json:"semester"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"semester":3}`), &body))
	assert.Equal(t, 3, body.Semester.Int())

	require.NoError(t, json.Unmarshal([]byte(`{"semester":" 5"}`), &body))
	assert.Equal(t, 5, body.Semester.Int())

	assert.Error(t, json.Unmarshal([]byte(`{"semester":"fifth"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"semester":true}`), &body))
}

func TestCustomError(t *testing.T) {
	err := &CustomError{Code: 404, Message: "Note not found", Type: "notFound"}
	assert.Equal(t, "404: Note not found [type: notFound]", err.Error())
}
