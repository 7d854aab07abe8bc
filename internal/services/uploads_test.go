// uploads_test.go
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
	"bytes"
	"testing"

	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenXref points startxref at a bare xref keyword, which the parser
// panics on rather than reporting.
const brokenXref = "%PDF-1.4\nxref\n0 2\n0000000000 65535 f \n0000000009 00000 n \ntrailer << /Root 1 0 R /Size 2 >>\nstartxref\n9\n%%EOF"

func TestValidatePDF(t *testing.T) {
	const limit = 10 << 20
	valid := testutil.PDF(1)

	require.NoError(t, services.ValidatePDF(&services.Upload{ContentType: "application/pdf", Data: valid}, limit))

	cases := []struct {
		name   string
		upload *services.Upload
		max    int64
		rule   string
	}{
		{"missing", nil, limit, "required"},
		{"empty", &services.Upload{ContentType: "application/pdf"}, limit, "required"},
		{"wrong type", &services.Upload{ContentType: "image/png", Data: valid}, limit, "type"},
		{"too large", &services.Upload{ContentType: "application/pdf", Data: valid}, int64(len(valid) - 1), "size"},
		{"not a pdf", &services.Upload{ContentType: "application/pdf", Data: bytes.Repeat([]byte("x"), 200)}, limit, "format"},
		{"no pages", &services.Upload{ContentType: "application/pdf", Data: testutil.PDF(0)}, limit, "format"},
		{"broken xref", &services.Upload{ContentType: "application/pdf", Data: []byte(brokenXref)}, limit, "format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.ValidatePDF(tc.upload, tc.max)
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "file", verr.Field)
			assert.Equal(t, tc.rule, verr.Rule)
		})
	}
}
