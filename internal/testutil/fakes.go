// fakes.go
//
// Shared test fixtures for the notes service
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

package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/localnerve/notesdb/internal/services"
)

// StaticValidator resolves fixed cookies or bearer tokens to identities
type StaticValidator map[string]services.Identity

func (v StaticValidator) Validate(ctx context.Context, creds services.Credentials) (*services.Identity, error) {
	for _, key := range []string{creds.Cookie, creds.BearerToken} {
		if id, ok := v[key]; ok && key != "" {
			return &id, nil
		}
	}
	return nil, services.ErrUnauthenticated
}

// MemoryAssets is an in-memory services.AssetStore
type MemoryAssets struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

// NewMemoryAssets creates an empty asset store
func NewMemoryAssets() *MemoryAssets {
	return &MemoryAssets{Objects: make(map[string][]byte)}
}

func (a *MemoryAssets) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	if a.Err != nil {
		return "", a.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Objects[name] = data
	return "https://assets.test/" + name, nil
}

// PDF builds a small valid PDF document with the given number of blank pages
func PDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}
