// uploads.go
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
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/ledongthuc/pdf"
	storage "github.com/supabase-community/storage-go"
)

const pdfContentType = "application/pdf"

// Upload is a file received with a note submission
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ValidatePDF checks type, size and that the bytes parse as a PDF with pages.
func ValidatePDF(u *Upload, maxBytes int64) error {
	if u == nil || len(u.Data) == 0 {
		return invalid("file", "required", "Please select a PDF file")
	}
	if u.ContentType != pdfContentType {
		return invalid("file", "type", "Only PDF files are allowed")
	}
	if int64(len(u.Data)) > maxBytes {
		return invalid("file", "size", fmt.Sprintf("File size must be under %dMB", maxBytes>>20))
	}

	if !readablePDF(u.Data) {
		return invalid("file", "format", "File is not a readable PDF document")
	}
	return nil
}

// readablePDF reports whether data parses as a PDF with at least one page.
// The parser panics on some malformed cross-reference tables.
func readablePDF(data []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	return err == nil && r.NumPage() > 0
}

// AssetStore keeps uploaded files and returns their public URL
type AssetStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// SupabaseAssets stores files in a public Supabase Storage bucket
type SupabaseAssets struct {
	client  *storage.Client
	baseURL string
	bucket  string
}

// NewSupabaseAssets creates a client for baseURL
func NewSupabaseAssets(baseURL, key, bucket string) *SupabaseAssets {
	return &SupabaseAssets{
		client:  storage.NewClient(baseURL+"/storage/v1", key, nil),
		baseURL: baseURL,
		bucket:  bucket,
	}
}

func (a *SupabaseAssets) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	options := storage.FileOptions{
		ContentType: &contentType,
	}
	if _, err := a.client.UploadFile(a.bucket, name, body, options); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", a.baseURL, a.bucket, name), nil
}

// objectName is the bucket path for a note's PDF
func objectName(title string) string {
	name := slug.Make(title)
	if name == "" {
		name = "note"
	}
	return fmt.Sprintf("notes/%s-%s.pdf", uuid.NewString(), name)
}
