// interactions.go
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
	"strings"
	"time"

	"github.com/localnerve/notesdb/internal/metrics"
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/store"
	"go.uber.org/zap"
)

const directVideoDescription = "Added directly by Admin"

// Interactions performs viewer-initiated mutations
type Interactions struct {
	Store           store.Store
	Assets          AssetStore
	Log             *zap.Logger
	MaxSemester     int
	MaxUploadBytes  int64
	DownloadTimeout time.Duration
}

// VideoInput is an admin-seeded video note
type VideoInput struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	DepartmentID string `json:"departmentId"`
	Semester     int    `json:"semester"`
	CourseCode   string `json:"courseCode"`
	Description  string `json:"description"`
	Tags         string `json:"tags"`
}

// SubmitInput is a student submission
type SubmitInput struct {
	Title        string          `json:"title"`
	Type         models.NoteType `json:"type"`
	DepartmentID string          `json:"departmentId"`
	Semester     int             `json:"semester"`
	CourseCode   string          `json:"courseCode"`
	Description  string          `json:"description"`
	Tags         string          `json:"tags"`
	URL          string          `json:"url"`
}

// ToggleBookmark flips the bookmark for noteID and returns the new value.
// The session overlay shows the new value while the write is in flight and
// falls back to the confirmed value if it fails.
func (i *Interactions) ToggleBookmark(ctx context.Context, s *Session, noteID string) (bool, error) {
	if s == nil {
		return false, ErrUnauthenticated
	}

	// Removing is always allowed so bookmarks of deleted notes can be cleared.
	if !s.Bookmarks.Bookmarked(noteID) {
		if _, err := visibleNote(ctx, i.Store, i.Log, &s.Viewer, noteID); err != nil {
			return false, err
		}
	}

	want := s.Bookmarks.Begin(noteID)
	var (
		confirmed models.StringSet
		err       error
	)
	if want {
		confirmed, err = i.Store.AddBookmark(ctx, s.Viewer.ID, noteID)
	} else {
		confirmed, err = i.Store.RemoveBookmark(ctx, s.Viewer.ID, noteID)
	}
	if err != nil {
		err = storeFailure(i.Log, "bookmark", err)
		s.Bookmarks.Fail(noteID, err)
		return s.Bookmarks.Bookmarked(noteID), err
	}

	s.Bookmarks.Commit(noteID)
	s.Bookmarks.Reconcile(confirmed)
	s.Profile.Bookmarks = confirmed
	return want, nil
}

// RecordDownload adds exactly one to the note's download count. Failures are
// logged and counted, never returned.
func (i *Interactions) RecordDownload(ctx context.Context, noteID string) {
	if err := i.Store.IncrementDownloads(ctx, noteID); err != nil {
		metrics.Downloads.WithLabelValues("failed").Inc()
		i.Log.Warn("failed to record download", zap.String("note", noteID), zap.Error(err))
		return
	}
	metrics.Downloads.WithLabelValues("recorded").Inc()
}

// RecordDownloadAsync records the download without holding up the caller
func (i *Interactions) RecordDownloadAsync(noteID string) {
	timeout := i.DownloadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		i.RecordDownload(ctx, noteID)
	}()
}

// Approve publishes a pending note
func (i *Interactions) Approve(ctx context.Context, s *Session, noteID string) error {
	if s == nil {
		return ErrUnauthenticated
	}
	if !notes.CanModerate(&s.Viewer) {
		return ErrUnauthorized
	}
	if err := i.Store.ApproveNote(ctx, noteID); err != nil {
		return storeFailure(i.Log, "approve", err)
	}
	metrics.Moderation.WithLabelValues("approve").Inc()
	i.Log.Info("note approved", zap.String("note", noteID), zap.String("by", s.Viewer.ID))
	return nil
}

// DeleteNote removes a note and its comments. The caller must own the note
// or be an admin, and must have confirmed.
func (i *Interactions) DeleteNote(ctx context.Context, s *Session, noteID string, confirmed bool) error {
	if s == nil {
		return ErrUnauthenticated
	}
	n, err := i.Store.GetNote(ctx, noteID)
	if err != nil {
		return storeFailure(i.Log, "get_note", err)
	}
	if !notes.CanDelete(&s.Viewer, &n) {
		return ErrUnauthorized
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := i.Store.DeleteNote(ctx, noteID); err != nil {
		return storeFailure(i.Log, "delete", err)
	}
	metrics.Moderation.WithLabelValues("delete").Inc()
	i.Log.Info("note deleted", zap.String("note", noteID), zap.String("by", s.Viewer.ID))
	return nil
}

// AddVideoDirect creates an approved video note on behalf of an admin
func (i *Interactions) AddVideoDirect(ctx context.Context, s *Session, in VideoInput) (models.Note, error) {
	if s == nil {
		return models.Note{}, ErrUnauthenticated
	}
	if !notes.CanModerate(&s.Viewer) {
		return models.Note{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Note{}, invalid("title", "required", "Title is required")
	}
	if _, ok := notes.ExtractVideoID(in.URL); !ok {
		return models.Note{}, invalid("url", "video", "Invalid YouTube URL")
	}
	if strings.TrimSpace(in.DepartmentID) == "" {
		return models.Note{}, invalid("departmentId", "required", "Department is required")
	}
	if err := validateSemester(in.Semester, i.MaxSemester); err != nil {
		return models.Note{}, err
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = directVideoDescription
	}
	n := models.Note{
		Title:        in.Title,
		Type:         models.NoteTypeVideo,
		DepartmentID: in.DepartmentID,
		Semester:     in.Semester,
		CourseCode:   in.CourseCode,
		Description:  description,
		Tags:         notes.ParseTags(in.Tags),
		FileURL:      strings.TrimSpace(in.URL),
		UploadedBy:   s.Viewer.Name,
		Status:       models.StatusApproved,
	}
	created, err := i.create(ctx, n)
	if err != nil {
		return models.Note{}, err
	}
	metrics.Moderation.WithLabelValues("add_video").Inc()
	return created, nil
}

// SubmitNote creates a pending note from a student. PDF submissions carry
// an upload that is validated and stored before the note is written.
func (i *Interactions) SubmitNote(ctx context.Context, s *Session, in SubmitInput, upload *Upload) (models.Note, error) {
	if s == nil {
		return models.Note{}, ErrUnauthenticated
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Note{}, invalid("title", "required", "Title is required")
	}
	if strings.TrimSpace(in.DepartmentID) == "" {
		return models.Note{}, invalid("departmentId", "required", "Department is required")
	}
	if err := validateSemester(in.Semester, i.MaxSemester); err != nil {
		return models.Note{}, err
	}

	var fileURL string
	switch in.Type {
	case models.NoteTypePDF:
		if err := ValidatePDF(upload, i.MaxUploadBytes); err != nil {
			return models.Note{}, err
		}
		if i.Assets == nil {
			return models.Note{}, ErrUploadsDisabled
		}
		url, err := i.Assets.Put(ctx, objectName(in.Title), pdfContentType, bytes.NewReader(upload.Data))
		if err != nil {
			i.Log.Error("failed to store upload", zap.String("file", upload.Filename), zap.Error(err))
			return models.Note{}, ErrStoreUnavailable
		}
		fileURL = url
	case models.NoteTypeVideo:
		if _, ok := notes.ExtractVideoID(in.URL); !ok {
			return models.Note{}, invalid("url", "video", "Invalid YouTube URL")
		}
		fileURL = strings.TrimSpace(in.URL)
	default:
		return models.Note{}, invalid("type", "enum", "Type must be pdf or video")
	}

	uid := s.Viewer.ID
	n := models.Note{
		Title:        in.Title,
		Type:         in.Type,
		DepartmentID: in.DepartmentID,
		Semester:     in.Semester,
		CourseCode:   in.CourseCode,
		Description:  in.Description,
		Tags:         notes.ParseTags(in.Tags),
		FileURL:      fileURL,
		UploadedBy:   s.Viewer.Name,
		UserID:       &uid,
		Status:       models.StatusPending,
	}
	return i.create(ctx, n)
}

func (i *Interactions) create(ctx context.Context, n models.Note) (models.Note, error) {
	n, err := notes.Normalize(n)
	if err != nil {
		return models.Note{}, invalid("note", "shape", err.Error())
	}
	if err := i.Store.CreateNote(ctx, &n); err != nil {
		return models.Note{}, storeFailure(i.Log, "create_note", err)
	}
	i.Log.Info("note created",
		zap.String("note", n.ID),
		zap.String("type", string(n.Type)),
		zap.String("status", string(n.Status)))
	return n, nil
}
