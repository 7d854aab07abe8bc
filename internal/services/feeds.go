// feeds.go
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
	"strings"

	"github.com/localnerve/notesdb/internal/metrics"
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/localnerve/notesdb/internal/store"
	"go.uber.org/zap"
)

// Feeds serves the read side of the note feed
type Feeds struct {
	Store         store.Store
	Log           *zap.Logger
	TrendingLimit int
	MaxSemester   int
}

// ScopeQuery addresses one department/semester listing
type ScopeQuery struct {
	DepartmentID string
	Semester     int
	Search       string
	Tag          string
}

// AdminView is the moderation dashboard
type AdminView struct {
	Notes []models.Note `json:"notes"`
	Stats notes.Stats   `json:"stats"`
}

func (f *Feeds) validateScope(q ScopeQuery) error {
	if strings.TrimSpace(q.DepartmentID) == "" {
		return invalid("departmentId", "required", "Department is required")
	}
	return validateSemester(q.Semester, f.MaxSemester)
}

func (f *Feeds) scopeFilter(q ScopeQuery) store.NoteFilter {
	return store.NoteFilter{
		DepartmentID: q.DepartmentID,
		Semester:     q.Semester,
		Status:       models.StatusApproved,
	}
}

// Scope returns the filtered, ordered notes of one scope and its tag options
func (f *Feeds) Scope(ctx context.Context, viewer *notes.Viewer, q ScopeQuery) (notes.ScopeView, error) {
	if err := f.validateScope(q); err != nil {
		return notes.ScopeView{}, err
	}
	raw, err := f.Store.QueryNotes(ctx, f.scopeFilter(q))
	if err != nil {
		return notes.ScopeView{}, storeFailure(f.Log, "scope", err)
	}
	return notes.BuildScope(f.normalize(raw), viewer, q.Search, q.Tag), nil
}

// WatchScope emits a new ScopeView for every store snapshot until ctx is done
func (f *Feeds) WatchScope(ctx context.Context, viewer *notes.Viewer, q ScopeQuery) (<-chan notes.ScopeView, error) {
	if err := f.validateScope(q); err != nil {
		return nil, err
	}
	snapshots, err := f.Store.SubscribeNotes(ctx, f.scopeFilter(q))
	if err != nil {
		return nil, storeFailure(f.Log, "watch_scope", err)
	}

	views := make(chan notes.ScopeView)
	go func() {
		defer close(views)
		metrics.LiveFeeds.Inc()
		defer metrics.LiveFeeds.Dec()

		for raw := range snapshots {
			view := notes.BuildScope(f.normalize(raw), viewer, q.Search, q.Tag)
			select {
			case views <- view:
			case <-ctx.Done():
				return
			}
		}
	}()
	return views, nil
}

// Trending returns the most downloaded approved notes
func (f *Feeds) Trending(ctx context.Context) ([]models.Note, error) {
	raw, err := f.Store.QueryNotes(ctx, store.NoteFilter{Status: models.StatusApproved})
	if err != nil {
		return nil, storeFailure(f.Log, "trending", err)
	}
	return notes.TopByPopularity(f.normalize(raw), f.TrendingLimit), nil
}

// Note returns a single note if the viewer may see it. Hidden notes are
// reported as not found.
func (f *Feeds) Note(ctx context.Context, viewer *notes.Viewer, id string) (models.Note, error) {
	return visibleNote(ctx, f.Store, f.Log, viewer, id)
}

// visibleNote loads a note for viewer. Missing, malformed and hidden notes
// all report ErrNotFound so callers cannot probe for pending notes.
func visibleNote(ctx context.Context, st store.Store, log *zap.Logger, viewer *notes.Viewer, id string) (models.Note, error) {
	raw, err := st.GetNote(ctx, id)
	if err != nil {
		return models.Note{}, storeFailure(log, "get_note", err)
	}
	n, err := notes.Normalize(raw)
	if err != nil {
		log.Warn("dropping malformed note", zap.String("id", id), zap.Error(err))
		return models.Note{}, ErrNotFound
	}
	if !notes.CanSee(viewer, &n) {
		return models.Note{}, ErrNotFound
	}
	return n, nil
}

// Admin returns every note, optionally searched, with dashboard counts
// computed over the whole collection.
func (f *Feeds) Admin(ctx context.Context, viewer *notes.Viewer, search string) (AdminView, error) {
	if !notes.CanModerate(viewer) {
		return AdminView{}, ErrUnauthorized
	}
	raw, err := f.Store.QueryNotes(ctx, store.NoteFilter{})
	if err != nil {
		return AdminView{}, storeFailure(f.Log, "admin_notes", err)
	}
	all := notes.SortByRecency(f.normalize(raw))
	return AdminView{
		Notes: notes.AdminSearch(all, search),
		Stats: notes.ComputeStats(all),
	}, nil
}

// Departments lists departments matching text
func (f *Feeds) Departments(ctx context.Context, text string) ([]models.Department, error) {
	depts, err := f.Store.ListDepartments(ctx)
	if err != nil {
		return nil, storeFailure(f.Log, "departments", err)
	}
	return notes.FilterDepartments(depts, text), nil
}

func (f *Feeds) normalize(raw []models.Note) []models.Note {
	return normalizeLogged(f.Log, raw)
}

func normalizeLogged(log *zap.Logger, raw []models.Note) []models.Note {
	out, errs := notes.NormalizeAll(raw)
	if len(errs) > 0 {
		log.Warn("dropped malformed notes", zap.Int("count", len(errs)), zap.Errors("errors", errs))
	}
	return out
}

func validateSemester(semester, max int) error {
	if semester < 1 || semester > max {
		return invalid("semester", "range", "Semester is out of range")
	}
	return nil
}
