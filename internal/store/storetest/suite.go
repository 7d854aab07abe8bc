// suite.go
//
// Store conformance suite
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

// Package storetest is a conformance suite run against every store.Store
// implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Timeout bounds every wait on a subscription
const Timeout = 5 * time.Second

// Run exercises st. The store must start empty.
func Run(t *testing.T, st store.Store) {
	t.Run("departments", func(t *testing.T) { testDepartments(t, st) })
	t.Run("notes", func(t *testing.T) { testNotes(t, st) })
	t.Run("comments", func(t *testing.T) { testComments(t, st) })
	t.Run("server timestamps", func(t *testing.T) { testServerTimestamps(t, st) })
	t.Run("profiles", func(t *testing.T) { testProfiles(t, st) })
	t.Run("delete cascades", func(t *testing.T) { testDeleteCascade(t, st) })
	t.Run("note subscription", func(t *testing.T) { testSubscribeNotes(t, st) })
	t.Run("comment subscription", func(t *testing.T) { testSubscribeComments(t, st) })
}

// NewNote builds a valid note for the given scope
func NewNote(title, dept string, semester int, status models.NoteStatus, owner string) *models.Note {
	n := &models.Note{
		Title:        title,
		Type:         models.NoteTypePDF,
		DepartmentID: dept,
		Semester:     semester,
		FileURL:      "https://files.example.com/" + title + ".pdf",
		UploadedBy:   "tester",
		Status:       status,
		Tags:         models.StringSet{},
	}
	if owner != "" {
		n.UserID = &owner
	}
	return n
}

// Receive waits for the next value on ch
func Receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return v
	case <-time.After(Timeout):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

// WaitFor receives until match accepts a value
func WaitFor[T any](t *testing.T, ch <-chan T, match func(T) bool) T {
	t.Helper()
	deadline := time.After(Timeout)
	for {
		select {
		case v, ok := <-ch:
			require.True(t, ok, "subscription closed")
			if match(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching snapshot")
		}
	}
}

// WaitClosed waits for ch to close
func WaitClosed[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	deadline := time.After(Timeout)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription did not close")
		}
	}
}

func testDepartments(t *testing.T, st store.Store) {
	ctx := context.Background()
	require.NoError(t, st.UpsertDepartment(ctx, models.Department{ID: "eee", Name: "Electrical", ShortName: "EEE", SortOrder: 2}))
	require.NoError(t, st.UpsertDepartment(ctx, models.Department{ID: "cse", Name: "Computer", ShortName: "CS", SortOrder: 1}))
	require.NoError(t, st.UpsertDepartment(ctx, models.Department{ID: "cse", Name: "Computer Science", ShortName: "CSE", SortOrder: 1}))

	depts, err := st.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.Equal(t, "cse", depts[0].ID)
	assert.Equal(t, "Computer Science", depts[0].Name)
	assert.Equal(t, "eee", depts[1].ID)
}

func testNotes(t *testing.T, st store.Store) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older := NewNote("older", "math", 1, models.StatusApproved, "u1")
	older.CreatedAt = base
	newer := NewNote("newer", "math", 1, models.StatusApproved, "u2")
	newer.CreatedAt = base.Add(time.Hour)
	newer.Tags = models.StringSet{"exam"}
	pending := NewNote("pending", "math", 1, models.StatusPending, "u1")
	pending.CreatedAt = base.Add(2 * time.Hour)
	other := NewNote("other", "math", 2, models.StatusApproved, "")
	other.CreatedAt = base

	for _, n := range []*models.Note{older, newer, pending, other} {
		require.NoError(t, st.CreateNote(ctx, n))
		require.NotEmpty(t, n.ID)
	}

	scope, err := st.QueryNotes(ctx, store.NoteFilter{DepartmentID: "math", Semester: 1, Status: models.StatusApproved})
	require.NoError(t, err)
	require.Len(t, scope, 2)
	assert.Equal(t, newer.ID, scope[0].ID)
	assert.Equal(t, older.ID, scope[1].ID)
	assert.Equal(t, models.StringSet{"exam"}, scope[0].Tags)

	mine, err := st.QueryNotes(ctx, store.NoteFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	byID, err := st.QueryNotes(ctx, store.NoteFilter{IDs: []string{older.ID, "missing-id", other.ID}})
	require.NoError(t, err)
	assert.Len(t, byID, 2)

	none, err := st.QueryNotes(ctx, store.NoteFilter{IDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = st.GetNote(ctx, "missing-id")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.ApproveNote(ctx, pending.ID))
	require.NoError(t, st.ApproveNote(ctx, pending.ID), "approve is idempotent")
	got, err := st.GetNote(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.ErrorIs(t, st.ApproveNote(ctx, "missing-id"), store.ErrNotFound)

	require.NoError(t, st.IncrementDownloads(ctx, older.ID))
	require.NoError(t, st.IncrementDownloads(ctx, older.ID))
	got, err = st.GetNote(ctx, older.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Downloads)
	assert.ErrorIs(t, st.IncrementDownloads(ctx, "missing-id"), store.ErrNotFound)
}

func testComments(t *testing.T, st store.Store) {
	ctx := context.Background()
	n := NewNote("commented", "phys", 3, models.StatusApproved, "u1")
	require.NoError(t, st.CreateNote(ctx, n))

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	first := &models.Comment{NoteID: n.ID, UserID: "u2", UserName: "B", Text: "good", Rating: 4, CreatedAt: base}
	second := &models.Comment{NoteID: n.ID, UserID: "u3", UserName: "C", Text: "meh", Rating: 2, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, st.AddComment(ctx, first))
	require.NoError(t, st.AddComment(ctx, second))
	assert.NotEmpty(t, first.ID)

	got, err := st.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.CommentCount)
	assert.InDelta(t, 3.0, got.Rating, 0.0001)

	list, err := st.ListComments(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "meh", list[0].Text)
	assert.Equal(t, "good", list[1].Text)

	err = st.AddComment(ctx, &models.Comment{NoteID: "missing-id", UserID: "u2", Text: "x", Rating: 3})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// testServerTimestamps checks that created records come back with the
// timestamp the store assigned.
func testServerTimestamps(t *testing.T, st store.Store) {
	ctx := context.Background()
	before := time.Now().Add(-time.Minute)

	n := NewNote("stamped", "chem", 1, models.StatusApproved, "")
	require.NoError(t, st.CreateNote(ctx, n))
	require.False(t, n.CreatedAt.IsZero())
	assert.True(t, n.CreatedAt.After(before))
	stored, err := st.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, stored.CreatedAt, n.CreatedAt, time.Second)

	c := &models.Comment{NoteID: n.ID, UserID: "u1", UserName: "A", Text: "stamped", Rating: 5}
	require.NoError(t, st.AddComment(ctx, c))
	require.NotEmpty(t, c.ID)
	require.False(t, c.CreatedAt.IsZero())
	assert.True(t, c.CreatedAt.After(before))
	assert.Equal(t, "stamped", c.Text)
}

func testProfiles(t *testing.T, st store.Store) {
	ctx := context.Background()

	_, err := st.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	p, err := st.EnsureProfile(ctx, models.UserProfile{UID: "p1", DisplayName: "First Name", Email: "p1@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, p.Role)
	assert.Empty(t, p.Bookmarks)

	again, err := st.EnsureProfile(ctx, models.UserProfile{UID: "p1", DisplayName: "Changed"})
	require.NoError(t, err)
	assert.Equal(t, "First Name", again.DisplayName, "profile is not synced after creation")

	marks, err := st.AddBookmark(ctx, "p1", "n1")
	require.NoError(t, err)
	marks, err = st.AddBookmark(ctx, "p1", "n1")
	require.NoError(t, err)
	assert.Equal(t, models.StringSet{"n1"}, marks)

	marks, err = st.AddBookmark(ctx, "p1", "n2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"n1", "n2"}, marks)

	marks, err = st.RemoveBookmark(ctx, "p1", "n1")
	require.NoError(t, err)
	assert.Equal(t, models.StringSet{"n2"}, marks)

	_, err = st.AddBookmark(ctx, "nobody", "n1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.SetRole(ctx, "p1", models.RoleAdmin))
	p, err = st.GetProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.ErrorIs(t, st.SetRole(ctx, "nobody", models.RoleAdmin), store.ErrNotFound)
}

func testDeleteCascade(t *testing.T, st store.Store) {
	ctx := context.Background()
	n := NewNote("doomed", "chem", 1, models.StatusApproved, "u1")
	require.NoError(t, st.CreateNote(ctx, n))
	require.NoError(t, st.AddComment(ctx, &models.Comment{NoteID: n.ID, UserID: "u2", Text: "bye", Rating: 5}))

	require.NoError(t, st.DeleteNote(ctx, n.ID))

	_, err := st.GetNote(ctx, n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	comments, err := st.ListComments(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.ErrorIs(t, st.DeleteNote(ctx, n.ID), store.ErrNotFound)
}

func testSubscribeNotes(t *testing.T, st store.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	filter := store.NoteFilter{DepartmentID: "bio", Semester: 4, Status: models.StatusApproved}
	feed, err := st.SubscribeNotes(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, Receive(t, feed))

	n := NewNote("cells", "bio", 4, models.StatusPending, "u1")
	require.NoError(t, st.CreateNote(context.Background(), n))
	require.NoError(t, st.ApproveNote(context.Background(), n.ID))

	snap := WaitFor(t, feed, func(ns []models.Note) bool { return len(ns) == 1 })
	assert.Equal(t, n.ID, snap[0].ID)

	require.NoError(t, st.IncrementDownloads(context.Background(), n.ID))
	WaitFor(t, feed, func(ns []models.Note) bool { return len(ns) == 1 && ns[0].Downloads == 1 })

	cancel()
	WaitClosed(t, feed)
}

func testSubscribeComments(t *testing.T, st store.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNote("threads", "bio", 5, models.StatusApproved, "u1")
	require.NoError(t, st.CreateNote(ctx, n))

	feed, err := st.SubscribeComments(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, Receive(t, feed))

	require.NoError(t, st.AddComment(context.Background(), &models.Comment{NoteID: n.ID, UserID: "u2", Text: "hi", Rating: 5}))
	snap := WaitFor(t, feed, func(cs []models.Comment) bool { return len(cs) == 1 })
	assert.Equal(t, "hi", snap[0].Text)

	cancel()
	WaitClosed(t, feed)
}
