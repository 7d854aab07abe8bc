// comments_test.go
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
	"time"

	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentSubmitUpdatesAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.signIn(t, "u1", "Rahim", false)
	n := f.addNote(t, "DSA", models.StatusApproved, "")

	for i, rating := range []int{4, 5} {
		_, err := f.comments.Submit(ctx, s, services.CommentInput{
			NoteID: n.ID, Text: "earlier comment " + string(rune('a'+i)), Rating: rating,
		})
		require.NoError(t, err)
	}
	before, err := f.store.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, before.CommentCount)

	c, err := f.comments.Submit(ctx, s, services.CommentInput{NoteID: n.ID, Text: "  Great  ", Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, "Great", c.Text)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "Rahim", c.UserName)
	assert.False(t, c.CreatedAt.IsZero())

	after, err := f.store.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, after.CommentCount)
	assert.InDelta(t, 4.0, after.Rating, 1e-9)

	list, err := f.comments.List(ctx, nil, n.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Great", list[0].Text)
}

func TestCommentSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.signIn(t, "u1", "Rahim", false)
	n := f.addNote(t, "DSA", models.StatusApproved, "")

	_, err := f.comments.Submit(ctx, nil, services.CommentInput{NoteID: n.ID, Text: "hi", Rating: 5})
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	for _, in := range []services.CommentInput{
		{NoteID: n.ID, Text: "   ", Rating: 5},
		{NoteID: n.ID, Text: "hi", Rating: 0},
		{NoteID: n.ID, Text: "hi", Rating: 6},
	} {
		_, err := f.comments.Submit(ctx, s, in)
		var verr *services.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.Zero(t, f.store.calls.Load())
}

func TestCommentDuplicateGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.signIn(t, "u1", "Rahim", false)
	n := f.addNote(t, "DSA", models.StatusApproved, "")
	in := services.CommentInput{NoteID: n.ID, Text: "Helpful", Rating: 5}

	_, err := f.comments.Submit(ctx, s, in)
	require.NoError(t, err)
	_, err = f.comments.Submit(ctx, s, in)
	assert.ErrorIs(t, err, services.ErrDuplicateSubmission)

	// a client key makes otherwise identical comments distinct
	in.IdempotencyKey = "k-1"
	_, err = f.comments.Submit(ctx, s, in)
	require.NoError(t, err)
	_, err = f.comments.Submit(ctx, s, in)
	assert.ErrorIs(t, err, services.ErrDuplicateSubmission)

	got, err := f.store.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.CommentCount)
}

func TestCommentFailureReleasesKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.signIn(t, "u1", "Rahim", false)
	n := f.addNote(t, "DSA", models.StatusApproved, "")
	in := services.CommentInput{NoteID: n.ID, Text: "Retry me", Rating: 4}

	f.store.broken.Store(true)
	_, err := f.comments.Submit(ctx, s, in)
	assert.ErrorIs(t, err, services.ErrStoreUnavailable)

	f.store.broken.Store(false)
	_, err = f.comments.Submit(ctx, s, in)
	assert.NoError(t, err)
}

func TestCommentOnMissingNote(t *testing.T) {
	f := newFixture(t)
	s := f.signIn(t, "u1", "Rahim", false)

	_, err := f.comments.Submit(context.Background(), s, services.CommentInput{NoteID: "missing", Text: "hi", Rating: 3})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCommentsOnPendingNoteStayHidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signIn(t, "owner", "Karim", false)
	stranger := f.signIn(t, "stranger", "Rahim", false)
	admin := f.signIn(t, "admin", "Admin", true)
	n := f.addNote(t, "Draft", models.StatusPending, "owner")

	_, err := f.comments.Submit(ctx, owner, services.CommentInput{NoteID: n.ID, Text: "my own note", Rating: 5})
	require.NoError(t, err)

	_, err = f.comments.Submit(ctx, stranger, services.CommentInput{NoteID: n.ID, Text: "sneaky", Rating: 1})
	assert.ErrorIs(t, err, services.ErrNotFound)

	for _, viewer := range []*services.Session{nil, stranger} {
		_, err = f.comments.List(ctx, services.ViewerOf(viewer), n.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
		_, err = f.comments.Watch(ctx, services.ViewerOf(viewer), n.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	}

	for _, viewer := range []*services.Session{owner, admin} {
		list, err := f.comments.List(ctx, services.ViewerOf(viewer), n.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}

	got, err := f.store.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.CommentCount)
	assert.InDelta(t, 5.0, got.Rating, 1e-9)
}

func TestCommentWatch(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := f.signIn(t, "u1", "Rahim", false)
	n := f.addNote(t, "DSA", models.StatusApproved, "")

	ch, err := f.comments.Watch(ctx, nil, n.ID)
	require.NoError(t, err)
	assert.Empty(t, storetest.Receive(t, ch))

	_, err = f.comments.Submit(ctx, s, services.CommentInput{NoteID: n.ID, Text: "live", Rating: 5})
	require.NoError(t, err)
	got := storetest.WaitFor(t, ch, func(list []models.Comment) bool { return len(list) == 1 })
	assert.Equal(t, "live", got[0].Text)

	cancel()
	storetest.WaitClosed(t, ch)
}

func TestMemoryGuardWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	g := services.NewMemoryGuard()
	g.Now = func() time.Time { return now }

	ok, err := g.Claim(ctx, "k", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = g.Claim(ctx, "k", 10*time.Second)
	assert.False(t, ok)

	now = now.Add(10 * time.Second)
	ok, _ = g.Claim(ctx, "k", 10*time.Second)
	assert.True(t, ok)

	require.NoError(t, g.Release(ctx, "k"))
	ok, _ = g.Claim(ctx, "k", 10*time.Second)
	assert.True(t, ok)
}
