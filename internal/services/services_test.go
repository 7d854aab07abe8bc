// services_test.go
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
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/store"
	"github.com/localnerve/notesdb/internal/store/storetest"
	"github.com/localnerve/notesdb/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const (
	storeTimeout = 5 * time.Second
	pollInterval = 20 * time.Millisecond
)

var errUnavailable = errors.New("connection refused")

// faultyStore counts mutating calls and fails them while broken is set
type faultyStore struct {
	store.Store
	broken atomic.Bool
	calls  atomic.Int32
}

func (f *faultyStore) check() error {
	f.calls.Add(1)
	if f.broken.Load() {
		return errUnavailable
	}
	return nil
}

func (f *faultyStore) AddBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.Store.AddBookmark(ctx, uid, noteID)
}

func (f *faultyStore) RemoveBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.Store.RemoveBookmark(ctx, uid, noteID)
}

func (f *faultyStore) AddComment(ctx context.Context, c *models.Comment) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Store.AddComment(ctx, c)
}

func (f *faultyStore) IncrementDownloads(ctx context.Context, id string) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Store.IncrementDownloads(ctx, id)
}

func (f *faultyStore) ApproveNote(ctx context.Context, id string) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Store.ApproveNote(ctx, id)
}

func (f *faultyStore) DeleteNote(ctx context.Context, id string) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Store.DeleteNote(ctx, id)
}

func (f *faultyStore) QueryNotes(ctx context.Context, filter store.NoteFilter) ([]models.Note, error) {
	if f.broken.Load() {
		return nil, errUnavailable
	}
	return f.Store.QueryNotes(ctx, filter)
}

func (f *faultyStore) Ping(ctx context.Context) error {
	if f.broken.Load() {
		return errUnavailable
	}
	return f.Store.Ping(ctx)
}

type fixture struct {
	store        *faultyStore
	log          *zap.Logger
	assets       *testutil.MemoryAssets
	feeds        *services.Feeds
	interactions *services.Interactions
	comments     *services.Comments
	profiles     *services.Profiles
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := &faultyStore{Store: testutil.NewTestStore(t)}
	log := zaptest.NewLogger(t)
	assets := testutil.NewMemoryAssets()
	return &fixture{
		store:  st,
		log:    log,
		assets: assets,
		feeds: &services.Feeds{
			Store: st, Log: log, TrendingLimit: 3, MaxSemester: 12,
		},
		interactions: &services.Interactions{
			Store: st, Assets: assets, Log: log,
			MaxSemester: 12, MaxUploadBytes: 10 << 20, DownloadTimeout: time.Second,
		},
		comments: &services.Comments{
			Store: st, Guard: services.NewMemoryGuard(), Window: 10 * time.Second, Log: log,
		},
		profiles: &services.Profiles{Store: st, Log: log},
	}
}

// signIn creates a session, promoting the profile to admin when asked
func (f *fixture) signIn(t *testing.T, uid, name string, admin bool) *services.Session {
	t.Helper()
	ctx := context.Background()
	s, err := f.profiles.Ensure(ctx, services.Identity{UID: uid, DisplayName: name, Email: uid + "@example.edu"})
	require.NoError(t, err)
	if !admin {
		return s
	}
	require.NoError(t, f.store.SetRole(ctx, uid, models.RoleAdmin))
	p, err := f.store.GetProfile(ctx, uid)
	require.NoError(t, err)
	return services.NewSession(p)
}

func (f *fixture) addNote(t *testing.T, title string, status models.NoteStatus, owner string) models.Note {
	t.Helper()
	n := storetest.NewNote(title, "cse", 1, status, owner)
	require.NoError(t, f.store.CreateNote(context.Background(), n))
	return *n
}
