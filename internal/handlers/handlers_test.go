// handlers_test.go
//
// HTTP handlers for the notes feed
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

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notesdb/internal/config"
	"github.com/localnerve/notesdb/internal/handlers"
	"github.com/localnerve/notesdb/internal/middleware"
	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/store"
	"github.com/localnerve/notesdb/internal/store/storetest"
	"github.com/localnerve/notesdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	studentCookie = "student-cookie"
	otherCookie   = "other-cookie"
	adminCookie   = "admin-cookie"
)

type testApp struct {
	app    *fiber.App
	store  *store.GormStore
	assets *testutil.MemoryAssets
	stop   context.CancelFunc
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	st := testutil.NewTestStore(t)
	log := zaptest.NewLogger(t)
	assets := testutil.NewMemoryAssets()

	_, err := st.EnsureProfile(ctx, models.UserProfile{UID: "a1", DisplayName: "Admin", Role: models.RoleAdmin, Bookmarks: models.StringSet{}})
	require.NoError(t, err)

	validator := testutil.StaticValidator{
		studentCookie: {UID: "u1", DisplayName: "Rahim", Email: "rahim@example.edu"},
		otherCookie:   {UID: "u2", DisplayName: "Karim", Email: "karim@example.edu"},
		adminCookie:   {UID: "a1", DisplayName: "Admin", Email: "admin@example.edu"},
	}

	base, stop := context.WithCancel(context.Background())
	t.Cleanup(stop)

	feeds := &services.Feeds{Store: st, Log: log, TrendingLimit: 3, MaxSemester: 12}
	interactions := &services.Interactions{
		Store: st, Assets: assets, Log: log,
		MaxSemester: 12, MaxUploadBytes: 1 << 20, DownloadTimeout: time.Second,
	}
	comments := &services.Comments{Store: st, Guard: services.NewMemoryGuard(), Window: 10 * time.Second, Log: log}
	profiles := &services.Profiles{Store: st, Log: log}
	streamer := &handlers.Streamer{Base: base, Heartbeat: time.Second, Log: log}
	cfg := &config.Config{DBType: "sqlite", AuthProvider: "firebase"}

	routes := &handlers.Routes{
		Session: middleware.Session(middleware.SessionConfig{
			Validator: validator, Profiles: profiles, Log: log,
		}),
		Notes:       &handlers.NotesHandler{Feeds: feeds, Interactions: interactions, Streamer: streamer, MaxUploadBytes: 1 << 20},
		Comments:    &handlers.CommentsHandler{Comments: comments, Streamer: streamer},
		Departments: &handlers.DepartmentsHandler{Feeds: feeds},
		Profile:     &handlers.ProfileHandler{Profiles: profiles},
		Admin:       &handlers.AdminHandler{Feeds: feeds, Interactions: interactions},
		Health:      &handlers.HealthHandler{Health: &services.Health{Config: cfg, Store: st, Log: log}},
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(log)})
	routes.Register(app.Group("/api"))
	app.Use(handlers.NotFound)

	return &testApp{app: app, store: st, assets: assets, stop: stop}
}

func (a *testApp) do(t *testing.T, method, path, cookie string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", "cookie_session="+cookie)
	}
	resp, err := a.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func (a *testApp) note(t *testing.T, title string, status models.NoteStatus, owner string) models.Note {
	t.Helper()
	n := storetest.NewNote(title, "cse", 1, status, owner)
	require.NoError(t, a.store.CreateNote(context.Background(), n))
	return *n
}

func TestScopeListing(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	n := storetest.NewNote("Data Structures", "cse", 1, models.StatusApproved, "")
	n.CourseCode = "CSE-101"
	n.Tags = models.StringSet{"dsa", "exam"}
	require.NoError(t, a.store.CreateNote(ctx, n))
	a.note(t, "Circuits", models.StatusApproved, "")
	a.note(t, "Draft", models.StatusPending, "u1")

	resp := a.do(t, "GET", "/api/departments/cse/semesters/1/notes", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var all handlers.ScopeResponse
	testutil.ParseJSON(t, resp, &all)
	assert.Len(t, all.Notes, 2)
	assert.Equal(t, []string{"dsa", "exam"}, all.Tags)
	assert.Equal(t, "1.0.0", resp.Header.Get("X-Api-Version"))

	resp = a.do(t, "GET", "/api/departments/cse/semesters/1/notes?q=cse-101&tag=DSA", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var filtered handlers.ScopeResponse
	testutil.ParseJSON(t, resp, &filtered)
	require.Len(t, filtered.Notes, 1)
	assert.Equal(t, n.ID, filtered.Notes[0].ID)
	assert.Equal(t, "dsa", filtered.SelectedTag)
	assert.Equal(t, "https://picsum.photos/seed/"+n.ID+"/600/400", filtered.Notes[0].ThumbnailURL)

	resp = a.do(t, "GET", "/api/departments/cse/semesters/99/notes", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, "validation", testutil.ErrorType(t, resp))

	resp = a.do(t, "GET", "/api/departments/empty/semesters/1/notes", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var empty map[string]interface{}
	testutil.ParseJSON(t, resp, &empty)
	assert.Equal(t, []interface{}{}, empty["tags"])
	assert.Equal(t, []interface{}{}, empty["notes"])
}

func TestScopeFeedStreamsSnapshots(t *testing.T) {
	a := newTestApp(t)
	a.note(t, "Live", models.StatusApproved, "")

	time.AfterFunc(300*time.Millisecond, a.stop)
	resp := a.do(t, "GET", "/api/departments/cse/semesters/1/feed", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "event: snapshot\ndata: ")
	assert.Contains(t, string(body), `"title":"Live"`)
}

func TestNoteVisibility(t *testing.T) {
	a := newTestApp(t)
	draft := a.note(t, "Draft", models.StatusPending, "u1")

	resp := a.do(t, "GET", "/api/notes/"+draft.ID, "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	resp = a.do(t, "GET", "/api/notes/"+draft.ID, otherCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	for _, cookie := range []string{studentCookie, adminCookie} {
		resp = a.do(t, "GET", "/api/notes/"+draft.ID, cookie, nil)
		testutil.AssertStatus(t, resp, fiber.StatusOK)
		var got handlers.NoteView
		testutil.ParseJSON(t, resp, &got)
		assert.Equal(t, draft.ID, got.ID)
	}

	// an unknown cookie is treated as anonymous
	resp = a.do(t, "GET", "/api/notes/"+draft.ID, "forged", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestDownloadRedirectsAndCounts(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	n := storetest.NewNote("Slides", "cse", 1, models.StatusApproved, "")
	n.FileURL = "https://res.cloudinary.com/demo/image/upload/v1/slides.pdf"
	require.NoError(t, a.store.CreateNote(ctx, n))

	resp := a.do(t, "GET", "/api/notes/"+n.ID+"/download", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusFound)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/fl_attachment/v1/slides.pdf", resp.Header.Get("Location"))

	assert.Eventually(t, func() bool {
		got, err := a.store.GetNote(ctx, n.ID)
		return err == nil && got.Downloads == 1
	}, 5*time.Second, 20*time.Millisecond)

	resp = a.do(t, "GET", "/api/notes/missing/download", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestTrending(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	for i, d := range []int64{3, 9, 1, 7} {
		n := storetest.NewNote(string(rune('a'+i)), "cse", 1, models.StatusApproved, "")
		n.Downloads = d
		require.NoError(t, a.store.CreateNote(ctx, n))
	}

	resp := a.do(t, "GET", "/api/notes/trending", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var top []handlers.NoteView
	testutil.ParseJSON(t, resp, &top)
	require.Len(t, top, 3)
	assert.EqualValues(t, 9, top[0].Downloads)
	assert.EqualValues(t, 7, top[1].Downloads)
	assert.EqualValues(t, 3, top[2].Downloads)
}

func TestSubmitVideoJSON(t *testing.T) {
	a := newTestApp(t)
	body := map[string]interface{}{
		"title":        "Graph Theory",
		"type":         "video",
		"departmentId": "cse",
		"semester":     "4",
		"tags":         "Graphs, DSA",
		"url":          "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10",
	}

	resp := a.do(t, "POST", "/api/notes", "", body)
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)

	resp = a.do(t, "POST", "/api/notes", studentCookie, body)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var got handlers.NoteView
	testutil.ParseJSON(t, resp, &got)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, 4, got.Semester)
	assert.Equal(t, models.StringSet{"graphs", "dsa"}, got.Tags)
	assert.Equal(t, "dQw4w9WgXcQ", got.VideoID)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", got.ThumbnailURL)

	body["url"] = "https://example.com/not-a-video"
	resp = a.do(t, "POST", "/api/notes", studentCookie, body)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func multipartBody(t *testing.T, fields map[string]string, fileType string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="notes.pdf"`)
		h.Set("Content-Type", fileType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSubmitPDFMultipart(t *testing.T) {
	a := newTestApp(t)
	fields := map[string]string{
		"title":        "Thermodynamics",
		"type":         "pdf",
		"departmentId": "eee",
		"semester":     "2",
		"tags":         "heat,exam",
	}

	send := func(fileType string, file []byte) *http.Response {
		body, contentType := multipartBody(t, fields, fileType, file)
		req := httptest.NewRequest("POST", "/api/notes", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Cookie", "cookie_session="+studentCookie)
		resp, err := a.app.Test(req, 5000)
		require.NoError(t, err)
		return resp
	}

	resp := send("application/pdf", testutil.PDF(1))
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var got handlers.NoteView
	testutil.ParseJSON(t, resp, &got)
	assert.True(t, strings.HasPrefix(got.FileURL, "https://assets.test/notes/"))
	assert.Len(t, a.assets.Objects, 1)

	resp = send("image/png", testutil.PDF(1))
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = send("application/pdf", []byte(strings.Repeat("not a pdf ", 20)))
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = send("application/pdf", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Len(t, a.assets.Objects, 1)
}

func TestDeleteStatusMapping(t *testing.T) {
	a := newTestApp(t)
	n := a.note(t, "Mine", models.StatusApproved, "u1")

	resp := a.do(t, "DELETE", "/api/notes/"+n.ID+"?confirm=true", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)

	resp = a.do(t, "DELETE", "/api/notes/"+n.ID+"?confirm=true", otherCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusForbidden)

	resp = a.do(t, "DELETE", "/api/notes/"+n.ID, studentCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusPreconditionRequired)
	assert.Equal(t, "confirmation", testutil.ErrorType(t, resp))

	_, err := a.store.GetNote(context.Background(), n.ID)
	require.NoError(t, err)

	resp = a.do(t, "DELETE", "/api/notes/"+n.ID+"?confirm=true", studentCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	_, err = a.store.GetNote(context.Background(), n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	resp = a.do(t, "DELETE", "/api/notes/"+n.ID+"?confirm=true", adminCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestBookmarkToggle(t *testing.T) {
	a := newTestApp(t)
	n := a.note(t, "Keep", models.StatusApproved, "")

	resp := a.do(t, "POST", "/api/notes/"+n.ID+"/bookmark", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)

	resp = a.do(t, "POST", "/api/notes/"+n.ID+"/bookmark", studentCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var got handlers.BookmarkResponse
	testutil.ParseJSON(t, resp, &got)
	assert.True(t, got.Bookmarked)

	resp = a.do(t, "GET", "/api/notes/"+n.ID, studentCookie, nil)
	var view handlers.NoteView
	testutil.ParseJSON(t, resp, &view)
	assert.True(t, view.Bookmarked)

	resp = a.do(t, "POST", "/api/notes/"+n.ID+"/bookmark", studentCookie, nil)
	testutil.ParseJSON(t, resp, &got)
	assert.False(t, got.Bookmarked)
}

func TestComments(t *testing.T) {
	a := newTestApp(t)
	n := a.note(t, "Discuss", models.StatusApproved, "")
	path := "/api/notes/" + n.ID + "/comments"

	resp := a.do(t, "POST", path, "", map[string]interface{}{"text": "hi", "rating": 5})
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)

	resp = a.do(t, "POST", path, studentCookie, map[string]interface{}{"text": "Clear and short", "rating": 5})
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var c models.Comment
	testutil.ParseJSON(t, resp, &c)
	assert.Equal(t, "Rahim", c.UserName)

	resp = a.do(t, "POST", path, studentCookie, map[string]interface{}{"text": "Clear and short", "rating": 5})
	testutil.AssertStatus(t, resp, fiber.StatusConflict)
	assert.Equal(t, "duplicate", testutil.ErrorType(t, resp))

	resp = a.do(t, "POST", path, otherCookie, map[string]interface{}{"text": "Meh", "rating": "9"})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = a.do(t, "POST", path, otherCookie, map[string]interface{}{"text": "Good", "rating": "3"})
	testutil.AssertStatus(t, resp, fiber.StatusCreated)

	resp = a.do(t, "POST", "/api/notes/missing/comments", otherCookie, map[string]interface{}{"text": "?", "rating": 3})
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	resp = a.do(t, "GET", path, "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var list []models.Comment
	testutil.ParseJSON(t, resp, &list)
	assert.Len(t, list, 2)

	got, err := a.store.GetNote(context.Background(), n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.CommentCount)
	assert.InDelta(t, 4.0, got.Rating, 1e-9)
}

func TestCommentsOnPendingNote(t *testing.T) {
	a := newTestApp(t)
	draft := a.note(t, "Draft", models.StatusPending, "u1")
	path := "/api/notes/" + draft.ID + "/comments"

	resp := a.do(t, "POST", path, otherCookie, map[string]interface{}{"text": "sneaky", "rating": 1})
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	for _, cookie := range []string{"", otherCookie} {
		resp = a.do(t, "GET", path, cookie, nil)
		testutil.AssertStatus(t, resp, fiber.StatusNotFound)
		resp = a.do(t, "GET", path+"/feed", cookie, nil)
		testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	}

	resp = a.do(t, "POST", "/api/notes/"+draft.ID+"/bookmark", otherCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	resp = a.do(t, "POST", path, studentCookie, map[string]interface{}{"text": "note to self", "rating": 4})
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	resp = a.do(t, "GET", path, adminCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	got, err := a.store.GetNote(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.CommentCount)
	assert.InDelta(t, 4.0, got.Rating, 1e-9)
}

func TestAdminRoutes(t *testing.T) {
	a := newTestApp(t)
	pending := a.note(t, "Awaiting", models.StatusPending, "u1")
	a.note(t, "Live", models.StatusApproved, "")

	resp := a.do(t, "GET", "/api/admin/notes", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)
	resp = a.do(t, "GET", "/api/admin/notes", studentCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusForbidden)

	resp = a.do(t, "GET", "/api/admin/notes?q=await", adminCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var dash handlers.AdminResponse
	testutil.ParseJSON(t, resp, &dash)
	require.Len(t, dash.Notes, 1)
	assert.Equal(t, 2, dash.Stats.Total)
	assert.Equal(t, 1, dash.Stats.Pending)

	resp = a.do(t, "POST", "/api/admin/notes/"+pending.ID+"/approve", studentCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusForbidden)
	resp = a.do(t, "POST", "/api/admin/notes/"+pending.ID+"/approve", adminCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	got, err := a.store.GetNote(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)

	video := map[string]interface{}{
		"title":        "Lecture 1",
		"url":          "https://youtu.be/dQw4w9WgXcQ",
		"departmentId": "cse",
		"semester":     1,
		"tags":         []string{"intro"},
	}
	resp = a.do(t, "POST", "/api/admin/videos", adminCookie, video)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)
	var v handlers.NoteView
	testutil.ParseJSON(t, resp, &v)
	assert.Equal(t, models.StatusApproved, v.Status)
	assert.Nil(t, v.UserID)
	assert.Equal(t, "Added directly by Admin", v.Description)

	video["url"] = "https://youtu.be/short"
	resp = a.do(t, "POST", "/api/admin/videos", adminCookie, video)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestProfileOverview(t *testing.T) {
	a := newTestApp(t)
	mine := a.note(t, "Mine", models.StatusPending, "u1")

	resp := a.do(t, "GET", "/api/profile", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)

	resp = a.do(t, "GET", "/api/profile", studentCookie, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var got handlers.ProfileResponse
	testutil.ParseJSON(t, resp, &got)
	assert.Equal(t, "u1", got.Profile.UID)
	assert.Equal(t, models.RoleStudent, got.Profile.Role)
	require.Len(t, got.Uploads, 1)
	assert.Equal(t, mine.ID, got.Uploads[0].ID)
	assert.Empty(t, got.Bookmarks)
}

func TestDepartmentsAndHealth(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.store.UpsertDepartment(ctx, models.Department{ID: "cse", Name: "Computer Science", ShortName: "CSE"}))
	require.NoError(t, a.store.UpsertDepartment(ctx, models.Department{ID: "civil", Name: "Civil Engineering", ShortName: "CE"}))

	resp := a.do(t, "GET", "/api/departments?q=civil", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var depts []models.Department
	testutil.ParseJSON(t, resp, &depts)
	require.Len(t, depts, 1)
	assert.Equal(t, "civil", depts[0].ID)

	resp = a.do(t, "GET", "/api/health", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var health services.HealthCheckResult
	testutil.ParseJSON(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)

	resp = a.do(t, "GET", "/api/nope", "", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}
