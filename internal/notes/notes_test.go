// notes_test.go
//
// Note feed view-model
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

package notes_test

import (
	"testing"
	"time"

	"github.com/localnerve/notesdb/internal/models"
	"github.com/localnerve/notesdb/internal/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func note(id string, status models.NoteStatus, owner string) models.Note {
	n := models.Note{ID: id, Title: "Note " + id, Type: models.NoteTypePDF, Status: status}
	if owner != "" {
		n.UserID = ptr(owner)
	}
	return n
}

func ids(ns []models.Note) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.ID)
	}
	return out
}

func TestNormalize(t *testing.T) {
	n, err := notes.Normalize(models.Note{
		ID:        "a",
		Title:     "  Data Structures ",
		Type:      models.NoteTypeVideo,
		Tags:      models.StringSet{" Trees", "trees", "", "GRAPHS "},
		UserID:    ptr(""),
		Downloads: -4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Data Structures", n.Title)
	assert.Equal(t, models.StringSet{"trees", "graphs"}, n.Tags)
	assert.Equal(t, models.StatusPending, n.Status)
	assert.Nil(t, n.UserID)
	assert.Zero(t, n.Downloads)
}

func TestNormalizeRejects(t *testing.T) {
	cases := map[string]models.Note{
		"empty title":    {ID: "a", Title: "  ", Type: models.NoteTypePDF},
		"unknown type":   {ID: "b", Title: "x", Type: "audio"},
		"unknown status": {ID: "c", Title: "x", Type: models.NoteTypePDF, Status: "rejected"},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := notes.Normalize(raw)
			var nerr *notes.NormalizeError
			assert.ErrorAs(t, err, &nerr)
		})
	}
}

func TestNormalizeAllDropsBadRecords(t *testing.T) {
	out, dropped := notes.NormalizeAll([]models.Note{
		note("a", models.StatusApproved, ""),
		{ID: "b", Type: models.NoteTypePDF},
		note("c", "", "u1"),
	})
	assert.Equal(t, []string{"a", "c"}, ids(out))
	assert.Len(t, dropped, 1)
}

func TestNilTagsBecomeEmpty(t *testing.T) {
	n, err := notes.Normalize(note("a", models.StatusApproved, ""))
	require.NoError(t, err)
	assert.NotNil(t, n.Tags)
	assert.Empty(t, n.Tags)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, models.StringSet{"algorithms", "midterm"}, notes.ParseTags(" Algorithms, ,MIDTERM,algorithms,"))
	assert.Empty(t, notes.ParseTags(""))
}

func TestVisible(t *testing.T) {
	all := []models.Note{
		note("approved", models.StatusApproved, "u2"),
		note("mine", models.StatusPending, "u1"),
		note("theirs", models.StatusPending, "u2"),
		note("seeded", models.StatusPending, ""),
	}

	t.Run("admin sees everything", func(t *testing.T) {
		assert.Equal(t, ids(all), ids(notes.Visible(all, &notes.Viewer{ID: "admin", IsAdmin: true})))
	})
	t.Run("owner sees own pending", func(t *testing.T) {
		assert.Equal(t, []string{"approved", "mine"}, ids(notes.Visible(all, &notes.Viewer{ID: "u1"})))
	})
	t.Run("anonymous sees approved only", func(t *testing.T) {
		assert.Equal(t, []string{"approved"}, ids(notes.Visible(all, nil)))
	})
	t.Run("empty viewer id never owns ownerless notes", func(t *testing.T) {
		assert.Equal(t, []string{"approved"}, ids(notes.Visible(all, &notes.Viewer{})))
	})
}

func TestPermissions(t *testing.T) {
	n := note("x", models.StatusPending, "u1")
	assert.True(t, notes.CanDelete(&notes.Viewer{ID: "u1"}, &n))
	assert.True(t, notes.CanDelete(&notes.Viewer{ID: "root", IsAdmin: true}, &n))
	assert.False(t, notes.CanDelete(&notes.Viewer{ID: "u2"}, &n))
	assert.False(t, notes.CanDelete(nil, &n))
	assert.True(t, notes.CanModerate(&notes.Viewer{IsAdmin: true}))
	assert.False(t, notes.CanModerate(&notes.Viewer{ID: "u1"}))
	assert.False(t, notes.CanModerate(nil))
}

func catalog() []models.Note {
	a := note("a", models.StatusApproved, "")
	a.Title = "Intro to Circuits"
	a.CourseCode = "EEE-101"
	a.Tags = models.StringSet{"circuits", "lab"}
	b := note("b", models.StatusApproved, "")
	b.Title = "Programming Basics"
	b.CourseCode = "CSE-101"
	b.Tags = models.StringSet{"lab"}
	c := note("c", models.StatusApproved, "")
	c.Title = "Discrete Math"
	c.Description = "Prerequisite for cse-101 and CSE-102"
	d := note("d", models.StatusApproved, "")
	d.Title = "Compilers"
	return []models.Note{a, b, c, d}
}

func TestDistinctTags(t *testing.T) {
	assert.Equal(t, []string{"circuits", "lab"}, notes.DistinctTags(catalog()))
	assert.Empty(t, notes.DistinctTags(nil))
}

func TestFilter(t *testing.T) {
	all := catalog()

	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, all, notes.Filter(all, "", ""))
	})
	t.Run("course code across fields", func(t *testing.T) {
		assert.Equal(t, []string{"b", "c"}, ids(notes.Filter(all, "CSE-101", "")))
	})
	t.Run("tag only", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, ids(notes.Filter(all, "", "lab")))
	})
	t.Run("search and tag combine", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, ids(notes.Filter(all, "circuits", "lab")))
		assert.Empty(t, notes.Filter(all, "compilers", "lab"))
	})
	t.Run("tag is case-insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, ids(notes.Filter(all, "", " Lab ")))
		assert.Equal(t, "lab", notes.BuildScope(all, nil, "", "LAB").SelectedTag)
	})
}

func TestToggleTag(t *testing.T) {
	assert.Equal(t, "lab", notes.ToggleTag("", "lab"))
	assert.Equal(t, "", notes.ToggleTag("lab", "lab"))
	assert.Equal(t, "exam", notes.ToggleTag("lab", "exam"))
}

func TestSortByRecency(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	undated := note("undated", models.StatusApproved, "")
	old := note("old", models.StatusApproved, "")
	old.CreatedAt = base
	recent := note("recent", models.StatusApproved, "")
	recent.CreatedAt = base.Add(time.Hour)
	twin := note("twin", models.StatusApproved, "")
	twin.CreatedAt = base

	in := []models.Note{undated, old, recent, twin}
	assert.Equal(t, []string{"recent", "old", "twin", "undated"}, ids(notes.SortByRecency(in)))
	assert.Equal(t, "undated", in[0].ID, "input must not be reordered")
}

func TestSortByRecencySubSecond(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	first := note("first", models.StatusApproved, "")
	first.CreatedAt = base.Add(100 * time.Millisecond)
	second := note("second", models.StatusApproved, "")
	second.CreatedAt = base.Add(900 * time.Millisecond)
	prehistoric := note("prehistoric", models.StatusApproved, "")
	prehistoric.CreatedAt = time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	undated := note("undated", models.StatusApproved, "")

	in := []models.Note{undated, first, prehistoric, second}
	assert.Equal(t, []string{"second", "first", "undated", "prehistoric"}, ids(notes.SortByRecency(in)))
}

func TestTopByPopularity(t *testing.T) {
	mk := func(id string, downloads int64) models.Note {
		n := note(id, models.StatusApproved, "")
		n.Downloads = downloads
		return n
	}
	in := []models.Note{mk("a", 5), mk("b", 20), mk("c", 1)}
	assert.Equal(t, []string{"b", "a"}, ids(notes.TopByPopularity(in, 2)))

	ties := []models.Note{mk("a", 3), mk("b", 7), mk("c", 3), mk("d", 3)}
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(notes.TopByPopularity(ties, 10)))
	assert.Empty(t, notes.TopByPopularity(ties, 0))
}

func TestAdminSearchAndStats(t *testing.T) {
	a := note("a", models.StatusApproved, "")
	a.UploadedBy = "Rahim"
	b := note("b", models.StatusPending, "u1")
	b.Title = "Thermodynamics"
	c := note("c", models.StatusPending, "u2")
	all := []models.Note{a, b, c}

	assert.Equal(t, []string{"a"}, ids(notes.AdminSearch(all, "rahim")))
	assert.Equal(t, []string{"b"}, ids(notes.AdminSearch(all, "THERMO")))
	assert.Equal(t, all, notes.AdminSearch(all, " "))
	assert.Equal(t, notes.Stats{Total: 3, Approved: 1, Pending: 2}, notes.ComputeStats(all))
}

func TestFilterDepartments(t *testing.T) {
	depts := []models.Department{
		{ID: "cse", Name: "Computer Science", ShortName: "CSE"},
		{ID: "eee", Name: "Electrical Engineering", ShortName: "EEE"},
		{ID: "civil", Name: "Civil Engineering", ShortName: "CE"},
	}
	assert.Len(t, notes.FilterDepartments(depts, "engineering"), 2)
	assert.Len(t, notes.FilterDepartments(depts, "cse"), 1)
	assert.Len(t, notes.FilterDepartments(depts, ""), 3)
}

func TestBuildScope(t *testing.T) {
	all := catalog()
	pending := note("p", models.StatusPending, "u9")
	pending.Tags = models.StringSet{"draft"}
	all = append(all, pending)

	view := notes.BuildScope(all, nil, "", "lab")
	assert.Equal(t, []string{"circuits", "lab"}, view.Tags)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(view.Notes))

	owner := notes.BuildScope(all, &notes.Viewer{ID: "u9"}, "", "")
	assert.Contains(t, owner.Tags, "draft")
}
