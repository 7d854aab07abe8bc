// index.go
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

package notes

import (
	"sort"
	"strings"
	"time"

	"github.com/localnerve/notesdb/internal/models"
)

// DistinctTags is the union of tags across the notes, sorted.
func DistinctTags(notes []models.Note) []string {
	seen := make(map[string]struct{})
	for _, n := range notes {
		for _, t := range n.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Filter keeps notes matching searchText on title, description or course code
// (case-insensitive) and carrying selectedTag. Empty arguments match everything.
func Filter(notes []models.Note, searchText, selectedTag string) []models.Note {
	needle := strings.ToLower(strings.TrimSpace(searchText))
	selectedTag = normalizeTag(selectedTag)
	if needle == "" && selectedTag == "" {
		return notes
	}
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if needle != "" &&
			!containsFold(n.Title, needle) &&
			!containsFold(n.Description, needle) &&
			!containsFold(n.CourseCode, needle) {
			continue
		}
		if selectedTag != "" && !n.Tags.Contains(selectedTag) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ToggleTag returns the tag selection after clicking clicked.
// Clicking the selected tag clears the selection.
func ToggleTag(current, clicked string) string {
	if current == clicked {
		return ""
	}
	return clicked
}

// SortByRecency returns a copy ordered newest first. A zero CreatedAt sorts as
// the epoch, so undated notes land last.
func SortByRecency(notes []models.Note) []models.Note {
	out := append([]models.Note(nil), notes...)
	sort.SliceStable(out, func(i, j int) bool {
		return createdAt(out[i]).After(createdAt(out[j]))
	})
	return out
}

// TopByPopularity returns up to n notes ordered by downloads, descending.
// Equal download counts keep their input order.
func TopByPopularity(notes []models.Note, n int) []models.Note {
	out := append([]models.Note(nil), notes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Downloads > out[j].Downloads
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// AdminSearch matches title or uploader name, case-insensitive.
func AdminSearch(notes []models.Note, text string) []models.Note {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return notes
	}
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if containsFold(n.Title, needle) || containsFold(n.UploadedBy, needle) {
			out = append(out, n)
		}
	}
	return out
}

// Stats summarizes moderation state
type Stats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

// ComputeStats counts notes by status
func ComputeStats(notes []models.Note) Stats {
	s := Stats{Total: len(notes)}
	for _, n := range notes {
		switch n.Status {
		case models.StatusApproved:
			s.Approved++
		case models.StatusPending:
			s.Pending++
		}
	}
	return s
}

// FilterDepartments matches name or short name, case-insensitive.
func FilterDepartments(departments []models.Department, text string) []models.Department {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return departments
	}
	out := make([]models.Department, 0, len(departments))
	for _, d := range departments {
		if containsFold(d.Name, needle) || containsFold(d.ShortName, needle) {
			out = append(out, d)
		}
	}
	return out
}

// ScopeView is one rendering of a department/semester scope
type ScopeView struct {
	Notes       []models.Note `json:"notes"`
	Tags        []string      `json:"tags"`
	SelectedTag string        `json:"selectedTag,omitempty"`
	Search      string        `json:"search,omitempty"`
}

// BuildScope runs a scope snapshot through visibility, filtering and ordering.
// Tags are derived from the visible set before text or tag filtering.
func BuildScope(snapshot []models.Note, viewer *Viewer, searchText, selectedTag string) ScopeView {
	visible := Visible(snapshot, viewer)
	return ScopeView{
		Notes:       SortByRecency(Filter(visible, searchText, selectedTag)),
		Tags:        DistinctTags(visible),
		SelectedTag: normalizeTag(selectedTag),
		Search:      searchText,
	}
}

var epoch = time.Unix(0, 0)

func createdAt(n models.Note) time.Time {
	if n.CreatedAt.IsZero() {
		return epoch
	}
	return n.CreatedAt
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
