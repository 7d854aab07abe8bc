// video.go
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
	"fmt"
	"regexp"
	"strings"

	"github.com/localnerve/notesdb/internal/models"
)

// videoIDLength is the fixed length of a YouTube video id
const videoIDLength = 11

var videoIDPattern = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// cdnHost marks asset URLs served by the image CDN, which supports URL transforms
const cdnHost = "cloudinary"

// ExtractVideoID pulls the video id out of a watch, short, embed or legacy URL.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil || len(m[2]) != videoIDLength {
		return "", false
	}
	return m[2], true
}

// ThumbnailURL picks a preview image for a note
func ThumbnailURL(n models.Note) string {
	if n.Type == models.NoteTypeVideo {
		if id, ok := ExtractVideoID(n.FileURL); ok {
			return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
		}
	}
	if n.Type == models.NoteTypePDF && strings.Contains(n.FileURL, cdnHost) {
		u := strings.Replace(n.FileURL, ".pdf", ".jpg", 1)
		return strings.Replace(u, "/upload/", "/upload/c_fill,h_400,w_600,pg_1,f_auto/", 1)
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/400", n.ID)
}

// DownloadURL is the link that opens or downloads the asset. CDN links are
// rewritten to force an attachment download.
func DownloadURL(n models.Note) string {
	if strings.Contains(n.FileURL, cdnHost) {
		return strings.Replace(n.FileURL, "/upload/", "/upload/fl_attachment/", 1)
	}
	return n.FileURL
}
