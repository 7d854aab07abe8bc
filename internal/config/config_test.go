// config_test.go
//
// Environment configuration for the notes service
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

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/localnerve/notesdb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "notes.db")
	t.Setenv("AUTH_PROVIDER", "authorizer")
	t.Setenv("AUTHZ_URL", "http://localhost:8080")
	t.Setenv("AUTHZ_CLIENT_ID", "client")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 12, cfg.MaxSemester)
	assert.Equal(t, 3, cfg.TrendingLimit)
	assert.Equal(t, 10*time.Second, cfg.CommentDedupeWindow)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "uploads", cfg.SupabaseBucket)
	assert.False(t, cfg.UploadsEnabled())
}

func TestLoadDefaultPorts(t *testing.T) {
	setBase(t)
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_USER", "notes")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "5432", cfg.DBPort)
}

func TestLoadDurations(t *testing.T) {
	setBase(t)
	t.Setenv("COMMENT_DEDUPE_WINDOW", "45")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.CommentDedupeWindow)

	t.Setenv("COMMENT_DEDUPE_WINDOW", "2m")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.CommentDedupeWindow)
}

func TestLoadRequiredFields(t *testing.T) {
	cases := map[string]map[string]string{
		"sqlite without database":   {"DB_DATABASE": ""},
		"postgres without user":     {"DB_TYPE": "postgres", "DB_USER": ""},
		"firestore without project": {"DB_TYPE": "firestore"},
		"authorizer without url":    {"AUTHZ_URL": ""},
		"firebase without project":  {"AUTH_PROVIDER": "firebase"},
		"unknown store":             {"DB_TYPE": "oracle"},
		"unknown provider":          {"AUTH_PROVIDER": "ldap"},
		"zero semesters":            {"MAX_SEMESTER": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setBase(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	setBase(t)
	t.Setenv("TRENDING_LIMIT", "")
	os.Unsetenv("TRENDING_LIMIT")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRENDING_LIMIT=7\nPORT=4000\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("PORT", "5000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.TrendingLimit)
	assert.Equal(t, "5000", cfg.Port, "environment wins over the file")
}
