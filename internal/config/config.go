// config.go
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

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Store configuration
	DBType            string // sqlite, mysql, postgres, sqlserver, firestore
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Firestore / Firebase configuration
	FirestoreProjectID      string
	FirebaseCredentialsFile string

	// Identity provider: authorizer or firebase
	AuthProvider  string
	AuthzURL      string
	AuthzClientID string

	// Object storage for PDF uploads
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	// Redis for the comment idempotency guard; empty uses an in-process guard
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Logging
	LogLevel  string
	LogFormat string

	// Domain limits
	MaxSemester         int
	TrendingLimit       int
	CommentDedupeWindow time.Duration
	MaxUploadBytes      int64
}

// Load loads configuration from environment variables. When ENV_FILE is set
// the file is loaded first; variables already in the environment win.
func Load() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "3000"),
		DBType:                  getEnv("DB_TYPE", "sqlite"),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", ""),
		DBDatabase:              getEnv("DB_DATABASE", ""),
		DBUser:                  getEnv("DB_USER", ""),
		DBPassword:              getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:       getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		FirestoreProjectID:      getEnv("FIRESTORE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		AuthProvider:            getEnv("AUTH_PROVIDER", "authorizer"),
		AuthzURL:                getEnv("AUTHZ_URL", ""),
		AuthzClientID:           getEnv("AUTHZ_CLIENT_ID", ""),
		SupabaseURL:             getEnv("SUPABASE_URL", ""),
		SupabaseKey:             getEnv("SUPABASE_KEY", ""),
		SupabaseBucket:          getEnv("SUPABASE_BUCKET", "uploads"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RedisDB:                 getEnvAsInt("REDIS_DB", 0),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		MaxSemester:             getEnvAsInt("MAX_SEMESTER", 12),
		TrendingLimit:           getEnvAsInt("TRENDING_LIMIT", 3),
		CommentDedupeWindow:     getEnvAsDuration("COMMENT_DEDUPE_WINDOW", 10*time.Second),
		MaxUploadBytes:          int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBType)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields for the selected store and identity provider
func (cfg *Config) Validate() error {
	switch cfg.DBType {
	case "firestore":
		if cfg.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required")
		}
	case "sqlite":
		if cfg.DBDatabase == "" {
			return fmt.Errorf("DB_DATABASE is required")
		}
	case "mysql", "mariadb", "postgres", "postgresql", "sqlserver", "mssql":
		if cfg.DBDatabase == "" {
			return fmt.Errorf("DB_DATABASE is required")
		}
		if cfg.DBUser == "" {
			return fmt.Errorf("DB_USER is required")
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", cfg.DBType)
	}

	switch cfg.AuthProvider {
	case "authorizer":
		if cfg.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required")
		}
		if cfg.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required")
		}
	case "firebase":
		if cfg.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for firebase auth")
		}
	default:
		return fmt.Errorf("unsupported AUTH_PROVIDER: %s", cfg.AuthProvider)
	}

	if cfg.MaxSemester < 1 {
		return fmt.Errorf("MAX_SEMESTER must be positive")
	}
	if cfg.TrendingLimit < 0 {
		return fmt.Errorf("TRENDING_LIMIT must not be negative")
	}
	return nil
}

// UploadsEnabled reports whether object storage is configured
func (cfg *Config) UploadsEnabled() bool {
	return cfg.SupabaseURL != "" && cfg.SupabaseKey != ""
}

func defaultPort(dbType string) string {
	switch dbType {
	case "mysql", "mariadb":
		return "3306"
	case "postgres", "postgresql":
		return "5432"
	case "sqlserver", "mssql":
		return "1433"
	}
	return ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration syntax ("10s") or whole seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
