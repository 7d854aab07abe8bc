// main.go
//
// The notes feed HTTP service
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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/notesdb/data"
	"github.com/localnerve/notesdb/internal/config"
	"github.com/localnerve/notesdb/internal/handlers"
	"github.com/localnerve/notesdb/internal/logging"
	"github.com/localnerve/notesdb/internal/middleware"
	"github.com/localnerve/notesdb/internal/services"
	"github.com/localnerve/notesdb/internal/store"
	"go.uber.org/zap"

	_ "github.com/localnerve/notesdb/docs/api" // Swagger docs
)

// @title NotesDB API
// @version 1.0.0
// @description Student note sharing: department feeds, comments, bookmarks and moderation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/notesdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the store and run migrations
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.String("type", cfg.DBType), zap.Error(err))
	}
	defer st.Close()

	depts, err := data.LoadDepartments()
	if err != nil {
		log.Fatal("failed to load departments", zap.Error(err))
	}
	if _, err := services.SeedDepartments(ctx, st, depts, log); err != nil {
		log.Fatal("failed to seed departments", zap.Error(err))
	}

	validator, err := services.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to create session validator", zap.Error(err))
	}

	guard, closeGuard := services.NewGuard(cfg)
	defer closeGuard()

	var assets services.AssetStore
	if cfg.UploadsEnabled() {
		assets = services.NewSupabaseAssets(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	} else {
		log.Warn("SUPABASE_URL not set, PDF uploads are disabled")
	}

	health := &services.Health{Config: cfg, Store: st, Log: log}
	if rg, ok := guard.(*services.RedisGuard); ok {
		health.Guard = rg
	}

	feeds := &services.Feeds{Store: st, Log: log, TrendingLimit: cfg.TrendingLimit, MaxSemester: cfg.MaxSemester}
	interactions := &services.Interactions{
		Store:           st,
		Assets:          assets,
		Log:             log,
		MaxSemester:     cfg.MaxSemester,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		DownloadTimeout: 10 * time.Second,
	}
	comments := &services.Comments{Store: st, Guard: guard, Window: cfg.CommentDedupeWindow, Log: log}
	profiles := &services.Profiles{Store: st, Log: log}
	streamer := &handlers.Streamer{Base: ctx, Heartbeat: 15 * time.Second, Log: log}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		BodyLimit:             int(cfg.MaxUploadBytes) + 1<<20,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	// Prometheus metrics
	prometheus := fiberprometheus.New("notesdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api. Event streams are not compressed.
	api := app.Group("/api", compress.New(compress.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Get(fiber.HeaderAccept) == "text/event-stream"
		},
	}))
	routes := &handlers.Routes{
		Session: middleware.Session(middleware.SessionConfig{
			Validator: validator,
			Profiles:  profiles,
			Log:       log,
		}),
		Notes: &handlers.NotesHandler{
			Feeds:          feeds,
			Interactions:   interactions,
			Streamer:       streamer,
			MaxUploadBytes: cfg.MaxUploadBytes,
		},
		Comments:    &handlers.CommentsHandler{Comments: comments, Streamer: streamer},
		Departments: &handlers.DepartmentsHandler{Feeds: feeds},
		Profile:     &handlers.ProfileHandler{Profiles: profiles},
		Admin:       &handlers.AdminHandler{Feeds: feeds, Interactions: interactions},
		Health:      &handlers.HealthHandler{Health: health},
	}
	routes.Register(api)

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info("gracefully shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	log.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.DBType),
		zap.String("auth", cfg.AuthProvider))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}

	log.Info("server stopped")
}
