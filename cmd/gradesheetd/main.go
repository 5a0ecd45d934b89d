package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/campusops/gradesheet/internal/api/http"
	auth "github.com/campusops/gradesheet/internal/auth/middleware"
	"github.com/campusops/gradesheet/internal/config"
	"github.com/campusops/gradesheet/internal/db"
	"github.com/campusops/gradesheet/internal/gradescale"
	"github.com/campusops/gradesheet/internal/pipeline"
	"github.com/campusops/gradesheet/internal/rank"
	"github.com/campusops/gradesheet/internal/rbac"
	"github.com/campusops/gradesheet/internal/runs"
	"github.com/campusops/gradesheet/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- Grade scale (load once, read-only for process lifetime) ---
	scale, err := gradescale.Load(cfg.ScalePath)
	if err != nil {
		log.Fatalf("grade scale: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := runs.NewSQLStore(dbh)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	users := map[string]auth.Credential{
		cfg.AdminUser: {PassHash: cfg.AdminPassHash, Role: "admin"},
	}
	if cfg.StaffUser != "" && cfg.StaffPassHash != "" {
		users[cfg.StaffUser] = auth.Credential{PassHash: cfg.StaffPassHash, Role: "staff"}
	}

	opts := pipeline.Options{
		Workers:        cfg.Workers,
		MaxDocBytes:    cfg.MaxDocBytes,
		PercentileMode: rank.ParseMode(cfg.PercentileMode),
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, users))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("runs:process")).
			Post("/runs", api.CreateRunHandler(store, bs, scale, opts))

		pr.With(rbac.Require("runs:view")).
			Get("/runs", api.ListRunsHandler(store))
		pr.With(rbac.Require("runs:view")).
			Get("/runs/{runID}", api.GetRunHandler(store))
		pr.With(rbac.Require("runs:view")).
			Get("/runs/{runID}/students/{regNo}", api.StudentDetailHandler(store))
		pr.With(rbac.Require("runs:view")).
			Get("/runs/{runID}/documents/{name}", api.DocumentHandler(bs))

		pr.With(rbac.Require("runs:export")).
			Get("/runs/{runID}/export", api.ExportRunCSVHandler(store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, percentile=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.PercentileMode)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
