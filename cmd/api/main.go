package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/sweetbite/sweetbite-backend/internal/config"
	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/analytics"
	"github.com/sweetbite/sweetbite-backend/internal/modules/auth"
	"github.com/sweetbite/sweetbite-backend/internal/modules/catalog"
	"github.com/sweetbite/sweetbite-backend/internal/modules/inventory"
	"github.com/sweetbite/sweetbite-backend/internal/modules/order"
	"github.com/sweetbite/sweetbite-backend/internal/modules/pos"
	"github.com/sweetbite/sweetbite-backend/internal/modules/stats"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
	"github.com/sweetbite/sweetbite-backend/pkg/imagestore"
	"github.com/sweetbite/sweetbite-backend/pkg/logger"
)

func main() {
	// .env is optional outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	appLog := logger.New(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	appLog.Info("connected to database", "host", cfg.DB.Host, "name", cfg.DB.Name)

	images, err := imagestore.NewLocal(cfg.UploadDir, cfg.UploadURL)
	if err != nil {
		log.Fatal(err)
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(chimw.RequestID)

	mw := middleware.NewAuth(cfg.JWTSecret)

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router, mw)

	authService := auth.NewService(userRepo, cfg.JWTSecret)
	auth.NewHandler(authService, userRepo).RegisterRoutes(router, mw)

	// ── Phase 2: Catalog & Inventory ────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router, mw)

	stockRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(catalogRepo, stockRepo, images, appLog)
	inventory.NewHandler(inventoryService).RegisterRoutes(router, mw)

	// ── Phase 3: Orders ─────────────────────────────────────
	statsService := stats.NewService(stats.NewPostgresRepository(db))

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, statsService, appLog)
	order.NewHandler(orderService).RegisterRoutes(router, mw)

	// ── Phase 4: Point of Sale ──────────────────────────────
	posService := pos.NewService(userService, catalogService, orderService, orderRepo)
	pos.NewHandler(posService).RegisterRoutes(router, mw)

	// ── Phase 5: Reporting ──────────────────────────────────
	analyticsRepo := analytics.NewPostgresRepository(sqlx.NewDb(db, "postgres"))
	analytics.NewHandler(analyticsRepo, appLog).RegisterRoutes(router, mw)

	// ── Static uploads ──────────────────────────────────────
	router.Handle(cfg.UploadURL+"/*", http.StripPrefix(cfg.UploadURL+"/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	// ── Start Server ────────────────────────────────────────
	addr := fmt.Sprintf(":%d", cfg.Port)
	appLog.Info("server starting", "addr", addr, "env", cfg.Env)
	log.Fatal(http.ListenAndServe(addr, router))
}
