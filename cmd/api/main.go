package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/config"
	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/georgemunganga/supermart-backend/internal/modules/analytics"
	"github.com/georgemunganga/supermart-backend/internal/modules/auth"
	"github.com/georgemunganga/supermart-backend/internal/modules/billing"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog"
	"github.com/georgemunganga/supermart-backend/internal/modules/expense"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/georgemunganga/supermart-backend/internal/modules/purchase"
	"github.com/georgemunganga/supermart-backend/internal/modules/supplier"
	"github.com/georgemunganga/supermart-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle := database.NewHandle(cfg.DatabaseURL)
	db, err := handle.Connect(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer handle.Close()
	log.Println("database: connected")

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("database: %v", err)
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpx.RequestLogger())
	router.Use(httpx.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(httpx.CORS(cfg.AllowedOrigins))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusOK, "API is running...")
	})

	router.Route("/api", func(api chi.Router) {
		// ── Phase 1: Identity ───────────────────────────────────
		userService := user.NewService(user.NewPostgresRepository(db))
		issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
		mw := auth.NewMiddlewares(issuer, userService)
		auth.NewHandler(auth.NewService(userService, issuer)).RegisterRoutes(api, mw)

		// ── Phase 2: Catalog & Suppliers ────────────────────────
		catalog.NewHandler(catalog.NewService(catalog.NewPostgresStore(db))).RegisterRoutes(api, mw)
		supplier.NewHandler(supplier.NewService(supplier.NewPostgresRepository(db))).RegisterRoutes(api, mw)

		// ── Phase 3: Purchasing & Stock ─────────────────────────
		purchaseService := purchase.NewService(
			purchase.NewPostgresRepository(db),
			purchase.NewUnitOfWork(db),
			inventory.NewReconciler(),
		)
		purchase.NewHandler(purchaseService).RegisterRoutes(api, mw)

		// ── Phase 4: Billing ────────────────────────────────────
		billingService := billing.NewService(
			billing.NewPostgresRepository(db),
			billing.NewUnitOfWork(db),
			billing.NewNumberer(),
		)
		billing.NewHandler(billingService).RegisterRoutes(api, mw)

		// ── Phase 5: Expenses & Analytics ───────────────────────
		expenseRepo := expense.NewPostgresRepository(db)
		expense.NewHandler(expense.NewService(expenseRepo, cfg.ReportLocation)).RegisterRoutes(api, mw)

		analyticsService := analytics.NewService(analytics.NewPostgresRepository(db), expenseRepo, cfg.ReportLocation)
		analytics.NewHandler(analyticsService).RegisterRoutes(api, mw)
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Supermart API server starting on :%s (%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("server: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server: shutdown: %v", err)
	}
}
