package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metrics-dashboard/cmd"
	"metrics-dashboard/internal/api"
	"metrics-dashboard/internal/config"
	"metrics-dashboard/internal/database"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

func createServer(db *gorm.DB, port int, adminCookie string) *http.Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true, // the dashboard authenticates with cookies
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	api.NewModelStoreService(db, adminCookie).AddRoutes(r)

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
}

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", "", "path to load env from")
	flag.Parse()

	if err := config.LoadEnvFile(envFile); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.LoadDevStoreConfig()
	if err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	closeLog, err := cmd.SetupLogging(cfg.LogFile, true)
	if err != nil {
		log.Fatalf("error setting up logging: %v", err)
	}
	defer closeLog()

	slog.Info("starting model store", "port", cfg.Port, "database", cfg.Database, "admin_only_mutations", cfg.AdminCookie != "")

	db, err := database.OpenSQLite(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	server := createServer(db, cfg.Port, cfg.AdminCookie)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	slog.Info("server started", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %d: %v\n", cfg.Port, err)
	}

	slog.Info("server stopped")
}
