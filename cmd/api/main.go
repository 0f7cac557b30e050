package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/packline/packtrace/internal/config"
	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/handlers"
	"github.com/packline/packtrace/internal/jobs"
	"github.com/packline/packtrace/internal/models"
	ws "github.com/packline/packtrace/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		// Packaging entities
		&models.Item{},
		&models.Box{},
		&models.Pallet{},
		&models.ItemBoxAssignment{},
		&models.PalletBoxAssignment{},

		// Export audit trail
		&models.ExportDocument{},
		&models.ExportItem{},
		&models.ExportBox{},
		&models.ExportPallet{},

		// Accounts
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.UserRole{},
		&models.RolePermission{},

		// Reference data
		&models.ProductionLine{},
		&models.Product{},
		&models.ProductPackaging{},

		// Background jobs
		&models.JobRecord{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Progress hub for terminals and the admin UI
	hub := ws.NewHub()
	go hub.Run()

	db.OnConnectionLost(func() {
		hub.Broadcast(map[string]string{"type": "CONNECTION_LOST"})
	})

	// 5. Background job manager
	jobsMgr := jobs.NewManager(db, hub)

	// 6. Set up HTTP router
	router := handlers.NewRouter(db, cfg, hub, jobsMgr)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s [env: %s]\n", cfg.Port, cfg.NodeEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
