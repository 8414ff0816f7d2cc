package main

import (
	"context"
	"net/http"
	"os"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/api"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/config"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/database"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/handler"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/middleware"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	pool, err := database.ConnectPostgres(cfg)
	if err != nil {
		utils.LogError("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Create tables if needed
	if err := database.InitSchema(context.Background(), pool); err != nil {
		utils.LogError("Schema initialization failed: %v", err)
		os.Exit(1)
	}

	// Initialize routes
	st := store.NewPostgres(pool)
	h := handler.New(st)
	router := api.SetupRouter(h, st)

	// Wrap router with CORS middleware
	srv := middleware.CORS(router)

	// Start server
	utils.LogSuccess("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		utils.LogError("Server failed: %v", err)
		os.Exit(1)
	}
}
