package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/rawblock/seedscan/internal/api"
	"github.com/rawblock/seedscan/internal/config"
	"github.com/rawblock/seedscan/internal/db"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP/websocket API for starting and watching searches",
	Run:   runServeCommand,
}

func runServeCommand(_ *cobra.Command, _ []string) {
	cfg := config.Load()

	var store *db.PostgresStore
	if cfg.DatabaseURL != "" {
		s, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := s.InitSchema(); err != nil {
			log.Fatalf("failed to initialize schema: %v", err)
		}
		store = s
		defer s.Close()
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	hub := api.NewHub()
	go hub.Run()

	jobs := api.NewJobManager(store, hub, cfg.SeedWorkers)
	router := api.SetupRouter(jobs, hub)

	log.Printf("seedscan API listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
