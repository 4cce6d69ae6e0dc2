package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/repository/postgres"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Migrating database at %s:%d...\n", cfg.Database.Host, cfg.Database.Port)

	if err := postgres.RunMigrations(cfg.Database.DSN(), *source); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
}
