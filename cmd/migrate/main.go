package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/agrihedge/hedging-worker/pkg/config"
	"github.com/agrihedge/hedging-worker/pkg/migration"
	"github.com/agrihedge/hedging-worker/pkg/postgresql"
)

func main() {
	var (
		direction = flag.String("direction", "up", "migration direction: up or down")
		steps     = flag.Int("steps", 0, "number of migrations to apply (0 = all pending, down requires > 0)")
		dir       = flag.String("dir", "internal/infrastructure/postgresql/migrations", "migration files directory")
	)
	flag.Parse()

	// Only the database settings matter here, so the full worker config
	// with its required queue variables is not loaded.
	cfg := &struct {
		Postgres postgresql.Config `envPrefix:"POSTGRES_"`
	}{}
	if err := config.Load(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	client, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to postgresql: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	runner := migration.NewRunner(client, migration.Config{
		MigrationDir: *dir,
	})

	if err := runner.EnsureMigrationTable(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to ensure migration table: %v\n", err)
		os.Exit(1)
	}

	switch *direction {
	case "up":
		err = runner.MigrateUp(ctx, *steps)
	case "down":
		err = runner.MigrateDown(ctx, *steps)
	default:
		fmt.Fprintf(os.Stderr, "unknown direction %q\n", *direction)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
}
