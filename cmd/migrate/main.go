package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [up|drop]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

// createTables creates the analytics schema
func createTables(ctx context.Context, conn *pgx.Conn) error {
	schema := `
		CREATE TABLE IF NOT EXISTS daily_traffic_rollups (
			day DATE PRIMARY KEY,
			views BIGINT NOT NULL DEFAULT 0,
			unique_visitors BIGINT NOT NULL DEFAULT 0,
			device_histogram JSONB NOT NULL DEFAULT '{}'::jsonb,
			country_histogram JSONB NOT NULL DEFAULT '{}'::jsonb,
			top_country TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_daily_traffic_rollups_day
			ON daily_traffic_rollups (day DESC);
	`

	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create daily_traffic_rollups: %w", err)
	}

	return nil
}

// dropTables drops the analytics schema
func dropTables(ctx context.Context, conn *pgx.Conn) error {
	if _, err := conn.Exec(ctx, `DROP TABLE IF EXISTS daily_traffic_rollups`); err != nil {
		return fmt.Errorf("failed to drop daily_traffic_rollups: %w", err)
	}
	return nil
}
