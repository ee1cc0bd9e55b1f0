package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/softpaws/bazaar/internal/database/schema"
)

type InitDBCommand struct{}

func (c *InitDBCommand) Name() string {
	return "init-db"
}

func (c *InitDBCommand) Description() string {
	return "Bootstrap a blank database from the full schema (no goose history)"
}

func (c *InitDBCommand) Run(args []string) error {
	PrintHeader("Initializing database schema...")

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "bazaar")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema.SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	PrintSuccess("Schema applied")
	return nil
}
