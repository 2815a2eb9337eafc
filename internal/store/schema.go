package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Portable between MySQL and SQLite: no engine clauses, no inline indexes.
// queue_position deliberately carries no UNIQUE constraint; a swap passes
// through a duplicate inside its transaction.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS vessels (
		id VARCHAR(64) PRIMARY KEY,
		display_name VARCHAR(255) NOT NULL,
		queue_position INT NOT NULL,
		status VARCHAR(20) NOT NULL,
		category VARCHAR(32) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS departures (
		id VARCHAR(64) PRIMARY KEY,
		vessel_id VARCHAR(64) NOT NULL,
		vessel_name VARCHAR(255) NOT NULL,
		category VARCHAR(32) NOT NULL DEFAULT '',
		discharge_position INT NOT NULL,
		passenger_count INT NOT NULL,
		total_price DOUBLE NOT NULL,
		price_per_person DOUBLE NOT NULL,
		operator VARCHAR(255) NOT NULL,
		service_date VARCHAR(10) NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id VARCHAR(64) PRIMARY KEY,
		kind VARCHAR(32) NOT NULL,
		details TEXT NOT NULL,
		actor VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id VARCHAR(64) PRIMARY KEY,
		document VARCHAR(32) NOT NULL,
		name VARCHAR(255) NOT NULL,
		company VARCHAR(255) NOT NULL DEFAULT '',
		passengers INT NOT NULL,
		departure_at DATETIME NOT NULL,
		service_date VARCHAR(10) NOT NULL,
		used BOOLEAN NOT NULL DEFAULT FALSE,
		used_at DATETIME NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id VARCHAR(64) PRIMARY KEY,
		document VARCHAR(32) NOT NULL,
		name VARCHAR(255) NOT NULL,
		sale_date VARCHAR(10) NOT NULL,
		adults INT NOT NULL,
		children INT NOT NULL DEFAULT 0,
		price BIGINT NOT NULL,
		category VARCHAR(64) NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL,
		created_at DATETIME NOT NULL
	)`,
}

// Migrate - Create every table the board needs if it is missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
