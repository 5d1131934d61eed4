// Command dbtool initializes the database schema and seeds the dispatch
// rider row for local and dev environments.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id                uuid PRIMARY KEY,
	number            text NOT NULL,
	customer_name     text NOT NULL,
	customer_phone    text NOT NULL,
	address           text NOT NULL,
	fuel_type         text NOT NULL,
	quantity_liters   integer NOT NULL,
	keg_size          integer NOT NULL,
	priority          text NOT NULL,
	status            text NOT NULL,
	neighborhood      text NOT NULL DEFAULT '',
	batch_id          text,
	batchable         boolean NOT NULL DEFAULT true,
	confirmation_code text NOT NULL,
	created_at        timestamptz NOT NULL,
	accepted_at       timestamptz,
	started_at        timestamptz,
	completed_at      timestamptz
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_number ON orders (number);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);
CREATE INDEX IF NOT EXISTS idx_orders_neighborhood ON orders (neighborhood);

CREATE TABLE IF NOT EXISTS riders (
	id           uuid PRIMARY KEY,
	name         text NOT NULL,
	status       text NOT NULL,
	total_liters integer NOT NULL,
	keg_size     integer NOT NULL,
	used_liters  integer NOT NULL DEFAULT 0,
	used_kegs    integer NOT NULL DEFAULT 0
);
`

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"), envOr("DB_PORT", "5432"),
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), envOr("DB_SSLMODE", "disable"))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err = db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	log.Println("Initializing database schema...")
	if _, err = db.Exec(schema); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if err = seedRider(db); err != nil {
		log.Fatalf("rider seeding failed: %v", err)
	}
}

// seedRider inserts the single dispatch rider at full capacity when the
// riders table is empty. An existing rider is left untouched so a re-run
// never resets committed load.
func seedRider(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM riders").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("Rider already seeded.")
		return nil
	}

	name := envOr("RIDER_NAME", "Dispatch Rider")
	totalLiters := intOr("CAPACITY_LITERS", 200)
	kegSize := intOr("KEG_SIZE_LITERS", 10)

	_, err := db.Exec(
		`INSERT INTO riders (id, name, status, total_liters, keg_size, used_liters, used_kegs)
		 VALUES ($1, $2, 'online', $3, $4, 0, 0)`,
		uuid.New(), name, totalLiters, kegSize)
	if err != nil {
		return err
	}

	log.Printf("Seeded rider %q with %dL capacity (%dL kegs).", name, totalLiters, kegSize)
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	var value int
	if _, err := fmt.Sscanf(raw, "%d", &value); err != nil || value <= 0 {
		return fallback
	}
	return value
}
