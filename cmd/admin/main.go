// Command admin inspects the PostgreSQL record store directly: listing keys,
// dumping values, deleting entries and printing delivery counters. It talks
// raw SQL so it works even when the backend itself is down.
package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"forik/backend/internal/models"
	"forik/backend/internal/storage"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "forik"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "forikdb"),
		envOr("DB_PORT", "5432"),
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "keys":
		if err := listKeys(db); err != nil {
			log.Fatalf("keys: %v", err)
		}
	case "get":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin get <key>")
			os.Exit(1)
		}
		if err := getKey(db, os.Args[2]); err != nil {
			log.Fatalf("get: %v", err)
		}
	case "del":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin del <key>")
			os.Exit(1)
		}
		if err := delKey(db, os.Args[2]); err != nil {
			log.Fatalf("del: %v", err)
		}
		fmt.Printf("Key %s deleted.\n", os.Args[2])
	case "stats":
		if err := printStats(db); err != nil {
			log.Fatalf("stats: %v", err)
		}
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <keys|get|del|stats> [args]")
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func listKeys(db *sql.DB) error {
	rows, err := db.Query(`SELECT key, length(value) FROM kv_entries ORDER BY key`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var size int
		if err := rows.Scan(&key, &size); err != nil {
			return err
		}
		fmt.Printf("%-40s %d bytes\n", key, size)
	}
	return rows.Err()
}

func getKey(db *sql.DB, key string) error {
	var value string
	err := db.QueryRow(`SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return fmt.Errorf("key %q not found", key)
	}
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func delKey(db *sql.DB, key string) error {
	res, err := db.Exec(`DELETE FROM kv_entries WHERE key = $1`, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("key %q not found", key)
	}
	return nil
}

func printStats(db *sql.DB) error {
	var raw string
	err := db.QueryRow(`SELECT value FROM kv_entries WHERE key = $1`, storage.KeyTelegramStats).Scan(&raw)
	if err == sql.ErrNoRows {
		fmt.Println("No delivery stats recorded.")
		return nil
	}
	if err != nil {
		return err
	}

	var stats models.TelegramStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return fmt.Errorf("decode stats: %w", err)
	}
	fmt.Printf("Sent:    %d\nSuccess: %d\nFailed:  %d\n", stats.Sent, stats.Success, stats.Failed)
	if stats.LastSent != nil {
		fmt.Printf("Last:    %s\n", stats.LastSent.Format("2006-01-02 15:04:05"))
	}
	return nil
}
