// Applies every SQL file in migrations/ against the configured database,
// substituting the environment's table prefix. Run with:
//
//	go run scripts/apply_migrations.go [-drop]
//
// -drop removes the prefixed tables first.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	drop := flag.Bool("drop", false, "drop existing tables before applying migrations")
	flag.Parse()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Read environment to determine table prefix
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	prefix := os.Getenv("TABLE_PREFIX")
	if prefix == "" {
		prefix = env + "_"
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	if *drop {
		dropSQL := fmt.Sprintf(`
			DROP TABLE IF EXISTS %sfile_change_logs CASCADE;
			DROP TABLE IF EXISTS %sfile_nodes CASCADE;
		`, prefix, prefix)
		if _, err := db.Exec(dropSQL); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Printf("Dropped tables with prefix %q\n", prefix)
	}

	paths, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		log.Fatalf("Failed to list migrations: %v", err)
	}
	if len(paths) == 0 {
		log.Fatal("No migration files found in migrations/")
	}
	sort.Strings(paths)

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}

		stmt := strings.ReplaceAll(string(raw), "{{prefix}}", prefix)
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Failed to apply %s: %v", path, err)
		}
		fmt.Printf("Applied %s (prefix %q)\n", path, prefix)
	}
}
