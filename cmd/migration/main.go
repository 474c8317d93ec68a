package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"talenthui-go-backend/config"
	"talenthui-go-backend/pkg/infrastructure/datastore"
)

// Applies the SQL files under migrations/ in lexical order. Files are written
// to be re-runnable (IF NOT EXISTS), so there is no version bookkeeping.
func main() {
	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	config.ReadConfig(config.ReadConfigOption{})

	pool, err := datastore.NewPool()
	if err != nil {
		log.Fatalf("Failed to open db connection: %v", err)
	}
	defer pool.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	ctx := context.Background()
	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Fatalf("Failed to read %s: %v", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			log.Fatalf("Migration %s failed: %v", name, err)
		}
		log.Printf("Applied %s", name)
	}

	log.Printf("Migrations complete (%d files)", len(files))
}
