package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const migrationsDir = "db/migrations"

func main() {
	name := flag.String("name", "", "migration name (lowercase, underscores)")
	flag.Parse()
	if *name == "" && flag.NArg() > 0 {
		*name = flag.Arg(0)
	}
	if *name == "" {
		log.Fatal("migration name is required")
	}

	slug := strings.ToLower(strings.ReplaceAll(*name, " ", "_"))
	version := time.Now().UTC().Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, slug)

	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}
	for _, suffix := range []string{".up.sql", ".down.sql"} {
		path := filepath.Join(migrationsDir, base+suffix)
		if err := createEmpty(path); err != nil {
			log.Fatalf("create %s: %v", path, err)
		}
		log.Printf("created %s", path)
	}
}

func createEmpty(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
