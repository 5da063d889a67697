package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strings"

	"word-rush/internal/config"
	"word-rush/internal/db"
)

type wordRecord struct {
	Category string
	Text     string
}

func main() {
	filePath := flag.String("file", "words.csv", "path to words csv (category,word)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	records, err := readWords(*filePath)
	if err != nil {
		log.Fatalf("failed to read words: %v", err)
	}

	inserted := 0
	for _, record := range records {
		entry := db.Word{
			Category: record.Category,
			Text:     record.Text,
		}
		if err := conn.FirstOrCreate(&entry, db.Word{Category: entry.Category, Text: entry.Text}).Error; err != nil {
			log.Fatalf("failed to upsert word: %v", err)
		}
		inserted++
	}

	log.Printf("loaded %d words", inserted)
}

func readWords(path string) ([]wordRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []wordRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(row[0]))
		text := strings.TrimSpace(row[1])
		if category == "" || text == "" {
			continue
		}
		records = append(records, wordRecord{Category: category, Text: text})
	}
	return records, nil
}
