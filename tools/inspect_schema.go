//go:build ignore

// inspect_schema prints the SQLite schema AutoMigrate generates, for comparison with
// data/initdb/mariadb/002-ddl-tables.sql. Run with: go run tools/inspect_schema.go
package main

import (
	"fmt"
	"log"

	"github.com/localnerve/movieapp/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func main() {
	db, err := database.Open(sqlite.Open(":memory:?_foreign_keys=on"), logger.Silent)
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&schema)
		fmt.Println(schema)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, index := range indexes {
			fmt.Println(index)
		}
	}
}
