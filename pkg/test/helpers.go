package test

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"taskapi/internal/adapter/database/sqlite"
)

// InitTestDB returns a migrated, private in-memory database. A single
// connection keeps every statement on the same in-memory instance.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(1)

	if err := sqlite.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	return sqlite.Wrap(db)
}

// CleanDB empties every application table, leaving the schema in place.
func CleanDB(db *sqlite.DB) error {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT IN ('sqlite_sequence', 'schema_migrations')")

	if err != nil {
		return err
	}

	var tables []string

	for rows.Next() {
		var table string

		if err := rows.Scan(&table); err != nil {
			rows.Close()
			return err
		}

		tables = append(tables, table)
	}

	rows.Close()

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	return nil
}
