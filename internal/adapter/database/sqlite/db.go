package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	sqlite3driver "github.com/mattn/go-sqlite3"

	"taskapi/db/migrations"
)

const DefaultPath = "taskapi.db"

type Config struct {
	Path         string
	MaxOpenConns int
	LogSQL       bool
}

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

// Open migrates the database at config.Path and returns a traced
// connection pool. Statement logging through zerolog is opt-in.
func Open(config Config) (*DB, error) {
	path := config.Path

	if path == "" {
		path = DefaultPath
	}

	migrationDB, err := sql.Open("sqlite3", path)

	if err != nil {
		return nil, fmt.Errorf("open sqlite for migrations: %w", err)
	}

	err = RunMigrations(migrationDB)
	migrationDB.Close()

	if err != nil {
		return nil, err
	}

	sqlDB, err := otelsql.Open("sqlite3", path,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("taskapi"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if config.LogSQL {
		logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sqlite").Logger()
		sqlDB = sqldblogger.OpenDriver(path, sqlDB.Driver(), zerologadapter.New(logger))
	}

	maxOpen := config.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return Wrap(sqlDB), nil
}

// Wrap pairs an already migrated connection with the sqlite query builder.
func Wrap(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.SQLite, "sqlite")

	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)

	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3driver.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3driver.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3driver.ErrConstraintPrimaryKey
	}

	return false
}
