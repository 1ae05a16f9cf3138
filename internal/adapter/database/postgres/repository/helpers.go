package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"taskapi/internal/adapter/database/postgres"
	"taskapi/internal/core/port"
)

// observe opens a repository span and returns the func that closes it with
// the operation result.
func observe(ctx context.Context, telemetry port.Telemetry, operation, table string) (context.Context, func(error)) {
	ctx, span := telemetry.StartRepositorySpan(ctx, operation, table, map[string]interface{}{
		"db.system": "postgresql",
	})

	startTime := time.Now()

	return ctx, func(err error) {
		telemetry.RecordRepositoryOperation(ctx, operation, table, time.Since(startTime), err)
		span.End()
	}
}

func exists(ctx context.Context, db *postgres.DB, telemetry port.Telemetry, table string, where sq.Eq) (found bool, err error) {
	ctx, done := observe(ctx, telemetry, "Exists", table)
	defer func() { done(err) }()

	subquery, args, err := db.QueryBuilder.Select("1").From(table).Where(where).ToSql()

	if err != nil {
		return false, err
	}

	query := "SELECT EXISTS (" + subquery + ")"

	telemetry.RecordRepositoryQuery(ctx, "Exists", table, query, args)

	if err := db.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("check %s existence: %w", table, err)
	}

	return found, nil
}
