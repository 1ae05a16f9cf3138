package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"taskapi/internal/adapter/database/sqlite"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
)

// observe opens a repository span and returns the func that closes it with
// the operation result.
func observe(ctx context.Context, telemetry port.Telemetry, operation, table string) (context.Context, func(error)) {
	ctx, span := telemetry.StartRepositorySpan(ctx, operation, table, map[string]interface{}{
		"db.system": "sqlite",
	})

	startTime := time.Now()

	return ctx, func(err error) {
		telemetry.RecordRepositoryOperation(ctx, operation, table, time.Since(startTime), err)
		span.End()
	}
}

func exists(ctx context.Context, db *sqlite.DB, telemetry port.Telemetry, table string, where sq.Eq) (found bool, err error) {
	ctx, done := observe(ctx, telemetry, "Exists", table)
	defer func() { done(err) }()

	query, args, err := db.QueryBuilder.Select("1").
		From(table).
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return false, err
	}

	telemetry.RecordRepositoryQuery(ctx, "Exists", table, query, args)

	var one int
	err = db.QueryRowContext(ctx, query, args...).Scan(&one)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("check %s existence: %w", table, err)
	}

	return true, nil
}

func requireAffected(result sql.Result, entity string, id uuid.UUID) error {
	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("%s %s not found", entity, id))
	}

	return nil
}
