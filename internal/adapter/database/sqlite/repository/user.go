package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"taskapi/internal/adapter/database"
	"taskapi/internal/adapter/database/sqlite"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
	tel "taskapi/internal/core/telemetry"
)

type UserRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (ur *UserRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return ur.findOne(ctx, "Get", sq.Eq{"id": id.String()})
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return ur.findOne(ctx, "GetByUsername", sq.Eq{"username": username})
}

func (ur *UserRepository) Add(ctx context.Context, user *domain.User) (_ *domain.User, err error) {
	ctx, done := observe(ctx, ur.telemetry, "Add", database.UsersTable)
	defer func() { done(err) }()

	query, args, err := ur.db.QueryBuilder.Insert(database.UsersTable).
		Columns(database.UserColumns...).
		Values(database.UserValues(user.Record())...).
		ToSql()

	if err != nil {
		return nil, err
	}

	ur.telemetry.RecordRepositoryQuery(ctx, "Add", database.UsersTable, query, args)

	_, err = ur.db.ExecContext(ctx, query, args...)

	if sqlite.IsUniqueViolation(err) {
		slog.WarnContext(ctx, "Duplicate username rejected by storage", "username", user.Username())
		return nil, domain.NewConflictError(fmt.Sprintf("username %q is already taken", user.Username()))
	}

	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (ur *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, ur.db, ur.telemetry, database.UsersTable, sq.Eq{"id": id.String()})
}

func (ur *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return exists(ctx, ur.db, ur.telemetry, database.UsersTable, sq.Eq{"username": username})
}

func (ur *UserRepository) findOne(ctx context.Context, operation string, where sq.Eq) (user *domain.User, err error) {
	ctx, done := observe(ctx, ur.telemetry, operation, database.UsersTable)
	defer func() { done(err) }()

	query, args, err := ur.db.QueryBuilder.Select(database.UserColumns...).
		From(database.UsersTable).
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, err
	}

	ur.telemetry.RecordRepositoryQuery(ctx, operation, database.UsersTable, query, args)

	record, err := database.ScanUser(ur.db.QueryRowContext(ctx, query, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		slog.ErrorContext(ctx, "Error getting user", "operation", operation, "error", err)
		return nil, fmt.Errorf("get user: %w", err)
	}

	return domain.RestoreUser(record), nil
}
