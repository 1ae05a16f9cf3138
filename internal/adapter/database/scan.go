// Package database holds what the sqlite and postgres stores share.
package database

import (
	"database/sql"

	"taskapi/internal/core/domain"
)

const (
	TasksTable = "tasks"
	UsersTable = "users"
)

var (
	TaskColumns = []string{"id", "title", "description", "is_completed", "due_date", "created_at", "updated_at"}
	UserColumns = []string{"id", "username", "password_hash", "created_at", "updated_at"}
)

// RowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanTask reads one row selected with TaskColumns.
func ScanTask(row RowScanner) (domain.TaskRecord, error) {
	var (
		record      domain.TaskRecord
		description sql.NullString
		dueDate     sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.Title,
		&description,
		&record.IsCompleted,
		&dueDate,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		return domain.TaskRecord{}, err
	}

	if description.Valid {
		record.Description = &description.String
	}

	if dueDate.Valid {
		due := dueDate.Time.UTC()
		record.DueDate = &due
	}

	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()

	return record, nil
}

// ScanUser reads one row selected with UserColumns.
func ScanUser(row RowScanner) (domain.UserRecord, error) {
	var record domain.UserRecord

	err := row.Scan(
		&record.ID,
		&record.Username,
		&record.PasswordHash,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		return domain.UserRecord{}, err
	}

	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()

	return record, nil
}

// TaskValues lists a record in TaskColumns order.
func TaskValues(r domain.TaskRecord) []any {
	return []any{r.ID.String(), r.Title, r.Description, r.IsCompleted, r.DueDate, r.CreatedAt, r.UpdatedAt}
}

// UserValues lists a record in UserColumns order.
func UserValues(r domain.UserRecord) []any {
	return []any{r.ID.String(), r.Username, r.PasswordHash, r.CreatedAt, r.UpdatedAt}
}
