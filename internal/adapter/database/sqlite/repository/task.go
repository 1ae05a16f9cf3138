package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"taskapi/internal/adapter/database"
	"taskapi/internal/adapter/database/sqlite"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
	tel "taskapi/internal/core/telemetry"
)

type TaskRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewTaskRepository(db *sqlite.DB, telemetry port.Telemetry) port.TaskRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TaskRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (tr *TaskRepository) Get(ctx context.Context, id uuid.UUID) (task *domain.Task, err error) {
	ctx, done := observe(ctx, tr.telemetry, "Get", database.TasksTable)
	defer func() { done(err) }()

	query, args, err := tr.db.QueryBuilder.Select(database.TaskColumns...).
		From(database.TasksTable).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Get", database.TasksTable, query, args)

	record, err := database.ScanTask(tr.db.QueryRowContext(ctx, query, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}

	return domain.RestoreTask(record), nil
}

func (tr *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) (tasks []*domain.Task, err error) {
	ctx, done := observe(ctx, tr.telemetry, "List", database.TasksTable)
	defer func() { done(err) }()

	builder := tr.db.QueryBuilder.Select(database.TaskColumns...).
		From(database.TasksTable).
		OrderBy("created_at ASC", "id ASC")

	if filter.IsCompleted != nil {
		builder = builder.Where(sq.Eq{"is_completed": *filter.IsCompleted})
	}

	if from, to, ok := filter.DueWindow(); ok {
		builder = builder.Where(sq.And{
			sq.GtOrEq{"due_date": from},
			sq.Lt{"due_date": to},
		})
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "List", database.TasksTable, query, args)

	rows, err := tr.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	defer rows.Close()

	tasks = make([]*domain.Task, 0)

	for rows.Next() {
		record, err := database.ScanTask(rows)

		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}

		tasks = append(tasks, domain.RestoreTask(record))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (tr *TaskRepository) Add(ctx context.Context, task *domain.Task) (_ *domain.Task, err error) {
	ctx, done := observe(ctx, tr.telemetry, "Add", database.TasksTable)
	defer func() { done(err) }()

	query, args, err := tr.db.QueryBuilder.Insert(database.TasksTable).
		Columns(database.TaskColumns...).
		Values(database.TaskValues(task.Record())...).
		ToSql()

	if err != nil {
		return nil, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Add", database.TasksTable, query, args)

	if _, err := tr.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

func (tr *TaskRepository) Update(ctx context.Context, task *domain.Task) (err error) {
	ctx, done := observe(ctx, tr.telemetry, "Update", database.TasksTable)
	defer func() { done(err) }()

	record := task.Record()

	query, args, err := tr.db.QueryBuilder.Update(database.TasksTable).
		Set("title", record.Title).
		Set("description", record.Description).
		Set("is_completed", record.IsCompleted).
		Set("due_date", record.DueDate).
		Set("updated_at", record.UpdatedAt).
		Where(sq.Eq{"id": record.ID.String()}).
		ToSql()

	if err != nil {
		return err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Update", database.TasksTable, query, args)

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	return requireAffected(result, "task", record.ID)
}

func (tr *TaskRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, done := observe(ctx, tr.telemetry, "Delete", database.TasksTable)
	defer func() { done(err) }()

	query, args, err := tr.db.QueryBuilder.Delete(database.TasksTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Delete", database.TasksTable, query, args)

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	return requireAffected(result, "task", id)
}

func (tr *TaskRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, tr.db, tr.telemetry, database.TasksTable, sq.Eq{"id": id.String()})
}
