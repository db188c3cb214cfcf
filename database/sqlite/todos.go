package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sagarc03/edgekit"
)

type todoRepo struct {
	db *sql.DB
}

func scanTodo(scan func(...any) error) (edgekit.Todo, error) {
	var t edgekit.Todo
	var completed int
	var createdAt, updatedAt string

	if err := scan(&t.ID, &t.Title, &completed, &createdAt, &updatedAt); err != nil {
		return edgekit.Todo{}, err
	}

	t.Completed = completed != 0

	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return edgekit.Todo{}, fmt.Errorf("parse created_at: %w", err)
	}

	t.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return edgekit.Todo{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return t, nil
}

func (r *todoRepo) List(ctx context.Context) ([]edgekit.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, completed, created_at, updated_at
		FROM todos
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	todos := []edgekit.Todo{}
	for rows.Next() {
		t, scanErr := scanTodo(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("list todos: scan: %w", scanErr)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (r *todoRepo) Get(ctx context.Context, id int64) (edgekit.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, completed, created_at, updated_at
		FROM todos
		WHERE id = ?`, id)

	t, err := scanTodo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return edgekit.Todo{}, edgekit.ErrNotFound
		}
		return edgekit.Todo{}, fmt.Errorf("get todo: %w", err)
	}

	return t, nil
}

func (r *todoRepo) Insert(ctx context.Context, title string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (title, completed, created_at, updated_at)
		VALUES (?, 0, ?, ?)`, title, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert todo: last insert id: %w", err)
	}

	return id, nil
}

func (r *todoRepo) Update(ctx context.Context, id int64, patch edgekit.TodoPatch) error {
	sets := []string{}
	args := []any{}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Completed != nil {
		completed := 0
		if *patch.Completed {
			completed = 1
		}
		sets = append(sets, "completed = ?")
		args = append(args, completed)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano), id)

	query := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo: rows affected: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update todo: %w", edgekit.ErrNotFound)
	}

	return nil
}

func (r *todoRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: rows affected: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("delete todo: %w", edgekit.ErrNotFound)
	}

	return nil
}
