package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/edgekit"
)

type todoRepo struct {
	pool *pgxpool.Pool
}

func (r *todoRepo) List(ctx context.Context) ([]edgekit.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, completed, created_at, updated_at
		FROM todos
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []edgekit.Todo{}
	for rows.Next() {
		var t edgekit.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list todos: scan: %w", err)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (r *todoRepo) Get(ctx context.Context, id int64) (edgekit.Todo, error) {
	var t edgekit.Todo
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, completed, created_at, updated_at
		FROM todos
		WHERE id = $1`, id).Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return edgekit.Todo{}, edgekit.ErrNotFound
		}
		return edgekit.Todo{}, fmt.Errorf("get todo: %w", err)
	}

	return t, nil
}

func (r *todoRepo) Insert(ctx context.Context, title string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO todos (title)
		VALUES ($1)
		RETURNING id`, title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	return id, nil
}

func (r *todoRepo) Update(ctx context.Context, id int64, patch edgekit.TodoPatch) error {
	sets := []string{}
	args := []any{}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Completed != nil {
		args = append(args, *patch.Completed)
		sets = append(sets, fmt.Sprintf("completed = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE todos SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update todo: %w", edgekit.ErrNotFound)
	}

	return nil
}

func (r *todoRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete todo: %w", edgekit.ErrNotFound)
	}

	return nil
}
