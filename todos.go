package edgekit

import (
	"context"
	"fmt"
	"strings"
)

// TodoService implements the todo resource semantics on top of a
// TodoRepo. It owns input validation and the check-then-act sequencing;
// the repo owns SQL. The existence checks are not atomic with the write
// that follows: two concurrent requests against the same id may
// interleave. That race is accepted, matching the per-request-only
// ordering guarantee of the backends.
type TodoService struct {
	repo TodoRepo
}

func NewTodoService(repo TodoRepo) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context) ([]Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Create inserts a todo with the trimmed title and completed=false, then
// re-reads the row by its generated id. The round trip is required
// because the insert does not return the full row.
func (s *TodoService) Create(ctx context.Context, title string) (Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Todo{}, fmt.Errorf("create todo: %w: title is required", ErrInvalidInput)
	}

	id, err := s.repo.Insert(ctx, title)
	if err != nil {
		return Todo{}, fmt.Errorf("create todo: %w", err)
	}

	todo, err := s.repo.Get(ctx, id)
	if err != nil {
		return Todo{}, fmt.Errorf("create todo: read back %d: %w", id, err)
	}

	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, id int64) (Todo, error) {
	todo, err := s.repo.Get(ctx, id)
	if err != nil {
		return Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return todo, nil
}

// Update applies a partial update. Only the fields present in the patch
// change; an empty patch skips the write entirely and returns the row
// unchanged. A supplied title is trimmed and must be non-empty, so that
// a title is never stored empty.
func (s *TodoService) Update(ctx context.Context, id int64, patch TodoPatch) (Todo, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Todo{}, fmt.Errorf("update todo %d: %w", id, err)
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return Todo{}, fmt.Errorf("update todo %d: %w: title is required", id, ErrInvalidInput)
		}
		patch.Title = &trimmed
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return Todo{}, fmt.Errorf("update todo %d: %w", id, err)
	}

	todo, err := s.repo.Get(ctx, id)
	if err != nil {
		return Todo{}, fmt.Errorf("update todo %d: read back: %w", id, err)
	}

	return todo, nil
}

// Delete looks the todo up first and reports ErrNotFound for an absent
// id, so that deletes of missing todos are distinguishable from
// successful ones.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	return nil
}
