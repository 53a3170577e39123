package service

import (
	"context"
	"strings"

	"github.com/taskpad/taskpad/internal/model"
	appErr "github.com/taskpad/taskpad/internal/pkg/errors"
	"github.com/taskpad/taskpad/internal/pkg/timeutil"
	"github.com/taskpad/taskpad/internal/repo"
)

type TodoService struct {
	todos *repo.TodoRepo
}

func NewTodoService(todos *repo.TodoRepo) *TodoService {
	return &TodoService{todos: todos}
}

type TodoCreateInput struct {
	Text     string
	Priority int
}

// Create forces the owner reference to the caller; any owner value a
// client submits is ignored. This is where write-side isolation lives.
func (s *TodoService) Create(ctx context.Context, userID string, input TodoCreateInput) (*model.Todo, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, appErr.ErrInvalid
	}
	if input.Priority < model.PriorityLow || input.Priority > model.PriorityHigh {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	todo := &model.Todo{
		ID:       newID(),
		UserID:   userID,
		Text:     text,
		Priority: input.Priority,
		Complete: false,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

// Delete removes the caller's own todo and returns it. A todo owned by
// someone else is forbidden, not hidden: the record exists, the caller
// just has no claim on it.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, appErr.ErrForbidden
	}
	if err := s.todos.Delete(ctx, userID, todoID); err != nil {
		return nil, err
	}
	return todo, nil
}

// ToggleComplete flips the completion flag and returns the updated
// todo. Applying it twice restores the original value.
func (s *TodoService) ToggleComplete(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, appErr.ErrForbidden
	}
	todo.Complete = !todo.Complete
	todo.Mtime = timeutil.NowUnix()
	if err := s.todos.SetComplete(ctx, userID, todoID, todo.Complete, todo.Mtime); err != nil {
		return nil, err
	}
	return todo, nil
}
