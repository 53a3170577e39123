package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/taskpad/taskpad/internal/model"
	"github.com/taskpad/taskpad/internal/pkg/dbutil"
	appErr "github.com/taskpad/taskpad/internal/pkg/errors"
)

var todoColumns = []string{"id", "user_id", "text", "priority", "complete", "ctime", "mtime"}

type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

func (r *TodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	data := map[string]interface{}{
		"id":       todo.ID,
		"user_id":  todo.UserID,
		"text":     todo.Text,
		"priority": todo.Priority,
		"complete": todo.Complete,
		"ctime":    todo.Ctime,
		"mtime":    todo.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("todos", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	where := map[string]interface{}{"user_id": userID}
	sqlStr, args, err := builder.BuildSelect("todos", where, todoColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	todos := make([]model.Todo, 0)
	for rows.Next() {
		var todo model.Todo
		if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Text, &todo.Priority, &todo.Complete, &todo.Ctime, &todo.Mtime); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// GetByID loads a todo without an owner filter; ownership is judged by
// the service so a mismatch can surface as forbidden instead of not
// found.
func (r *TodoRepo) GetByID(ctx context.Context, todoID string) (*model.Todo, error) {
	where := map[string]interface{}{"id": todoID}
	sqlStr, args, err := builder.BuildSelect("todos", where, todoColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var todo model.Todo
	if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Text, &todo.Priority, &todo.Complete, &todo.Ctime, &todo.Mtime); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepo) SetComplete(ctx context.Context, userID, todoID string, complete bool, mtime int64) error {
	where := map[string]interface{}{"id": todoID, "user_id": userID}
	update := map[string]interface{}{"complete": complete, "mtime": mtime}
	sqlStr, args, err := builder.BuildUpdate("todos", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *TodoRepo) Delete(ctx context.Context, userID, todoID string) error {
	where := map[string]interface{}{"id": todoID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("todos", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
