package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/taskpad/taskpad/internal/pkg/dbutil"
	appErr "github.com/taskpad/taskpad/internal/pkg/errors"
	"github.com/taskpad/taskpad/internal/pkg/timeutil"
)

// AvatarRepo backs the default db avatar store: raw image bytes keyed
// by an opaque avatar key.
type AvatarRepo struct {
	db *sql.DB
}

func NewAvatarRepo(db *sql.DB) *AvatarRepo {
	return &AvatarRepo{db: db}
}

func (r *AvatarRepo) Save(ctx context.Context, key, userID string, data []byte) error {
	row := map[string]interface{}{
		"key":     key,
		"user_id": userID,
		"data":    data,
		"ctime":   timeutil.NowUnix(),
	}
	sqlStr, args, err := builder.BuildInsert("avatars", []map[string]interface{}{row})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AvatarRepo) Get(ctx context.Context, key string) ([]byte, error) {
	where := map[string]interface{}{"key": key}
	sqlStr, args, err := builder.BuildSelect("avatars", where, []string{"data"})
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
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *AvatarRepo) Delete(ctx context.Context, key string) error {
	sqlStr, args, err := builder.BuildDelete("avatars", map[string]interface{}{"key": key})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
