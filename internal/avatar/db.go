package avatar

import (
	"context"

	"github.com/taskpad/taskpad/internal/repo"
)

type dbStore struct {
	avatars *repo.AvatarRepo
}

func (s *dbStore) Type() string {
	return "db"
}

func (s *dbStore) Save(ctx context.Context, key, userID string, data []byte) error {
	return s.avatars.Save(ctx, key, userID, data)
}

func (s *dbStore) Load(ctx context.Context, key string) ([]byte, error) {
	return s.avatars.Get(ctx, key)
}

func (s *dbStore) Delete(ctx context.Context, key string) error {
	return s.avatars.Delete(ctx, key)
}
