// Package avatar keeps user avatar bytes behind an opaque key and owns
// the binary-to-text boundary: raw bytes live in a store, base64 only
// appears when an identity is serialized for transport.
package avatar

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/taskpad/taskpad/internal/config"
	"github.com/taskpad/taskpad/internal/repo"
)

type Store interface {
	Save(ctx context.Context, key, userID string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Type() string
}

func New(cfg config.AvatarStoreConfig, db *sql.DB) (Store, error) {
	switch cfg.Type {
	case "db":
		return &dbStore{avatars: repo.NewAvatarRepo(db)}, nil
	case "local":
		return newLocalStore(cfg.Dir)
	case "s3":
		return newS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported avatar store type: %s", cfg.Type)
	}
}

// NewKey returns a fresh opaque storage key.
func NewKey() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func Decode(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}
