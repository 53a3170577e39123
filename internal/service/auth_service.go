package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/taskpad/taskpad/internal/avatar"
	"github.com/taskpad/taskpad/internal/model"
	appErr "github.com/taskpad/taskpad/internal/pkg/errors"
	"github.com/taskpad/taskpad/internal/pkg/jwt"
	"github.com/taskpad/taskpad/internal/pkg/password"
	"github.com/taskpad/taskpad/internal/pkg/timeutil"
	"github.com/taskpad/taskpad/internal/repo"
)

// AuthService owns registration, login, token resolution and profile
// edits. Resolved identities are cached per user id; the cache TTL
// bounds how long a profile edit made elsewhere can stay visible with
// stale data.
type AuthService struct {
	users     *repo.UserRepo
	revoked   *repo.RevokedTokenRepo
	avatars   avatar.Store
	jwtSecret []byte
	jwtTTL    time.Duration
	cache     *expirable.LRU[string, *model.Identity]
}

func NewAuthService(users *repo.UserRepo, revoked *repo.RevokedTokenRepo, avatars avatar.Store, secret []byte, ttl time.Duration, cacheSize int, cacheTTL time.Duration) *AuthService {
	var cache *expirable.LRU[string, *model.Identity]
	if cacheSize > 0 && cacheTTL > 0 {
		cache = expirable.NewLRU[string, *model.Identity](cacheSize, nil, cacheTTL)
	}
	return &AuthService{
		users:     users,
		revoked:   revoked,
		avatars:   avatars,
		jwtSecret: secret,
		jwtTTL:    ttl,
		cache:     cache,
	}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Avatar      []byte
	ContentType string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.Identity, string, error) {
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		AvatarKey:    avatar.NewKey(),
		AvatarType:   input.ContentType,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.avatars.Save(ctx, user.AvatarKey, user.ID, input.Avatar); err != nil {
		return nil, "", err
	}
	if err := s.users.Create(ctx, user); err != nil {
		_ = s.avatars.Delete(ctx, user.AvatarKey)
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	identity := s.identityOf(user, input.Avatar)
	return identity, token, nil
}

// Login deliberately collapses "no such user" and "wrong password"
// into the same failure so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", appErr.ErrInvalidCredentials
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", appErr.ErrInvalidCredentials
	}
	return jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
}

// Resolve verifies a bearer token and materializes the caller identity
// with the avatar already in transport-safe encoded form.
func (s *AuthService) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	claims, err := jwt.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, appErr.ErrUnauthorized
	}
	if claims.ID != "" {
		revoked, err := s.revoked.Exists(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, appErr.ErrUnauthorized
		}
	}
	if s.cache != nil {
		if identity, ok := s.cache.Get(claims.UserID); ok {
			return identity, nil
		}
	}
	identity, err := s.Identity(ctx, claims.UserID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUnauthorized
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(identity.ID, identity)
	}
	return identity, nil
}

// Revoke puts the token's jti on the deny set until the token would
// have expired on its own.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	claims, err := jwt.ParseToken(token, s.jwtSecret)
	if err != nil {
		return appErr.ErrUnauthorized
	}
	if claims.ID == "" {
		return appErr.ErrUnauthorized
	}
	expiresAt := timeutil.NowUnix() + int64(s.jwtTTL/time.Second)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Unix()
	}
	return s.revoked.Create(ctx, &model.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: expiresAt,
		Ctime:     timeutil.NowUnix(),
	})
}

// Identity loads a user and encodes the avatar for transport.
func (s *AuthService) Identity(ctx context.Context, userID string) (*model.Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	data, err := s.avatars.Load(ctx, user.AvatarKey)
	if err != nil && !appErr.IsNotFound(err) {
		return nil, err
	}
	return s.identityOf(user, data), nil
}

type ProfileUpdateInput struct {
	Name        string
	Email       string
	Password    string
	Avatar      []byte
	ContentType string
}

// UpdateProfile applies only the fields that were supplied. The
// password is re-hashed solely when a new one arrives; an absent
// password must never overwrite a valid credential.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*model.Identity, error) {
	update := map[string]interface{}{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Email != "" {
		update["email"] = input.Email
	}
	if input.Password != "" {
		hash, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		update["password_hash"] = hash
	}
	var oldAvatarKey string
	if input.Avatar != nil {
		current, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		oldAvatarKey = current.AvatarKey
		key := avatar.NewKey()
		if err := s.avatars.Save(ctx, key, userID, input.Avatar); err != nil {
			return nil, err
		}
		update["avatar_key"] = key
		update["avatar_type"] = input.ContentType
	}
	if len(update) > 0 {
		update["mtime"] = timeutil.NowUnix()
		if err := s.users.UpdateFields(ctx, userID, update); err != nil {
			return nil, err
		}
	}
	if oldAvatarKey != "" {
		// best effort, a stale blob is harmless
		_ = s.avatars.Delete(ctx, oldAvatarKey)
	}
	if s.cache != nil {
		s.cache.Remove(userID)
	}
	return s.Identity(ctx, userID)
}

func (s *AuthService) identityOf(user *model.User, avatarData []byte) *model.Identity {
	return &model.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Avatar: model.AvatarPayload{
			Data:        avatar.Encode(avatarData),
			ContentType: user.AvatarType,
		},
		Ctime: user.Ctime,
		Mtime: user.Mtime,
	}
}
