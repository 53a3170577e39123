package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/taskpad/taskpad/internal/pkg/timeutil"
	"github.com/taskpad/taskpad/internal/repo"
)

// TokenCleanupJob drops revocation entries whose tokens have expired
// anyway; the deny set only needs to outlive the tokens it denies.
type TokenCleanupJob struct {
	revoked *repo.RevokedTokenRepo
}

func NewTokenCleanupJob(revoked *repo.RevokedTokenRepo) *TokenCleanupJob {
	return &TokenCleanupJob{revoked: revoked}
}

func (j *TokenCleanupJob) Name() string {
	return "revoked_token_cleanup"
}

func (j *TokenCleanupJob) Run(ctx context.Context) error {
	if j.revoked == nil {
		return nil
	}
	deleted, err := j.revoked.DeleteExpired(ctx, timeutil.NowUnix())
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("revoked tokens purged", zap.Int64("count", deleted))
	}
	return nil
}
