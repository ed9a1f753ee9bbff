package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

const oauthStatePrefix = "oauth_state:"

// OAuthStateRepository stores short-lived OAuth state nonces in Redis so the
// callback can reject forged or replayed authorization responses.
type OAuthStateRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewOAuthStateRepository constructs an OAuth state repository.
func NewOAuthStateRepository(client *redis.Client, logger *zap.Logger) *OAuthStateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OAuthStateRepository{client: client, logger: logger}
}

// Save stores the state nonce with the given TTL.
func (r *OAuthStateRepository) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := r.client.Set(ctx, oauthStatePrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set oauth state: %w", err)
	}
	return nil
}

// Consume deletes the state nonce, failing when it is absent or expired. Each
// nonce is single-use.
func (r *OAuthStateRepository) Consume(ctx context.Context, state string) error {
	deleted, err := r.client.Del(ctx, oauthStatePrefix+state).Result()
	if err != nil {
		return fmt.Errorf("redis delete oauth state: %w", err)
	}
	if deleted == 0 {
		return appErrors.ErrStateMismatch
	}
	return nil
}
