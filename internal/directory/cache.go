package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Richard-avalos/legendme-login-svc/internal/logger"
)

const profileKeyPrefix = "profile:"

// CachedClient wraps a Client with a redis cache for FindByEmail, the one
// read-heavy lookup (every local login fetches a display name). Writes
// through the client invalidate the cached entry. Cache failures are never
// surfaced; the client call is the source of truth.
type CachedClient struct {
	*Client
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedClient(client *Client, redisClient *redis.Client, ttl time.Duration) *CachedClient {
	return &CachedClient{Client: client, redis: redisClient, ttl: ttl}
}

func (c *CachedClient) key(email string) string {
	return profileKeyPrefix + email
}

func (c *CachedClient) FindByEmail(ctx context.Context, email string) (Profile, error) {
	if cached, err := c.redis.Get(ctx, c.key(email)).Result(); err == nil {
		var profile Profile
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			return profile, nil
		}
	} else if err != redis.Nil {
		logger.Warn("profile cache read failed", map[string]any{"error": err.Error()})
	}

	profile, err := c.Client.FindByEmail(ctx, email)
	if err != nil {
		return Profile{}, err
	}

	if data, err := json.Marshal(profile); err == nil {
		if err := c.redis.Set(ctx, c.key(email), data, c.ttl).Err(); err != nil {
			logger.Warn("profile cache write failed", map[string]any{"error": err.Error()})
		}
	}
	return profile, nil
}

func (c *CachedClient) CreateLocalUser(ctx context.Context, params CreateLocalUserParams) (Profile, error) {
	profile, err := c.Client.CreateLocalUser(ctx, params)
	if err != nil {
		return Profile{}, err
	}
	c.invalidate(ctx, params.Email)
	return profile, nil
}

func (c *CachedClient) UpsertGoogleUser(ctx context.Context, params GoogleUserParams) (Profile, error) {
	profile, err := c.Client.UpsertGoogleUser(ctx, params)
	if err != nil {
		return Profile{}, err
	}
	c.invalidate(ctx, params.Email)
	return profile, nil
}

func (c *CachedClient) invalidate(ctx context.Context, email string) {
	if err := c.redis.Del(ctx, c.key(email)).Err(); err != nil {
		logger.Warn("profile cache invalidation failed", map[string]any{"error": err.Error()})
	}
}
