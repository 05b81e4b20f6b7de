package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/folioworks/profile-service/internal/modules/model"
)

// ProfileCache is a read-through cache for fully-loaded profiles, keyed by
// user id. It is strictly best-effort: a cache failure degrades to a
// database read and is never surfaced to the caller. All methods are safe
// on a nil receiver, which is how caching is disabled.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *ProfileCache {
	return &ProfileCache{rdb: rdb, ttl: ttl, log: log}
}

func profileKey(id uint) string {
	return fmt.Sprintf("profile:%d", id)
}

func (c *ProfileCache) Get(ctx context.Context, id uint) (*model.User, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("profile cache read failed", zap.Uint("user_id", id), zap.Error(err))
		}
		return nil, false
	}

	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		c.log.Warn("profile cache entry corrupt", zap.Uint("user_id", id), zap.Error(err))
		return nil, false
	}
	return &u, true
}

func (c *ProfileCache) Set(ctx context.Context, u *model.User) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(u)
	if err != nil {
		c.log.Warn("profile cache encode failed", zap.Uint("user_id", u.ID), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, profileKey(u.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("profile cache write failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}
}

func (c *ProfileCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, profileKey(id)).Err(); err != nil {
		c.log.Warn("profile cache invalidate failed", zap.Uint("user_id", id), zap.Error(err))
	}
}
