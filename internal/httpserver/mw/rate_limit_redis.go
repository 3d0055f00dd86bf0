package mw

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

const redisLimiterPrefix = "bookmarks:ratelimit:"

// RedisLimiter counts requests per key in fixed windows stored in Redis,
// so several replicas share one budget. Redis failures let requests through.
type RedisLimiter struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
	log    logger.Logger
}

func NewRedisLimiter(rdb redis.Cmdable, limit int, window time.Duration, log logger.Logger) *RedisLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, log: log}
}

func (l *RedisLimiter) key(client string, now time.Time) string {
	slot := now.UnixNano() / int64(l.window)
	return redisLimiterPrefix + client + ":" + strconv.FormatInt(slot, 10)
}

func (l *RedisLimiter) Allow(ctx context.Context, client string, now time.Time) Decision {
	key := l.key(client, now)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		l.log.Warn("rate limiter unavailable, allowing request",
			logger.String("client", client),
			logger.Error(err))
		return Decision{OK: true, Limit: l.limit, Remaining: l.limit}
	}

	count := int(incr.Val())
	if count <= l.limit {
		return Decision{OK: true, Limit: l.limit, Remaining: l.limit - count}
	}

	windowEnd := time.Unix(0, (now.UnixNano()/int64(l.window)+1)*int64(l.window))
	retry := int(windowEnd.Sub(now).Seconds() + 0.999)
	if retry < 1 {
		retry = 1
	}
	return Decision{Limit: l.limit, RetryAfterSec: retry}
}
