package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/agile-academy/academy_api/shared"
)

// RateLimitService is a fixed-window limiter on redis: one counter per
// client and window, INCR + EXPIRE. When redis is down requests pass
// through rather than failing closed.
type RateLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService

	limit  int64
	window time.Duration
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)

	svc.limit = 120
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			svc.limit = parsed
		}
	}
	svc.window = time.Minute

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	return nil
}

// Allow counts one hit for the key and reports whether it stays within
// the window's budget.
func (svc *RateLimitService) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(svc.window.Seconds()))

	count, err := svc.redisSvc.Increment(ctx, windowKey)
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, windowKey, svc.window); err != nil {
			log.WithError(err).Warn("Failed to set rate limit window expiry")
		}
	}

	return count <= svc.limit, nil
}

// Middleware limits by client IP.
func (svc *RateLimitService) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := svc.Allow(c.Context(), c.IP())
		if err != nil {
			log.WithError(err).Debug("Rate limiter unavailable, allowing request")
			return c.Next()
		}
		if !allowed {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too many requests", nil)
		}
		return c.Next()
	}
}
