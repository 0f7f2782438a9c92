package memcache_fx

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"mothwallet/internal/config"
	mem "mothwallet/pkg/memcache"
)

// limiterIdleTTL is how long a login key may stay silent before its limiter
// is dropped.
const limiterIdleTTL = 15 * time.Minute

var Module = fx.Options(
	fx.Provide(provideLoginLimiter),
	fx.Invoke(scheduleSweep),
)

func provideLoginLimiter(cfg *config.Config) (*mem.LoginLimiterStore, mem.LoginLimiter) {
	store := mem.NewLoginLimiter(cfg.Auth.LoginAttemptsPerMinute, cfg.Auth.LoginBurst)
	return store, store
}

func scheduleSweep(lc fx.Lifecycle, cfg *config.Config, store *mem.LoginLimiterStore, log *zap.Logger) error {
	c := cron.New()
	if _, err := c.AddFunc(cfg.Auth.LimiterSweep, func() {
		if removed := store.Sweep(limiterIdleTTL); removed > 0 {
			log.Debug("login limiter swept", zap.Int("removed", removed), zap.Int("remaining", store.Len()))
		}
	}); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}
