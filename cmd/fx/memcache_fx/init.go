package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	mem "ltctrack/pkg/memcache"
)

const purgeEvery = time.Hour

var Module = fx.Options(
	fx.Provide(provideMemcacheClient),
	fx.Invoke(runPurge),
)

func provideMemcacheClient() mem.PriceStore {
	return mem.NewPriceCache()
}

// runPurge drops expired prices so days nobody asks for again do not pile up.
func runPurge(lc fx.Lifecycle, store mem.PriceStore, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(purgeEvery)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := store.Purge(); n > 0 {
							log.Debug("purged cached prices", zap.Int("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
