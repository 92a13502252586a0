package upstream_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"ltctrack/internal/config"
	"ltctrack/internal/services"
	mem "ltctrack/pkg/memcache"
)

// Module wires the third-party lookups: exchange prices and chain data.
var Module = fx.Provide(
	providePriceService, provideAddressLookup)

func providePriceService(cfg *config.Config, cache mem.PriceStore, log *zap.Logger) services.PriceServiceInterface {
	source := services.NewBinanceClient(cfg.BinanceBaseURL, cfg.UpstreamTimeout)
	return services.NewPriceService(source, cache, cfg.PriceCacheTTL, log)
}

func provideAddressLookup(cfg *config.Config) services.AddressLookup {
	return services.NewBlockCypherClient(cfg.BlockCypherBaseURL, cfg.UpstreamTimeout)
}
