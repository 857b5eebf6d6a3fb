package config

import (
	"fmt"

	"llamalend/core"

	"github.com/asaskevich/govalidator"
)

const (
	// DefaultEndPoint public statistics api
	DefaultEndPoint = "https://api.curve.fi/v1"
	// DefaultNetwork network name used by the statistics api
	DefaultNetwork = "ethereum"
	// DefaultCacheMaxAge five minutes
	DefaultCacheMaxAge int64 = 5 * 60
	// DefaultCacheSize cache capacity
	DefaultCacheSize = 2048
)

func defaults(cfg *core.Config) {
	if cfg.App.Network == "" {
		cfg.App.Network = DefaultNetwork
	}

	if cfg.App.Port == 0 {
		cfg.App.Port = 9000
	}

	if cfg.Stats.EndPoint == "" {
		cfg.Stats.EndPoint = DefaultEndPoint
	}

	if cfg.Stats.Timeout <= 0 {
		cfg.Stats.Timeout = 10
	}

	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = DefaultCacheSize
	}

	if cfg.Cache.MaxAge <= 0 {
		cfg.Cache.MaxAge = DefaultCacheMaxAge
	}
}

// Validate validate config
func Validate(cfg *core.Config) error {
	if !govalidator.IsURL(cfg.Stats.EndPoint) {
		return fmt.Errorf("invalid stats end point: %s", cfg.Stats.EndPoint)
	}

	for idx := range cfg.Markets {
		m := &cfg.Markets[idx]
		if err := m.Validate(); err != nil {
			return fmt.Errorf("market %s: %w", m.Name, err)
		}
	}

	return nil
}
