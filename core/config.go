package core

import "time"

// Config llamalend config
type Config struct {
	App     App      `json:"app"`
	Stats   Stats    `json:"stats"`
	Cache   Cache    `json:"cache"`
	Markets []Market `json:"markets"`
}

// App app config
type App struct {
	Network string `json:"network"`
	Port    int    `json:"port"`
}

// Stats statistics api config
type Stats struct {
	EndPoint string `json:"end_point"`
	// Timeout seconds
	Timeout int64 `json:"timeout"`
	// RefreshInterval seconds between cache warmer runs, zero disables it
	RefreshInterval int64 `json:"refresh_interval"`
}

// TimeoutDuration request timeout
func (s Stats) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// RefreshDuration warmer interval
func (s Stats) RefreshDuration() time.Duration {
	return time.Duration(s.RefreshInterval) * time.Second
}

// Cache memoized cache config
type Cache struct {
	Size int `json:"size"`
	// MaxAge seconds
	MaxAge int64 `json:"max_age"`
}

// MaxAgeDuration entry lifetime
func (c Cache) MaxAgeDuration() time.Duration {
	return time.Duration(c.MaxAge) * time.Second
}

// FindMarket find market by name
func (c *Config) FindMarket(name string) (*Market, bool) {
	for idx := range c.Markets {
		if c.Markets[idx].Name == name {
			return &c.Markets[idx], true
		}
	}

	return nil, false
}
