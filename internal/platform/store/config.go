package store

import (
	"time"

	"todoapi/internal/platform/config"
)

// Config aggregates backend configuration
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs
	ConnectAttempts int
	PingTimeout     time.Duration
}

// FromConf reads SERVICE_PGSQL_* keys. DBURL is required
func FromConf(c config.Conf) Config {
	pc := c.Prefix("SERVICE_PGSQL_")
	return Config{
		AppName: c.MayString("APP_NAME", "todoapi"),
		PG: PGConfig{
			Enabled:         true,
			URL:             pc.MustString("DBURL"),
			MaxConns:        int32(pc.MayInt("MAX_CONNS", 8)),
			LogSQL:          pc.MayBool("LOG_SQL", false),
			SlowQueryMs:     pc.MayInt("SLOW_MS", 200),
			ConnectAttempts: pc.MayInt("CONNECT_ATTEMPTS", 20),
			PingTimeout:     3 * time.Second,
		},
	}
}
