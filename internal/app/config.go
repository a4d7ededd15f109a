package app

import (
	"time"

	"github.com/luminakids/storyreel-backend/internal/platform/envutil"
)

type Config struct {
	HTTPAddr string

	// Optional integrations. Empty values disable the integration and the
	// app degrades instead of failing to boot.
	GenAPIBaseURL string
	GCSBucket     string
	RedisAddr     string
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:      envutil.Str("HTTP_ADDR", ":8080"),
		GenAPIBaseURL: envutil.Str("GENAPI_BASE_URL", ""),
		GCSBucket:     envutil.Str("GCS_BUCKET_NAME", ""),
		RedisAddr:     envutil.Str("REDIS_ADDR", ""),
	}
}

// PublishTickInterval is how often due assignments are released.
func (c Config) PublishTickInterval() time.Duration {
	return envutil.Dur("PUBLISH_TICK_INTERVAL", time.Minute)
}

// PublishTickEnabled lets operators pause the release loop, for example
// while backfilling assignments.
func (c Config) PublishTickEnabled() bool {
	return envutil.Bool("PUBLISH_TICK_ENABLED", true)
}
