package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/siteglow/trafficlens/internal/cwv"
)

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Config is built once from the environment at startup and passed down
// explicitly; nothing reads env vars past this point.
type Config struct {
	Port         string
	HTTPTimeout  time.Duration
	LogLevel     slog.Level
	SitesAPIURL  string
	SitesAPIKey  string
	QueryAPIURL  string
	TrafficTable string
	MinPageviews int64
	Thresholds   cwv.Thresholds
	Minio        Minio
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}

	t := cwv.DefaultThresholds()
	t.LCPGood = envFloat("LCP_GOOD", t.LCPGood)
	t.LCPNeedsImprovement = envFloat("LCP_NEEDS_IMPROVEMENT", t.LCPNeedsImprovement)
	t.INPGood = envFloat("INP_GOOD", t.INPGood)
	t.INPNeedsImprovement = envFloat("INP_NEEDS_IMPROVEMENT", t.INPNeedsImprovement)
	t.CLSGood = envFloat("CLS_GOOD", t.CLSGood)
	t.CLSNeedsImprovement = envFloat("CLS_NEEDS_IMPROVEMENT", t.CLSNeedsImprovement)

	return Config{
		Port:         envOr("PORT", "8080"),
		HTTPTimeout:  to,
		LogLevel:     lvl,
		SitesAPIURL:  os.Getenv("SITES_API_URL"),
		SitesAPIKey:  os.Getenv("SITES_API_KEY"),
		QueryAPIURL:  os.Getenv("QUERY_API_URL"),
		TrafficTable: envOr("TRAFFIC_TABLE", "rum.paid_traffic"),
		MinPageviews: envInt64("MIN_PAGEVIEWS", 1000),
		Thresholds:   t,
		Minio: Minio{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    envOr("MINIO_BUCKET", "paid-traffic-cache"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
