package config

import (
	"errors"
	"fmt"
	"time"

	"slights/kv"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	BindAddress string

	// Store backend, in order of precedence: direct Redis, Upstash-style
	// REST credentials, or the in-memory store for local play.
	RedisAddr     string
	RedisPassword string
	KVRestURL     string
	KVRestToken   string
	Memory        bool

	CORSOrigin string

	// Client polling knobs.
	RoomPollInterval   time.Duration
	WinnerPollInterval time.Duration
	RevealTimeout      time.Duration
}

// SetDefaults registers the default values; flags and SLIGHTS_* env vars
// override them through viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("bind", "0.0.0.0")
	v.SetDefault("redis-addr", "")
	v.SetDefault("redis-password", "")
	v.SetDefault("kv-rest-url", "")
	v.SetDefault("kv-rest-token", "")
	v.SetDefault("memory", false)
	v.SetDefault("cors-origin", "*")
	v.SetDefault("room-poll-interval", 5*time.Second)
	v.SetDefault("winner-poll-interval", time.Second)
	v.SetDefault("reveal-timeout", 5*time.Second)
}

func Load(v *viper.Viper) *Config {
	return &Config{
		Port:               v.GetString("port"),
		BindAddress:        v.GetString("bind"),
		RedisAddr:          v.GetString("redis-addr"),
		RedisPassword:      v.GetString("redis-password"),
		KVRestURL:          v.GetString("kv-rest-url"),
		KVRestToken:        v.GetString("kv-rest-token"),
		Memory:             v.GetBool("memory"),
		CORSOrigin:         v.GetString("cors-origin"),
		RoomPollInterval:   v.GetDuration("room-poll-interval"),
		WinnerPollInterval: v.GetDuration("winner-poll-interval"),
		RevealTimeout:      v.GetDuration("reveal-timeout"),
	}
}

// InitStore picks the key-value backend. Missing credentials are a fatal
// configuration error, not something retried per request.
func InitStore(cfg *Config) (kv.Store, string, error) {
	switch {
	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0, // use default DB
		})
		return kv.NewRedisStore(client), fmt.Sprintf("redis (%s)", cfg.RedisAddr), nil
	case cfg.KVRestURL != "" && cfg.KVRestToken != "":
		return kv.NewUpstashStore(cfg.KVRestURL, cfg.KVRestToken), "rest", nil
	case cfg.KVRestURL != "" || cfg.KVRestToken != "":
		return nil, "", errors.New("both kv-rest-url and kv-rest-token must be provided together")
	case cfg.Memory:
		return kv.NewMemoryStore(), "memory", nil
	default:
		return nil, "", errors.New("no store configured: set redis-addr, kv-rest-url/kv-rest-token, or memory")
	}
}
