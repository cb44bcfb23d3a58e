package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv             string
	AppAddr            string
	CORSAllowedOrigins []string

	// RedisAddr selects the shared rate limit store; empty keeps counters in memory.
	RedisAddr string
	RedisDB   int

	SendRateLimit  int
	SendRateWindow time.Duration

	LandlordName  string
	LandlordPhone string
	LandlordEmail string

	DurationToleranceDays int
	SeedTemplates         bool
}

func Load() (Config, error) {
	c := Config{}

	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppAddr = getEnv("APP_ADDR", ":8080")
	c.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	c.RedisAddr = getEnv("REDIS_ADDR", "")
	c.RedisDB = getInt("REDIS_DB", 0)

	c.SendRateLimit = getInt("SEND_RATE_LIMIT", 20)
	c.SendRateWindow = getDuration("SEND_RATE_WINDOW", time.Minute)

	c.LandlordName = getEnv("LANDLORD_NAME", "")
	c.LandlordPhone = getEnv("LANDLORD_PHONE", "")
	c.LandlordEmail = getEnv("LANDLORD_EMAIL", "")

	c.DurationToleranceDays = getInt("DURATION_TOLERANCE_DAYS", 3)
	c.SeedTemplates = getBool("SEED_TEMPLATES", true)

	if c.SendRateLimit <= 0 {
		return Config{}, fmt.Errorf("SEND_RATE_LIMIT must be positive, got %d", c.SendRateLimit)
	}
	if c.SendRateWindow <= 0 {
		return Config{}, fmt.Errorf("SEND_RATE_WINDOW must be positive, got %s", c.SendRateWindow)
	}
	if c.DurationToleranceDays < 0 {
		return Config{}, fmt.Errorf("DURATION_TOLERANCE_DAYS must not be negative, got %d", c.DurationToleranceDays)
	}
	return c, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	if len(res) == 0 {
		return []string{"*"}
	}
	return res
}

func (c Config) String() string {
	redis := c.RedisAddr
	if redis == "" {
		redis = "memory"
	}
	return fmt.Sprintf("env=%s addr=%s ratelimit=%s(%d/%s) seed=%t", c.AppEnv, c.AppAddr, redis, c.SendRateLimit, c.SendRateWindow, c.SeedTemplates)
}
