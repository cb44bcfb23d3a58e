package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// redisUp is 1 when the last ping to the rate limit Redis succeeded, else 0.
	redisUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "leasedesk",
		Subsystem: "redis",
		Name:      "up",
		Help:      "Redis/Valkey availability (1=up, 0=down).",
	})
	// redisPingSeconds observes redis ping latency in seconds.
	redisPingSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "leasedesk",
		Subsystem: "redis",
		Name:      "ping_seconds",
		Help:      "Redis/Valkey ping latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// SetRedisUp sets the redis_up gauge to 1/0.
func SetRedisUp(up bool) {
	if up {
		redisUp.Set(1)
		return
	}
	redisUp.Set(0)
}

// ObserveRedisPing records a redis ping latency in seconds.
func ObserveRedisPing(seconds float64) { redisPingSeconds.Observe(seconds) }
