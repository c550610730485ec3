package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitIPPrefix is the Redis key prefix for per-IP buckets.
	rateLimitIPPrefix = "cloudtrim:ratelimit:ip:"
	// rateLimitIPTTL expires idle buckets.
	rateLimitIPTTL = 30 * time.Second
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// tokenBucketScript refills and consumes a token atomically.
// ARGV: rate (tokens/s), burst (capacity), now (ms), ttl (s).
// Returns {allowed, retry_after_ms, remaining}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(state[1]) or burst
local ts = tonumber(state[2]) or now

tokens = math.min(burst, tokens + ((now - ts) / 1000) * rate)

local allowed = 0
local wait = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
else
	wait = math.ceil(((1 - tokens) / rate) * 1000)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now)
redis.call('EXPIRE', key, ttl)

return {allowed, wait, math.floor(tokens)}
`)

// CheckIPRateLimit consumes one token from the bucket for ip.
// Raw IPs are hashed before they reach Redis.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	if ratePerSecond <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst)}, nil
	}

	key := rateLimitIPPrefix + hashIP(ip)
	res, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		ratePerSecond, burst, time.Now().UnixMilli(), int(rateLimitIPTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("token bucket: %w", err)
	}

	return parseBucketResult(res)
}

func parseBucketResult(res []int64) (*RateLimitResult, error) {
	if len(res) != 3 {
		return nil, fmt.Errorf("token bucket: unexpected reply length %d", len(res))
	}
	return &RateLimitResult{
		Allowed:    res[0] == 1,
		RetryAfter: time.Duration(res[1]) * time.Millisecond,
		Remaining:  res[2],
	}, nil
}

// hashIP creates a truncated SHA256 hash of an IP address.
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}
