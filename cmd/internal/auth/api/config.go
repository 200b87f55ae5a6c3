package api

import (
	"os"
	"strconv"
	"strings"
)

const defaultMaxBodyBytes = 1 << 20

// MaxBodyBytesFromEnv reads TICK_AUTH_MAX_BODY_BYTES (default 1 MiB).
func MaxBodyBytesFromEnv() int64 {
	raw := strings.TrimSpace(os.Getenv("TICK_AUTH_MAX_BODY_BYTES"))
	if raw == "" {
		return defaultMaxBodyBytes
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBodyBytes
	}
	return n
}
