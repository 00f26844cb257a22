package utils

import (
	"os"
	"strconv"

	"github.com/iamvtyagi/flashLearn/internal/logger"
)

func GetEnv(key, fallback string, log *logger.Logger) string {
	val := os.Getenv(key)
	if val == "" {
		log.Debug("Env var not set, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	return val
}

func GetEnvAsInt(key string, fallback int, log *logger.Logger) int {
	val := os.Getenv(key)
	if val == "" {
		log.Debug("Env var not set, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Warn("Env var is not an integer, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	return n
}
