package main

import (
	"nway-cache/cache"
	"nway-cache/logging"
	"nway-cache/replacement"
)

func main() {
	logger := logging.CreateDebugLogger()

	userCache, err := cache.New[string, string](*logger, cache.Options[string]{
		CacheSizeSlots: 1024,
		NWay:           2,
		OffsetBits:     3,
		Replacement:    replacement.LRU,
	})

	if err != nil {
		logger.Error().Err(err).Msg("failed to create cache")
		return
	}

	if err := userCache.Put("user:42", "alice"); err != nil {
		logger.Error().Err(err).Msg("failed to put value")
		return
	}

	if value, ok := userCache.Get("user:42"); ok {
		logger.Info().Msgf("user:42 -> %s", value)
	}

	switch userCache.Delete("user:42", "alice") {
	case cache.Deleted:
		logger.Info().Msg("user:42 deleted")
	case cache.DeleteNoMatch:
		logger.Info().Msg("user:42 value did not match")
	case cache.DeleteNotFound:
		logger.Info().Msg("user:42 not cached")
	}
}
