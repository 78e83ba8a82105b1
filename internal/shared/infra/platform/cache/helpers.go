package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const opTimeout = 200 * time.Millisecond

// BestEffortSet actualiza la caché con un timeout corto. Un fallo solo se
// registra: la caché nunca decide el resultado de una petición.
func BestEffortSet(ctx context.Context, cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opTimeout)
	defer cancel()

	if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
		log.Warn("Cache update failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// BestEffortDelete invalida una clave con las mismas garantías que BestEffortSet.
func BestEffortDelete(ctx context.Context, cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opTimeout)
	defer cancel()

	if err := cache.Delete(cacheCtx, key); err != nil {
		log.Warn("Cache deletion failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
