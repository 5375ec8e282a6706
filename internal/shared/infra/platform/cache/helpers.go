package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedUtils "github.com/davicafu/hexadmin/internal/shared/infra/utils"
)

const asyncTimeout = 200 * time.Millisecond

// AsyncCacheSet actualiza caché en background sin bloquear
func AsyncCacheSet(ctx context.Context, cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		// Dispara y olvida: la petición original puede haber terminado ya.
		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncTimeout)
		defer cancel()

		if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
			log.Warn("Cache update failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

// AsyncCacheDelete elimina de caché en background
func AsyncCacheDelete(ctx context.Context, cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncTimeout)
		defer cancel()

		if err := cache.Delete(cacheCtx, key); err != nil {
			log.Warn("Cache deletion failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

// GetOrLoad aplica cache-aside: intenta la caché, si no carga con reintentos
// (ErrNotFound no se reintenta) y actualiza la caché en background.
func GetOrLoad[T any](ctx context.Context, cache Cache, key string, ttl int, log *zap.Logger, load func(ctx context.Context) (T, error)) (T, error) {
	// 1. Intentar obtener de la caché
	if cache != nil {
		var cached T
		if hit, err := cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		} else if err != nil {
			log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	// 2. Si es 'miss', ir al repositorio con reintentos
	var item T
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var errLoad error
		item, errLoad = load(ctx)
		if errors.Is(errLoad, sharedDomain.ErrNotFound) {
			return sharedUtils.Permanent(errLoad)
		}
		return errLoad
	})
	if err != nil {
		var zero T
		return zero, err
	}

	// 3. Actualizar caché en segundo plano para la próxima vez
	AsyncCacheSet(ctx, cache, key, item, ttl, log)
	return item, nil
}
