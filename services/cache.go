package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// TTL por tipo de dato cacheado
const (
	TTLEstadisticas = 5 * time.Minute
	TTLColeccion    = 1 * time.Minute
)

// CacheService es la capa de cache con expiración sobre Redis. Se construye
// una sola vez en el arranque y se inyecta a los services que la necesitan;
// nadie toca las entradas por fuera de Get/Set/Invalidate.
type CacheService struct {
	rdb    *redis.Client
	prefix string
}

// NewCacheService crea la capa de cache con el prefijo de namespace dado
func NewCacheService(rdb *redis.Client, prefix string) *CacheService {
	if prefix == "" {
		prefix = "socios"
	}
	return &CacheService{rdb: rdb, prefix: prefix}
}

func (c *CacheService) key(k string) string {
	return c.prefix + ":" + k
}

// Set serializa y guarda un valor con el TTL dado
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), data, ttl).Err()
}

// Get deserializa el valor en target. Devuelve false si la clave no existe
// o ya expiró (Redis desaloja las entradas vencidas por su cuenta).
func (c *CacheService) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), target); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate borra todas las claves que contengan pattern; con pattern vacío
// borra todas las claves del namespace.
func (c *CacheService) Invalidate(ctx context.Context, pattern string) error {
	match := c.prefix + ":*"
	if pattern != "" {
		match = c.prefix + ":*" + pattern + "*"
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
