package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sabordecasa/pedidos/internal/catalog/domain"
	"github.com/sabordecasa/pedidos/internal/catalog/ports"
)

const (
	productsKey    = "catalog:produtos"
	complementsKey = "catalog:complementos"
)

// CachedCatalogRepository is a read-through cache over the catalog. Cache
// failures are logged and fall through to the inner repository; the cache is
// never load-bearing.
type CachedCatalogRepository struct {
	inner  ports.CatalogRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedCatalogRepository(inner ports.CatalogRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCatalogRepository {
	return &CachedCatalogRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if c.readCached(ctx, productsKey, &products) {
		return products, nil
	}

	products, err := c.inner.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	c.writeCached(ctx, productsKey, products)
	return products, nil
}

// ReplaceProducts writes through to the inner repository and drops both cached
// keys so the next read sees the new catalog.
func (c *CachedCatalogRepository) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	if err := c.inner.ReplaceProducts(ctx, products); err != nil {
		return err
	}

	if err := c.client.Del(ctx, productsKey, complementsKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate catalog cache", "error", err)
	}
	return nil
}

func (c *CachedCatalogRepository) ListComplements(ctx context.Context) ([]domain.Complement, error) {
	var complements []domain.Complement
	if c.readCached(ctx, complementsKey, &complements) {
		return complements, nil
	}

	complements, err := c.inner.ListComplements(ctx)
	if err != nil {
		return nil, err
	}

	c.writeCached(ctx, complementsKey, complements)
	return complements, nil
}

func (c *CachedCatalogRepository) readCached(ctx context.Context, key string, dest any) bool {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.WarnContext(ctx, "catalog cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedCatalogRepository) writeCached(ctx context.Context, key string, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode catalog cache entry", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}
}
