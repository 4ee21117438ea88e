package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"persons/internal/country/models"
)

const (
	listKey     = "persons:countries:list"
	idKeyPrefix = "persons:countries:id:"
)

// Store is the country persistence contract shared by every backend.
type Store interface {
	CreateIfNameAvailable(ctx context.Context, c *models.Country) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Country, error)
	FindByName(ctx context.Context, name string) (*models.Country, error)
	List(ctx context.Context) ([]*models.Country, error)
	Count(ctx context.Context) (int, error)
}

// Cached is a read-through Redis cache in front of another Store. List and
// FindByID are cached; a successful create drops the list entry. Redis
// failures fall back to the inner store.
type Cached struct {
	inner  Store
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(inner Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *Cached) CreateIfNameAvailable(ctx context.Context, country *models.Country) error {
	if err := c.inner.CreateIfNameAvailable(ctx, country); err != nil {
		return err
	}
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		c.warn(ctx, "country cache invalidation failed", err)
	}
	return nil
}

func (c *Cached) FindByID(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	key := idKeyPrefix + id.String()
	var cached models.Country
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}
	country, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, country)
	return country, nil
}

// FindByName is not cached; it only runs on the create path.
func (c *Cached) FindByName(ctx context.Context, name string) (*models.Country, error) {
	return c.inner.FindByName(ctx, name)
}

func (c *Cached) List(ctx context.Context) ([]*models.Country, error) {
	var cached []*models.Country
	if c.get(ctx, listKey, &cached) {
		return cached, nil
	}
	countries, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, listKey, countries)
	return countries, nil
}

func (c *Cached) Count(ctx context.Context) (int, error) {
	return c.inner.Count(ctx)
}

func (c *Cached) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warn(ctx, "country cache read failed", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.warn(ctx, "country cache entry corrupt", err)
		return false
	}
	return true
}

func (c *Cached) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.warn(ctx, "country cache write failed", err)
	}
}

func (c *Cached) warn(ctx context.Context, msg string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, "error", err)
	}
}
