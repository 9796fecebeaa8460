package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Hemali15f/BookNest/models"
)

const (
	bookCachePrefix  = "book:detail:"
	categoriesKeyFmt = "books:categories:v%d"
	cacheVersionKey  = "books:version"

	DefaultTTL = 10 * time.Minute
)

// BookCache is a best-effort read cache for catalog data. Every miss or Redis
// error falls through to the database; callers never see a cache failure.
type BookCache struct {
	redis  *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewBookCache(client *redis.Client, logger *zap.Logger) *BookCache {
	return &BookCache{
		redis:  client,
		logger: logger,
		ttl:    DefaultTTL,
	}
}

// GetBook retrieves a cached book detail.
func (c *BookCache) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, bool) {
	data, err := c.redis.Get(ctx, bookCachePrefix+id.String()).Result()
	if err != nil {
		return nil, false
	}

	var book models.Book
	if err := json.Unmarshal([]byte(data), &book); err != nil {
		c.logger.Warn("failed to unmarshal cached book", zap.Error(err))
		return nil, false
	}
	return &book, true
}

// SetBook caches a book detail.
func (c *BookCache) SetBook(ctx context.Context, book *models.Book) {
	data, err := json.Marshal(book)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, bookCachePrefix+book.ID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache book", zap.Error(err))
	}
}

// GetCategories retrieves the cached category list for the current version.
func (c *BookCache) GetCategories(ctx context.Context) ([]string, bool) {
	version, err := c.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, categoriesKey(version)).Result()
	if err != nil {
		return nil, false
	}

	var categories []string
	if err := json.Unmarshal([]byte(data), &categories); err != nil {
		return nil, false
	}
	return categories, true
}

// SetCategories caches the category list under the current version.
func (c *BookCache) SetCategories(ctx context.Context, categories []string) {
	version, err := c.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		if err != redis.Nil {
			return
		}
		version = 1
		if err := c.redis.Set(ctx, cacheVersionKey, version, 0).Err(); err != nil {
			return
		}
	}

	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, categoriesKey(version), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache categories", zap.Error(err))
	}
}

// Invalidate drops the detail entry for id and bumps the version so every
// versioned entry becomes unreachable. Called after any catalog mutation.
func (c *BookCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.redis.Del(ctx, bookCachePrefix+id.String()).Err(); err != nil {
		c.logger.Warn("failed to drop cached book", zap.Error(err))
	}
	if err := c.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		c.logger.Warn("failed to bump cache version", zap.Error(err))
	}
}

func categoriesKey(version int64) string {
	return fmt.Sprintf(categoriesKeyFmt, version)
}
