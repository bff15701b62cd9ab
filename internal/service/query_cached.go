package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kpetrakis/catsnatch/internal/cache"
	"github.com/kpetrakis/catsnatch/internal/model"
)

// List entries invalidate on ingestion; point entries only age out, since
// a stored cat never changes.
const (
	listCacheSize   = 512
	listAbsoluteTTL = 5 * time.Minute
	listSlidingTTL  = 2 * time.Minute

	catCacheSize   = 2048
	catAbsoluteTTL = 30 * time.Minute
	catSlidingTTL  = 10 * time.Minute
)

// CachedCatQueries decorates CatQueries with a read-through cache. List
// results subscribe to the live invalidation token so an ingestion commit
// lazily evicts them on next access; point lookups carry no token.
type CachedCatQueries struct {
	inner  CatQueries
	lists  *cache.Cache[*model.PagedCats]
	byID   *cache.Cache[*model.Cat]
	tokens *cache.TokenSource
	log    *zap.Logger
}

// NewCachedCatQueries wraps inner with the standard list and point caches.
func NewCachedCatQueries(inner CatQueries, tokens *cache.TokenSource, log *zap.Logger) *CachedCatQueries {
	return &CachedCatQueries{
		inner:  inner,
		lists:  cache.New[*model.PagedCats]("cat_lists", listCacheSize, listAbsoluteTTL, listSlidingTTL),
		byID:   cache.New[*model.Cat]("cat_by_id", catCacheSize, catAbsoluteTTL, catSlidingTTL),
		tokens: tokens,
		log:    log,
	}
}

func listKey(page, pageSize int, tag string) string {
	if tag == "" {
		tag = "all"
	}
	return fmt.Sprintf("cats:page=%d:size=%d:tag=%s", page, pageSize, tag)
}

func catKey(id int64) string {
	return fmt.Sprintf("cats:id=%d", id)
}

// GetCats serves a list page from cache or reads through to the wrapped
// service. The token is captured before the upstream read so a trip racing
// with the miss still invalidates the freshly written entry.
func (c *CachedCatQueries) GetCats(ctx context.Context, page, pageSize int, tag string) (*model.PagedCats, error) {
	key := listKey(page, pageSize, tag)
	if res, ok := c.lists.Get(key); ok {
		c.log.Debug("cache hit", zap.String("key", key))
		return res, nil
	}
	c.log.Debug("cache miss", zap.String("key", key))
	token := c.tokens.Current()
	res, err := c.inner.GetCats(ctx, page, pageSize, tag)
	if err != nil {
		return nil, err
	}
	c.lists.Set(key, res, token)
	return res, nil
}

// GetCatByID serves a point lookup from cache or reads through. Absent
// results are not cached, so a later ingestion of that id is visible
// immediately.
func (c *CachedCatQueries) GetCatByID(ctx context.Context, id int64) (*model.Cat, error) {
	key := catKey(id)
	if res, ok := c.byID.Get(key); ok {
		c.log.Debug("cache hit", zap.String("key", key))
		return res, nil
	}
	c.log.Debug("cache miss", zap.String("key", key))
	res, err := c.inner.GetCatByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.byID.Set(key, res, nil)
	return res, nil
}
