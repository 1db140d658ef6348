package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/robfig/cron/v3"

	"github.com/sebuszqo/BeBetterWeb/internal/logging"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/domain"
	refErrors "github.com/sebuszqo/BeBetterWeb/internal/reference/errors"
)

const (
	DefaultRefreshInterval = 10 * time.Second
	DefaultFetchTimeout    = 5 * time.Second
)

const (
	collectionCategories = "categories"
	collectionTags       = "tags"
)

type CacheConfig struct {
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
}

type cacheState int32

const (
	stateUninitialized cacheState = iota
	stateInitializing
	stateReady
)

type LastRefreshed struct {
	Categories *time.Time `json:"categories"`
	Tags       *time.Time `json:"tags"`
}

type Status struct {
	IsInitialized   bool          `json:"isInitialized"`
	CategoriesCount int           `json:"categoriesCount"`
	TagsCount       int           `json:"tagsCount"`
	LastRefreshed   LastRefreshed `json:"lastRefreshed"`
}

// ReferenceCache keeps categories and tags in memory and re-reads both tables
// on a fixed interval. Reads never touch the database.
type ReferenceCache struct {
	categoryRepo domain.CategoryRepository
	tagRepo      domain.TagRepository
	cfg          CacheConfig

	categories *collection[domain.Category]
	tags       *collection[domain.Tag]

	state atomic.Int32

	// mu serializes Initialize and Destroy. Lock order is mu, then refreshMu.
	mu        sync.Mutex
	refreshMu sync.Mutex
	scheduler *cron.Cron
}

func NewReferenceCache(categoryRepo domain.CategoryRepository, tagRepo domain.TagRepository, cfg CacheConfig) *ReferenceCache {
	if categoryRepo == nil || tagRepo == nil {
		panic("Category and tag repositories must not be nil")
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	return &ReferenceCache{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		cfg:          cfg,
		categories:   newCollection(collectionCategories, domain.CategoryID),
		tags:         newCollection(collectionTags, domain.TagID),
	}
}

// Initialize loads both collections and starts the periodic refresh. A failed
// initial load is logged and leaves the cache empty but ready, so startup is
// never blocked by the database. Calls after the first are no-ops.
func (c *ReferenceCache) Initialize(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cacheState(c.state.Load()) != stateUninitialized {
		return
	}
	c.state.Store(int32(stateInitializing))

	c.refreshMu.Lock()
	err := c.fetchAndSwap(ctx)
	c.refreshMu.Unlock()
	if err != nil {
		log.WithError(err).Warn("Initial reference data load incomplete, serving what was loaded until the next refresh")
	}

	c.startScheduler()
	c.state.Store(int32(stateReady))

	log.WithFields(log.Fields{
		"categories": c.categories.count(),
		"tags":       c.tags.count(),
		"interval":   c.cfg.RefreshInterval.String(),
	}).Info("Reference cache initialized")
}

// Refresh re-reads both collections now. A collection whose fetch fails keeps
// its previous data; the returned error joins the individual fetch errors.
func (c *ReferenceCache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if cacheState(c.state.Load()) == stateUninitialized {
		return refErrors.ErrNotInitialized
	}
	return c.fetchAndSwap(ctx)
}

// Destroy stops the scheduler, waits for a running refresh and drops all data.
func (c *ReferenceCache) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Store(int32(stateUninitialized))

	if c.scheduler != nil {
		<-c.scheduler.Stop().Done()
		c.scheduler = nil
		log.Info("Reference cache destroyed")
	}

	c.refreshMu.Lock()
	c.categories.clear()
	c.tags.clear()
	c.refreshMu.Unlock()
}

func (c *ReferenceCache) Categories() []domain.Category {
	return c.categories.all()
}

func (c *ReferenceCache) Tags() []domain.Tag {
	return c.tags.all()
}

func (c *ReferenceCache) CategoryByID(id string) (domain.Category, bool) {
	return c.categories.byID(id)
}

func (c *ReferenceCache) TagByID(id string) (domain.Tag, bool) {
	return c.tags.byID(id)
}

// CategoriesByIDs silently skips ids that are not cached.
func (c *ReferenceCache) CategoriesByIDs(ids []string) []domain.Category {
	return c.categories.byIDs(ids)
}

// TagsByIDs silently skips ids that are not cached.
func (c *ReferenceCache) TagsByIDs(ids []string) []domain.Tag {
	return c.tags.byIDs(ids)
}

// ResolveCategories is CategoriesByIDs that also reports the unknown ids.
func (c *ReferenceCache) ResolveCategories(ids []string) ([]domain.Category, []string) {
	return c.categories.resolve(ids)
}

func (c *ReferenceCache) ResolveTags(ids []string) ([]domain.Tag, []string) {
	return c.tags.resolve(ids)
}

func (c *ReferenceCache) Status() Status {
	return Status{
		IsInitialized:   cacheState(c.state.Load()) == stateReady,
		CategoriesCount: c.categories.count(),
		TagsCount:       c.tags.count(),
		LastRefreshed: LastRefreshed{
			Categories: c.categories.lastRefreshed(),
			Tags:       c.tags.lastRefreshed(),
		},
	}
}

func (c *ReferenceCache) startScheduler() {
	logger := logging.NewCronLogger(log.Log)
	scheduler := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	scheduler.Schedule(every(c.cfg.RefreshInterval), cron.FuncJob(c.scheduledRefresh))
	scheduler.Start()
	c.scheduler = scheduler
}

func (c *ReferenceCache) scheduledRefresh() {
	err := c.Refresh(context.Background())
	if errors.Is(err, refErrors.ErrNotInitialized) {
		return
	}
	if err != nil {
		log.Debug("Scheduled reference refresh finished with errors, previous data kept")
	}
}

// fetchAndSwap must be called with refreshMu held.
func (c *ReferenceCache) fetchAndSwap(ctx context.Context) error {
	var wg sync.WaitGroup
	var categoriesErr, tagsErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		categoriesErr = refreshCollection(ctx, c.cfg.FetchTimeout, c.categories, c.categoryRepo.FindAll)
	}()
	go func() {
		defer wg.Done()
		tagsErr = refreshCollection(ctx, c.cfg.FetchTimeout, c.tags, c.tagRepo.FindAll)
	}()
	wg.Wait()

	return errors.Join(categoriesErr, tagsErr)
}

func refreshCollection[T any](ctx context.Context, timeout time.Duration, coll *collection[T], fetch func(context.Context) ([]T, error)) error {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	items, err := fetch(fetchCtx)
	if err != nil {
		log.WithError(err).WithField("collection", coll.name).Error("Error refreshing reference data, keeping previous snapshot")
		return &refErrors.FetchError{Collection: coll.name, Err: err}
	}

	coll.replace(items, time.Now())
	log.WithFields(log.Fields{"collection": coll.name, "count": len(items)}).Debug("Reference data refreshed")
	return nil
}

// every is a fixed-interval cron schedule without cron.Every's rounding to
// whole seconds.
type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}
