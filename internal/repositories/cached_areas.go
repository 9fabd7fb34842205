package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type areasRepository interface {
	GetByName(ctx context.Context, name string) (*models.Area, error)
	GetRegionByName(ctx context.Context, countryID string, name string) (*models.Area, error)
	Countries(ctx context.Context) ([]models.Area, error)
}

// CachedAreas memoizes lookups that hit the area table on every filter dialog step.
// Misses are not cached so a refresh of the reference data is picked up immediately.
type CachedAreas struct {
	repo  areasRepository
	cache *gocache.Cache
}

func NewCachedAreas(repo areasRepository) *CachedAreas {
	return &CachedAreas{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedAreas) GetByName(ctx context.Context, name string) (*models.Area, error) {
	return c.cached("name:"+models.NormalizeName(name), func() (*models.Area, error) {
		return c.repo.GetByName(ctx, name)
	})
}

func (c *CachedAreas) GetRegionByName(ctx context.Context, countryID string, name string) (*models.Area, error) {
	return c.cached("region:"+countryID+":"+models.NormalizeName(name), func() (*models.Area, error) {
		return c.repo.GetRegionByName(ctx, countryID, name)
	})
}

func (c *CachedAreas) Countries(ctx context.Context) ([]models.Area, error) {
	if value, found := c.cache.Get("countries"); found {
		return value.([]models.Area), nil
	}

	countries, err := c.repo.Countries(ctx)
	if err == nil && len(countries) > 0 {
		c.cache.SetDefault("countries", countries)
	}
	return countries, err
}

// Flush drops every cached lookup, used after the reference data is replaced.
func (c *CachedAreas) Flush() {
	c.cache.Flush()
}

func (c *CachedAreas) cached(key string, load func() (*models.Area, error)) (*models.Area, error) {
	if value, found := c.cache.Get(key); found {
		area := value.(models.Area)
		return &area, nil
	}

	area, err := load()
	if area != nil {
		c.cache.SetDefault(key, *area)
	}
	return area, err
}
