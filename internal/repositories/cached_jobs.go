package repositories

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-board/internal/domain/events"
	"github.com/maxaizer/job-board/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	"sync"
	"time"
)

type jobRepository interface {
	Add(ctx context.Context, job *models.JobPosting) error
	GetByID(ctx context.Context, id string) (*models.JobPosting, error)
	Find(ctx context.Context, filter models.JobFilter) ([]models.JobPosting, error)
	Update(ctx context.Context, id string, fields map[string]any) (bool, bool, error)
	Remove(ctx context.Context, id string) error
}

// CachedJobs keeps recently read postings in memory. Entries are dropped as soon as
// a JobChanged event for the posting is published.
type CachedJobs struct {
	jobRepository
	cache *gocache.Cache

	// generation is bumped on every invalidation. A read only fills the cache when
	// no invalidation happened while it was in flight.
	mu         sync.Mutex
	generation uint64
}

func NewCachedJobs(repo jobRepository, bus EventBus.Bus) (*CachedJobs, error) {
	c := &CachedJobs{jobRepository: repo, cache: gocache.New(5*time.Minute, 10*time.Minute)}
	if err := bus.Subscribe(events.JobChangedTopic, c.onJobChanged); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CachedJobs) GetByID(ctx context.Context, id string) (*models.JobPosting, error) {
	if value, found := c.cache.Get(id); found {
		job := value.(models.JobPosting)
		return &job, nil
	}

	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	job, err := c.jobRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == generation {
		c.cache.SetDefault(id, *job)
	}
	c.mu.Unlock()
	return job, nil
}

func (c *CachedJobs) Update(ctx context.Context, id string, fields map[string]any) (bool, bool, error) {
	defer c.invalidate(id)
	return c.jobRepository.Update(ctx, id, fields)
}

func (c *CachedJobs) Remove(ctx context.Context, id string) error {
	defer c.invalidate(id)
	return c.jobRepository.Remove(ctx, id)
}

func (c *CachedJobs) onJobChanged(event events.JobChanged) {
	c.invalidate(event.JobID)
}

func (c *CachedJobs) invalidate(id string) {
	c.mu.Lock()
	c.generation++
	c.cache.Delete(id)
	c.mu.Unlock()
}
