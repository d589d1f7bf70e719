// Package scheduler runs periodic maintenance of the in-process schedule cache.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/segyhp/debt-planner/internal/schedule"
)

// Scheduler owns the cron runner and the jobs registered on it
type Scheduler struct {
	cron   *cron.Cron
	cache  *schedule.Cache
	logger *zap.Logger
}

func New(cache *schedule.Cache, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		cache:  cache,
		logger: logger,
	}
}

// RegisterCachePurge schedules PurgeCache on the given six-field cron spec.
// An empty spec leaves the cache unpurged.
func (s *Scheduler) RegisterCachePurge(spec string) error {
	if spec == "" {
		return nil
	}
	_, err := s.cron.AddFunc(spec, s.PurgeCache)
	if err != nil {
		return err
	}
	s.logger.Info("cache purge job scheduled", zap.String("spec", spec))
	return nil
}

// PurgeCache logs cache usage and empties it
func (s *Scheduler) PurgeCache() {
	stats := s.cache.Stats()
	s.cache.Purge()

	s.logger.Info("schedule cache purged",
		zap.Int("entries", stats.Entries),
		zap.Int("capacity", stats.Capacity),
		zap.Uint64("hits", stats.Hits),
		zap.Uint64("misses", stats.Misses),
	)
}

// Len returns the number of registered jobs
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the runner and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
