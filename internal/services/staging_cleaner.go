package services

import (
	"github.com/maxaizer/job-board/internal/logger"
	"github.com/maxaizer/job-board/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"time"
)

// StagingCleaner removes staged photos left behind by uploads that never finished.
type StagingCleaner struct {
	dir    string
	maxAge time.Duration
	cron   *cron.Cron
}

func NewStagingCleaner(dir string, maxAge time.Duration) (*StagingCleaner, error) {

	if maxAge <= 0 {
		return nil, errors.New("max age of staged files must be greater than zero")
	}

	sc := &StagingCleaner{
		dir:    dir,
		maxAge: maxAge,
		cron:   cron.New(),
	}

	_, err := sc.cron.AddFunc("@hourly", sc.cleanStagedFiles)
	if err != nil {
		return nil, err
	}

	sc.cron.Start()
	log.Infof("staging cleaner started, dir: %s, max age: %v", dir, maxAge)
	return sc, nil
}

func (sc *StagingCleaner) Stop() {
	<-sc.cron.Stop().Done()
}

func (sc *StagingCleaner) cleanStagedFiles() {
	removed, err := sc.removeOlderThan(time.Now().Add(-sc.maxAge))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeFs).Errorf("failed to clean staged files: %v", err)
		return
	}
	if removed > 0 {
		log.Infof("removed %d stale staged files", removed)
	}
}

func (sc *StagingCleaner) removeOlderThan(expirationTime time.Time) (int, error) {
	entries, err := os.ReadDir(sc.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(expirationTime) {
			continue
		}
		if err = os.Remove(filepath.Join(sc.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
		metrics.StagedFilesRemovedCounter.Inc()
	}
	return removed, nil
}
