package cron

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"inventory.GO/config"
	"inventory.GO/core/lock"
	"inventory.GO/service/seed"
)

// DenormalizeRefreshJob rebuilds items_denormalized from the current items.
const DenormalizeRefreshJob = "denormalizerefresh"

var (
	registerOnce sync.Once

	// jobDB is opened on the first job run and shared by every later run.
	jobDBMu sync.Mutex
	jobDB   *gorm.DB
)

// RegisterDefaultJobs registers the built-in jobs with their configured schedules.
func RegisterDefaultJobs(cfg *config.Config) {
	registerOnce.Do(func() {
		Register(DenormalizeRefreshJob, cfg.Cron.DenormalizeSchedule, func(...string) error {
			db, err := sharedDB()
			if err == nil {
				err = DenormalizeRefresh(context.Background(), db, cfg)
			}
			if err != nil {
				config.LogError(config.GetLogger(), "cron", DenormalizeRefreshJob, "denormalize refresh failed", nil, err)
			}
			return err
		})
	})
}

func sharedDB() (*gorm.DB, error) {
	jobDBMu.Lock()
	defer jobDBMu.Unlock()
	if jobDB != nil {
		return jobDB, nil
	}
	db, err := config.NewDB()
	if err != nil {
		return nil, err
	}
	jobDB = db
	return jobDB, nil
}

// DenormalizeRefresh takes the seed lock and rebuilds the denormalized snapshot.
func DenormalizeRefresh(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	release, err := lock.Obtain(ctx, config.RedisLocker(), lock.SeedKey, cfg.Seed.LockTTL)
	if err != nil {
		return err
	}
	defer release()

	res, err := seed.Denormalize(ctx, db, seed.DenormalizeOptions{
		BatchSize: cfg.Seed.BatchSize,
		Rebuild:   true,
		Logger:    config.GetLogger().WithField("job", DenormalizeRefreshJob),
	})
	if err != nil {
		return err
	}
	config.GetLogger().WithFields(logrus.Fields{
		"written": res.Written,
		"skipped": res.Skipped,
		"elapsed": res.Elapsed,
	}).Info("Denormalized snapshot rebuilt.")
	return nil
}
