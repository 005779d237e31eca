package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCron schedules every registered job and starts the scheduler.
// A job error is logged; the schedule keeps running.
func StartCron(log logrus.FieldLogger) (*cron.Cron, error) {
	c := cron.New()
	for name, j := range Jobs() {
		name, run := name, j.Run
		_, err := c.AddFunc(j.Schedule, func() {
			entry := log.WithField("job", name)
			entry.Info("Cron job started.")
			if err := run(); err != nil {
				entry.WithError(err).Error("Cron job failed.")
				return
			}
			entry.Info("Cron job finished.")
		})
		if err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		log.WithFields(logrus.Fields{"job": name, "schedule": j.Schedule}).Info("Cron job scheduled.")
	}
	c.Start()
	return c, nil
}
