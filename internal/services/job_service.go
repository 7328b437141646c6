package services

import (
	"context"
	"fmt"
	"time"

	"bdvail/internal/storage"
	"bdvail/internal/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JobService runs the sandbox's periodic maintenance.
type JobService struct {
	Bookings storage.BookingStore
	Now      func() time.Time
}

func (s JobService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CompletePastBookings marks confirmed trips whose date has passed as
// completed.
func (s JobService) CompletePastBookings(ctx context.Context) (int64, error) {
	today := utils.FormatDate(s.now())
	n, err := s.Bookings.CompletePast(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("status sweep: %w", err)
	}
	utils.Log.WithFields(logrus.Fields{
		"module":  "jobs",
		"action":  "status_sweep",
		"today":   today,
		"updated": n,
	}).Info("status sweep finished")
	return n, nil
}

// StartStatusSweep schedules CompletePastBookings with a cron spec such as
// "@every 15m". Stop the returned scheduler on shutdown.
func StartStatusSweep(spec string, job JobService) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := job.CompletePastBookings(ctx); err != nil {
			utils.Log.WithError(err).WithField("module", "jobs").Error("status sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule status sweep %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
