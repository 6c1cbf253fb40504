package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sonicbridge/library"
)

// scanJob rescans the configured music folders.
type scanJob struct {
	scanner *library.Scanner
	folders []library.Folder
	log     zerolog.Logger
}

func (j *scanJob) run(ctx context.Context) (library.ScanStats, error) {
	stats, err := j.scanner.Scan(ctx, j.folders)
	recordScan(stats, err)
	switch {
	case errors.Is(err, library.ErrScanInProgress):
		j.log.Info().Msg("Scan skipped: a scan is already in progress.")
	case err != nil:
		j.log.Error().Err(err).Msg("Library scan failed")
	}
	return stats, err
}

// startupScan runs job once in the background. Wait on the returned group
// before closing the store.
func startupScan(ctx context.Context, job *scanJob) *errgroup.Group {
	var g errgroup.Group
	g.Go(func() error {
		_, err := job.run(ctx)
		return err
	})
	return &g
}

// startScheduler runs job on schedule until ctx is done. An empty schedule
// returns a nil scheduler.
func startScheduler(ctx context.Context, schedule string, job *scanJob) (*cron.Cron, error) {
	if schedule == "" {
		job.log.Info().Msg("Scheduled library scan is disabled.")
		return nil, nil
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		job.log.Info().Msg("Cron job triggered: starting scheduled scan of all libraries.")
		job.run(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule library scan %q: %w", schedule, err)
	}
	c.Start()
	job.log.Info().Str("schedule", schedule).Msg("Scheduled library scan started")
	return c, nil
}
