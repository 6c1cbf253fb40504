package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonicbridge/library"
)

func newTestJob(t *testing.T, folders ...library.Folder) *scanJob {
	t.Helper()
	db, err := library.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, library.Migrate(db))
	store := library.New(db, zerolog.Nop())
	return &scanJob{
		scanner: library.NewScanner(store, zerolog.Nop(), ""),
		folders: folders,
		log:     zerolog.Nop(),
	}
}

func TestStartSchedulerDisabled(t *testing.T) {
	c, err := startScheduler(context.Background(), "", newTestJob(t))
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStartSchedulerInvalidSchedule(t *testing.T) {
	_, err := startScheduler(context.Background(), "not a schedule", newTestJob(t))
	assert.Error(t, err)
}

func TestStartScheduler(t *testing.T) {
	c, err := startScheduler(context.Background(), "0 3 * * *", newTestJob(t))
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}

func TestStartupScanCanBeAwaited(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "song.mp3"), []byte("x"), 0o644))
	job := newTestJob(t, library.Folder{Name: "Music", Path: root})

	require.NoError(t, startupScan(context.Background(), job).Wait())

	// The first scan has released the scanner and left its songs behind.
	stats, err := job.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Songs)
	assert.Zero(t, stats.Removed)
}

func TestStartupScanReportsFailure(t *testing.T) {
	job := newTestJob(t, library.Folder{Path: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, startupScan(context.Background(), job).Wait())
}

func TestScanJobRecordsMetrics(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "song.mp3"), []byte("x"), 0o644))

	okBefore := testutil.ToFloat64(scansTotal.WithLabelValues("ok"))
	stats, err := newTestJob(t, library.Folder{Name: "Music", Path: root}).run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Songs)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(scansTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(catalogItems.WithLabelValues("song")))

	failedBefore := testutil.ToFloat64(scansTotal.WithLabelValues("failed"))
	_, err = newTestJob(t, library.Folder{Path: filepath.Join(root, "missing")}).run(context.Background())
	require.Error(t, err)
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(scansTotal.WithLabelValues("failed")))
}

func TestRecordScanSkipped(t *testing.T) {
	before := testutil.ToFloat64(scansTotal.WithLabelValues("skipped"))
	recordScan(library.ScanStats{}, library.ErrScanInProgress)
	recordScan(library.ScanStats{}, errors.Join(errors.New("wrapped"), library.ErrScanInProgress))
	assert.Equal(t, before+2, testutil.ToFloat64(scansTotal.WithLabelValues("skipped")))
}
