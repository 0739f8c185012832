package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSnapshotTimeout bounds a single snapshot run.
const DefaultSnapshotTimeout = 5 * time.Minute

// Snapshotter stores today's summary of every portfolio.
type Snapshotter interface {
	TakeSnapshots(ctx context.Context) (int, error)
}

// SnapshotJob records daily portfolio snapshots.
type SnapshotJob struct {
	snapshots Snapshotter
	timeout   time.Duration
	log       zerolog.Logger
}

// NewSnapshotJob creates a new snapshot job. A timeout below one second uses DefaultSnapshotTimeout.
func NewSnapshotJob(snapshots Snapshotter, timeout time.Duration, log zerolog.Logger) *SnapshotJob {
	if timeout < time.Second {
		timeout = DefaultSnapshotTimeout
	}
	return &SnapshotJob{
		snapshots: snapshots,
		timeout:   timeout,
		log:       log.With().Str("job", "portfolio_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "portfolio_snapshot"
}

// Run values every portfolio and stores the result.
func (j *SnapshotJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := time.Now()
	written, err := j.snapshots.TakeSnapshots(ctx)

	j.log.Info().
		Int("written", written).
		Dur("duration", time.Since(start)).
		Msg("Snapshot run finished")

	return err
}
