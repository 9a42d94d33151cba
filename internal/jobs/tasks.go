package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fingate/fingate/internal/ledger"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsWarmup pre-builds the current period financial reports so
	// the first dashboard hit after cache expiry does not pay the build cost.
	TaskReportsWarmup = "reports:warmup"
)

// ReportsWarmupPayload selects the period kind to warm.
type ReportsWarmupPayload struct {
	Kind string `json:"kind"`
}

// NewReportsWarmupTask constructs an Asynq task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}

// ReportsWarmupJob rebuilds the snapshot and cash flow caches.
type ReportsWarmupJob struct {
	Reports *ledger.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(reports *ledger.Service, logger *slog.Logger) *ReportsWarmupJob {
	return &ReportsWarmupJob{
		Reports: reports,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Kind == "" {
		payload.Kind = "monthly"
	}

	logger := j.logger().With(slog.String("kind", payload.Kind))
	started := j.clock()
	period := j.Reports.ResolvePeriod(payload.Kind, "")

	if _, err := j.Reports.Snapshot(ctx, period); err != nil {
		logger.Error("warm snapshot", slog.Any("error", err))
		return err
	}
	if _, err := j.Reports.CashFlowStatement(ctx, period); err != nil {
		logger.Error("warm cash flow", slog.Any("error", err))
		return err
	}

	logger.Info("reports warmed",
		slog.String("period", period.Label()),
		slog.Duration("took", j.clock().Sub(started)))
	return nil
}

func (j *ReportsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
