package jobs

import (
	"context"
	"time"

	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/service"
	"go.uber.org/zap"
)

// ScheduledSendJobName is the scheduler name of the scheduled send job
const ScheduledSendJobName = "scheduled_send"

// Dispatcher delivers scheduled sends that are due
type Dispatcher interface {
	DispatchDue(ctx context.Context, limit int) (service.DispatchResult, error)
}

// ScheduledSendJob mails approved submissions whose scheduled time has passed
type ScheduledSendJob struct {
	dispatcher Dispatcher
	logger     *zap.Logger
	timeout    time.Duration
	batch      int
}

func NewScheduledSendJob(dispatcher Dispatcher, logger *zap.Logger, timeout time.Duration, batch int) *ScheduledSendJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	if batch <= 0 {
		batch = 50
	}
	return &ScheduledSendJob{
		dispatcher: dispatcher,
		logger:     logger,
		timeout:    timeout,
		batch:      batch,
	}
}

// Run performs one dispatch pass bounded by the job timeout
func (j *ScheduledSendJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	result, err := j.dispatcher.DispatchDue(ctx, j.batch)
	if err != nil {
		j.logger.Error("scheduled send job failed",
			zap.Error(err),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if result.Due == 0 {
		return
	}
	j.logger.Info("scheduled send job completed",
		zap.Int("due", result.Due),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterScheduledSendJob adds the job to the scheduler when it is enabled
func RegisterScheduledSendJob(scheduler *Scheduler, dispatcher Dispatcher, cfg *config.JobsConfig, logger *zap.Logger) error {
	if !cfg.ScheduledSendEnabled {
		logger.Info("scheduled send job disabled")
		return nil
	}
	job := NewScheduledSendJob(dispatcher, logger, cfg.ScheduledSendTimeoutDuration(), cfg.ScheduledSendBatch)
	return scheduler.AddJob(ScheduledSendJobName, cfg.ScheduledSendCron, job.Run)
}
