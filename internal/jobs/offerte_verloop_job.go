package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OfferteVerloopJobName is the name of the offerte expiry job
const OfferteVerloopJobName = "offerte_verloop"

// OfferteExpiryService marks sent offertes past their geldig-tot date as
// verlopen. The interface keeps the job decoupled from the service package.
type OfferteExpiryService interface {
	MarkVerlopen(ctx context.Context, before time.Time) (int, error)
}

// OfferteVerloopJob expires sent offertes whose validity window has passed
type OfferteVerloopJob struct {
	offerteService OfferteExpiryService
	logger         *zap.Logger
	timeout        time.Duration
}

func NewOfferteVerloopJob(offerteService OfferteExpiryService, logger *zap.Logger, timeout time.Duration) *OfferteVerloopJob {
	return &OfferteVerloopJob{
		offerteService: offerteService,
		logger:         logger,
		timeout:        timeout,
	}
}

// Run executes the expiry sweep. Called by the scheduler.
func (j *OfferteVerloopJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	expired, err := j.offerteService.MarkVerlopen(ctx, start)
	if err != nil {
		j.logger.Error("offerte expiry sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("offerte expiry sweep completed",
		zap.Int("expired", expired),
		zap.Duration("duration", time.Since(start)))
}

// RegisterOfferteVerloopJob registers the expiry job with the scheduler.
// The cronExpr should be a valid cron expression (e.g., "0 0 6 * * *" for
// six in the morning, daily).
func RegisterOfferteVerloopJob(scheduler *Scheduler, offerteService OfferteExpiryService, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewOfferteVerloopJob(offerteService, logger, timeout)
	return scheduler.AddJob(OfferteVerloopJobName, cronExpr, job.Run)
}
