package jobs

import (
	"context"
	"time"

	"github.com/groenwerk/offerte-api/internal/boekhouding"
	"github.com/groenwerk/offerte-api/internal/domain"
	"go.uber.org/zap"
)

// BoekhoudingSyncJobName is the name of the payment reconciliation job
const BoekhoudingSyncJobName = "boekhouding_sync"

// FactuurReconciliationService exposes the factuur operations the
// reconciliation job needs.
type FactuurReconciliationService interface {
	ListOpen(ctx context.Context) ([]domain.Factuur, error)
	MarkBetaald(ctx context.Context, factuur *domain.Factuur, betaaldOp time.Time) error
}

// BetalingBron looks up settled payments in the accounting export
type BetalingBron interface {
	LookupBetalingen(ctx context.Context, factuurNummers []string) (map[string]boekhouding.Betaling, error)
	IsEnabled() bool
}

// BoekhoudingSyncJob reconciles open facturen against the accounting
// export: facturen with a settled payment row are marked betaald.
type BoekhoudingSyncJob struct {
	factuurService FactuurReconciliationService
	bron           BetalingBron
	logger         *zap.Logger
	timeout        time.Duration
}

func NewBoekhoudingSyncJob(factuurService FactuurReconciliationService, bron BetalingBron, logger *zap.Logger, timeout time.Duration) *BoekhoudingSyncJob {
	return &BoekhoudingSyncJob{
		factuurService: factuurService,
		bron:           bron,
		logger:         logger,
		timeout:        timeout,
	}
}

// Run executes the reconciliation. Called by the scheduler.
func (j *BoekhoudingSyncJob) Run() {
	if j.bron == nil || !j.bron.IsEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	open, err := j.factuurService.ListOpen(ctx)
	if err != nil {
		j.logger.Error("failed to list open facturen for reconciliation", zap.Error(err))
		return
	}
	if len(open) == 0 {
		return
	}

	nummers := make([]string, len(open))
	for i := range open {
		nummers[i] = open[i].FactuurNummer
	}

	betalingen, err := j.bron.LookupBetalingen(ctx, nummers)
	if err != nil {
		j.logger.Error("failed to look up betalingen",
			zap.Error(err),
			zap.Int("open_facturen", len(open)))
		return
	}

	var settled, failed int
	for i := range open {
		betaling, ok := betalingen[open[i].FactuurNummer]
		if !ok {
			continue
		}
		if err := j.factuurService.MarkBetaald(ctx, &open[i], betaling.BetaaldOp); err != nil {
			j.logger.Error("failed to mark factuur betaald",
				zap.Error(err),
				zap.String("factuur_nummer", open[i].FactuurNummer))
			failed++
			continue
		}
		settled++
	}

	j.logger.Info("boekhouding reconciliation completed",
		zap.Int("open_facturen", len(open)),
		zap.Int("settled", settled),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterBoekhoudingSyncJob registers the reconciliation job with the
// scheduler (e.g., "0 */30 * * * *" for every half hour).
func RegisterBoekhoudingSyncJob(scheduler *Scheduler, factuurService FactuurReconciliationService, bron BetalingBron, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewBoekhoudingSyncJob(factuurService, bron, logger, timeout)
	return scheduler.AddJob(BoekhoudingSyncJobName, cronExpr, job.Run)
}
