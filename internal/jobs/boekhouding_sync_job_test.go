package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/groenwerk/offerte-api/internal/boekhouding"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeFactuurService struct {
	open        []domain.Factuur
	listErr     error
	markErr     map[string]error
	markedPaid  []string
	markedTimes map[string]time.Time
}

func (f *fakeFactuurService) ListOpen(ctx context.Context) ([]domain.Factuur, error) {
	return f.open, f.listErr
}

func (f *fakeFactuurService) MarkBetaald(ctx context.Context, factuur *domain.Factuur, betaaldOp time.Time) error {
	if err, ok := f.markErr[factuur.FactuurNummer]; ok {
		return err
	}
	f.markedPaid = append(f.markedPaid, factuur.FactuurNummer)
	if f.markedTimes == nil {
		f.markedTimes = make(map[string]time.Time)
	}
	f.markedTimes[factuur.FactuurNummer] = betaaldOp
	return nil
}

type fakeBetalingBron struct {
	enabled    bool
	betalingen map[string]boekhouding.Betaling
	lookupErr  error
	lookedUp   [][]string
}

func (f *fakeBetalingBron) LookupBetalingen(ctx context.Context, factuurNummers []string) (map[string]boekhouding.Betaling, error) {
	f.lookedUp = append(f.lookedUp, factuurNummers)
	return f.betalingen, f.lookupErr
}

func (f *fakeBetalingBron) IsEnabled() bool {
	return f.enabled
}

func TestBoekhoudingSyncJob_MarksSettledFacturen(t *testing.T) {
	betaaldOp := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	svc := &fakeFactuurService{
		open: []domain.Factuur{
			{FactuurNummer: "HV-2026-001"},
			{FactuurNummer: "HV-2026-002"},
			{FactuurNummer: "GO-2026-001"},
		},
	}
	bron := &fakeBetalingBron{
		enabled: true,
		betalingen: map[string]boekhouding.Betaling{
			"HV-2026-001": {FactuurNummer: "HV-2026-001", BetaaldOp: betaaldOp, Bedrag: 1210.00},
			"GO-2026-001": {FactuurNummer: "GO-2026-001", BetaaldOp: betaaldOp, Bedrag: 605.00},
		},
	}

	job := NewBoekhoudingSyncJob(svc, bron, zap.NewNop(), time.Minute)
	job.Run()

	assert.ElementsMatch(t, []string{"HV-2026-001", "GO-2026-001"}, svc.markedPaid)
	assert.Equal(t, betaaldOp, svc.markedTimes["HV-2026-001"])
	assert.Len(t, bron.lookedUp, 1)
	assert.ElementsMatch(t, []string{"HV-2026-001", "HV-2026-002", "GO-2026-001"}, bron.lookedUp[0])
}

func TestBoekhoudingSyncJob_SkipsWhenDisabled(t *testing.T) {
	svc := &fakeFactuurService{
		open: []domain.Factuur{{FactuurNummer: "HV-2026-001"}},
	}
	bron := &fakeBetalingBron{enabled: false}

	job := NewBoekhoudingSyncJob(svc, bron, zap.NewNop(), time.Minute)
	job.Run()

	assert.Empty(t, svc.markedPaid)
	assert.Empty(t, bron.lookedUp)
}

func TestBoekhoudingSyncJob_NilBron(t *testing.T) {
	svc := &fakeFactuurService{
		open: []domain.Factuur{{FactuurNummer: "HV-2026-001"}},
	}

	job := NewBoekhoudingSyncJob(svc, nil, zap.NewNop(), time.Minute)
	job.Run()

	assert.Empty(t, svc.markedPaid)
}

func TestBoekhoudingSyncJob_NoOpenFacturen(t *testing.T) {
	svc := &fakeFactuurService{}
	bron := &fakeBetalingBron{enabled: true}

	job := NewBoekhoudingSyncJob(svc, bron, zap.NewNop(), time.Minute)
	job.Run()

	assert.Empty(t, bron.lookedUp, "no lookup without open facturen")
}

func TestBoekhoudingSyncJob_PartialFailure(t *testing.T) {
	betaaldOp := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	svc := &fakeFactuurService{
		open: []domain.Factuur{
			{FactuurNummer: "HV-2026-001"},
			{FactuurNummer: "HV-2026-002"},
		},
		markErr: map[string]error{
			"HV-2026-001": errors.New("database unavailable"),
		},
	}
	bron := &fakeBetalingBron{
		enabled: true,
		betalingen: map[string]boekhouding.Betaling{
			"HV-2026-001": {FactuurNummer: "HV-2026-001", BetaaldOp: betaaldOp},
			"HV-2026-002": {FactuurNummer: "HV-2026-002", BetaaldOp: betaaldOp},
		},
	}

	job := NewBoekhoudingSyncJob(svc, bron, zap.NewNop(), time.Minute)
	job.Run()

	// One failure must not block the other facturen
	assert.Equal(t, []string{"HV-2026-002"}, svc.markedPaid)
}

func TestBoekhoudingSyncJob_LookupError(t *testing.T) {
	svc := &fakeFactuurService{
		open: []domain.Factuur{{FactuurNummer: "HV-2026-001"}},
	}
	bron := &fakeBetalingBron{
		enabled:   true,
		lookupErr: errors.New("mssql timeout"),
	}

	job := NewBoekhoudingSyncJob(svc, bron, zap.NewNop(), time.Minute)
	job.Run()

	assert.Empty(t, svc.markedPaid)
}
