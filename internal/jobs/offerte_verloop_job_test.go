package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeExpiryService struct {
	expired  int
	err      error
	calls    int
	lastTime time.Time
}

func (f *fakeExpiryService) MarkVerlopen(ctx context.Context, before time.Time) (int, error) {
	f.calls++
	f.lastTime = before
	return f.expired, f.err
}

func TestOfferteVerloopJob_Run(t *testing.T) {
	svc := &fakeExpiryService{expired: 3}

	job := NewOfferteVerloopJob(svc, zap.NewNop(), time.Minute)
	job.Run()

	assert.Equal(t, 1, svc.calls)
	assert.WithinDuration(t, time.Now(), svc.lastTime, 5*time.Second)
}

func TestOfferteVerloopJob_RunError(t *testing.T) {
	svc := &fakeExpiryService{err: errors.New("database unavailable")}

	job := NewOfferteVerloopJob(svc, zap.NewNop(), time.Minute)
	job.Run()

	assert.Equal(t, 1, svc.calls)
}

func TestScheduler_AddAndRemoveJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	err := s.AddJob("test_job", "0 0 6 * * *", func() {})
	assert.NoError(t, err)
	assert.Contains(t, s.GetJobNames(), "test_job")

	// Duplicate names are rejected
	err = s.AddJob("test_job", "0 0 7 * * *", func() {})
	assert.Error(t, err)
	assert.Len(t, s.GetJobNames(), 1)

	err = s.RemoveJob("test_job")
	assert.NoError(t, err)
	assert.Empty(t, s.GetJobNames())
}

func TestScheduler_InvalidCronExpression(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	err := s.AddJob("bad_job", "not a cron expr", func() {})
	assert.Error(t, err)
	assert.Empty(t, s.GetJobNames())
}
