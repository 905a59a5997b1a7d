package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceJoinsErrors(t *testing.T) {
	s := NewScheduler()
	var ran int32
	s.AddJob(Job{Name: "ok", Interval: time.Hour, Fn: func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	}})
	s.AddJob(Job{Name: "broken", Interval: time.Hour, Fn: func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	}})

	err := s.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
	assert.Equal(t, int32(2), atomic.LoadInt32(&ran))
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{}, 1)
	s.AddJob(Job{Name: "tick", Interval: time.Hour, Fn: func(ctx context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}})

	s.Start(context.Background())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestScheduler_TimeoutBoundsRun(t *testing.T) {
	s := NewScheduler()
	s.AddJob(Job{Name: "slow", Interval: time.Hour, Timeout: 10 * time.Millisecond, Fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type fakePayrollService struct {
	payroll.PayrollService
	archived []payperiod.Period
}

func (f *fakePayrollService) ArchiveExport(ctx context.Context, period payperiod.Period) (string, error) {
	f.archived = append(f.archived, period)
	return "payroll/x.txt", nil
}

func TestPayrollJobs_ArchivesPreviousPeriod(t *testing.T) {
	svc := &fakePayrollService{}
	jobs := NewPayrollJobs(svc, time.UTC)
	jobs.now = func() time.Time { return time.Date(2026, time.January, 10, 3, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.ArchivePreviousPeriod(context.Background()))

	require.Len(t, svc.archived, 1)
	assert.Equal(t, "2025-12-22", svc.archived[0].StartString())
	assert.Equal(t, "2026-01-04", svc.archived[0].EndString())
}

type countingPruner struct{ calls int }

func (c *countingPruner) PruneRevoked() int {
	c.calls++
	return 0
}

func TestRegisterTokenPruning(t *testing.T) {
	s := NewScheduler()
	p := &countingPruner{}
	RegisterTokenPruning(s, p)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, 1, p.calls)
}
