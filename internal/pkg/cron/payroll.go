package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
)

type PayrollJobs struct {
	payrollService payroll.PayrollService
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, loc *time.Location) *PayrollJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollJobs{
		payrollService: payrollService,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "archive_payroll_export",
		Interval: time.Hour,
		Timeout:  2 * time.Minute,
		Fn:       j.ArchivePreviousPeriod,
	})
}

// ArchivePreviousPeriod stores the export text of the last closed pay period.
// A period already archived is left alone.
func (j *PayrollJobs) ArchivePreviousPeriod(ctx context.Context) error {
	previous := payperiod.For(j.now().In(j.loc)).Previous()
	_, err := j.payrollService.ArchiveExport(ctx, previous)
	return err
}
