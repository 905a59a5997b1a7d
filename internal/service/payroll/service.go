package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/override"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const archiveDir = "payroll"

// Options carries the configured rounding and the business timezone.
type Options struct {
	// ExportIncrement is the nearest-rounding step applied to exported hours.
	ExportIncrement float64
	// RoundIncrement is the default step for round up/down.
	RoundIncrement float64
	Location       *time.Location
}

type PayrollServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
	overrideRepo override.Repository
	fileStorage  storage.FileStorage
	opts         Options
	now          func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	overrideRepo override.Repository,
	fileStorage storage.FileStorage,
	opts Options,
) payroll.PayrollService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &PayrollServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
		overrideRepo: overrideRepo,
		fileStorage:  fileStorage,
		opts:         opts,
		now:          time.Now,
	}
}

// periodFor resolves a YYYY-MM-DD date, or today when empty, to its pay period.
func (s *PayrollServiceImpl) periodFor(date string) (payperiod.Period, error) {
	if date == "" {
		return payperiod.For(s.now().In(s.opts.Location)), nil
	}
	d, err := payperiod.ParseDate(date)
	if err != nil {
		return payperiod.Period{}, err
	}
	return payperiod.For(d), nil
}

func (s *PayrollServiceImpl) actualHours(ctx context.Context, employeeID string, period payperiod.Period) (float64, error) {
	from, to := period.Range(s.opts.Location)
	records, err := s.shiftRepo.List(ctx, shift.ShiftFilter{EmployeeID: &employeeID, From: from, To: to})
	if err != nil {
		return 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	return payperiod.TotalHours(shift.Intervals(records)), nil
}

// loadLines builds the payroll line of every employee for period. Loads run
// concurrently unless the caller is inside a transaction, where one
// connection cannot serve parallel queries.
func (s *PayrollServiceImpl) loadLines(ctx context.Context, period payperiod.Period, concurrent bool) ([]payroll.Line, error) {
	from, to := period.Range(s.opts.Location)

	var (
		employees   []employee.Employee
		records     []shift.ShiftRecord
		adjustments map[string]override.Override
		bonuses     map[string]override.Override
	)

	loaders := []func(ctx context.Context) error{
		func(ctx context.Context) (err error) {
			employees, err = s.employeeRepo.List(ctx, employee.OrderByManagerThenName)
			return err
		},
		func(ctx context.Context) (err error) {
			records, err = s.shiftRepo.List(ctx, shift.ShiftFilter{From: from, To: to})
			return err
		},
		func(ctx context.Context) (err error) {
			adjustments, err = s.overrideRepo.ListByPeriod(ctx, override.KindHoursAdjustment, period)
			return err
		},
		func(ctx context.Context) (err error) {
			bonuses, err = s.overrideRepo.ListByPeriod(ctx, override.KindBonus, period)
			return err
		},
	}

	if concurrent {
		g, gCtx := errgroup.WithContext(ctx)
		for _, load := range loaders {
			g.Go(func() error { return load(gCtx) })
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to load payroll data: %w", err)
		}
	} else {
		for _, load := range loaders {
			if err := load(ctx); err != nil {
				return nil, fmt.Errorf("failed to load payroll data: %w", err)
			}
		}
	}

	actual := make(map[string]float64, len(employees))
	for _, r := range records {
		actual[r.EmployeeID] += r.Interval().Hours()
	}

	lines := make([]payroll.Line, 0, len(employees))
	for _, e := range employees {
		var adj *float64
		if o, ok := adjustments[e.ID]; ok {
			v := o.Value.InexactFloat64()
			adj = &v
		}
		resolved, overridden := payroll.Resolve(actual[e.ID], adj)

		bonus := decimal.Zero
		if o, ok := bonuses[e.ID]; ok {
			bonus = o.Value
		}

		lines = append(lines, payroll.Line{
			EmployeeID:    e.ID,
			Name:          e.Name,
			IsManager:     e.IsManager,
			Period:        period,
			ActualHours:   actual[e.ID],
			ResolvedHours: resolved,
			Overridden:    overridden,
			ExportHours:   payperiod.RoundNearest(resolved, s.opts.ExportIncrement),
			Bonus:         bonus,
		})
	}
	payroll.SortLines(lines)
	return lines, nil
}

// GetPeriodSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPeriodSummary(ctx context.Context, date string) (payroll.PeriodSummaryResponse, error) {
	period, err := s.periodFor(date)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	lines, err := s.loadLines(ctx, period, true)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	resp := payroll.PeriodSummaryResponse{
		PeriodStart: period.StartString(),
		PeriodEnd:   period.EndString(),
		PeriodLabel: period.Label(),
		Lines:       make([]payroll.LineResponse, 0, len(lines)),
		ExportText:  payroll.FormatExport(lines),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, payroll.NewLineResponse(l))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) adjustmentResponse(employeeID string, period payperiod.Period, actual float64, hours *float64) payroll.AdjustmentResponse {
	return payroll.AdjustmentResponse{
		EmployeeID:  employeeID,
		PeriodStart: period.StartString(),
		PeriodEnd:   period.EndString(),
		ActualHours: payperiod.Round2(actual),
		Hours:       hours,
	}
}

func (s *PayrollServiceImpl) storeAdjustment(ctx context.Context, key override.Key, hours float64) (float64, error) {
	o, err := s.overrideRepo.Upsert(ctx, override.KindHoursAdjustment, key, decimal.NewFromFloat(hours).Round(2))
	if err != nil {
		return 0, err
	}
	return o.Value.InexactFloat64(), nil
}

// SetAdjustment implements payroll.PayrollService.
func (s *PayrollServiceImpl) SetAdjustment(ctx context.Context, req payroll.SetAdjustmentRequest) (payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdjustmentResponse{}, err
	}
	period, err := s.periodFor(req.Date)
	if err != nil {
		return payroll.AdjustmentResponse{}, err
	}
	key := override.Key{EmployeeID: req.EmployeeID, Period: period}

	var resp payroll.AdjustmentResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID); err != nil {
			return err
		}
		actual, err := s.actualHours(txCtx, req.EmployeeID, period)
		if err != nil {
			return err
		}

		if req.HoursValue == nil {
			if err := s.overrideRepo.Delete(txCtx, override.KindHoursAdjustment, key); err != nil {
				return err
			}
			resp = s.adjustmentResponse(req.EmployeeID, period, actual, nil)
			return nil
		}

		stored, err := s.storeAdjustment(txCtx, key, *req.HoursValue)
		if err != nil {
			return err
		}
		resp = s.adjustmentResponse(req.EmployeeID, period, actual, &stored)
		return nil
	})
	if err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	slog.Info("hours adjustment saved", "employee_id", req.EmployeeID, "period", period.String(), "cleared", resp.Hours == nil)
	return resp, nil
}

func (s *PayrollServiceImpl) increment(req *float64) float64 {
	if req != nil {
		return *req
	}
	return s.opts.RoundIncrement
}

// RoundAdjustment implements payroll.PayrollService.
func (s *PayrollServiceImpl) RoundAdjustment(ctx context.Context, req payroll.RoundAdjustmentRequest) (payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdjustmentResponse{}, err
	}
	period, err := s.periodFor(req.Date)
	if err != nil {
		return payroll.AdjustmentResponse{}, err
	}
	inc := s.increment(req.Increment)

	var resp payroll.AdjustmentResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID); err != nil {
			return err
		}
		actual, err := s.actualHours(txCtx, req.EmployeeID, period)
		if err != nil {
			return err
		}

		rounded := payperiod.Round(actual, req.Direction, inc)
		stored, err := s.storeAdjustment(txCtx, override.Key{EmployeeID: req.EmployeeID, Period: period}, rounded)
		if err != nil {
			return err
		}
		resp = s.adjustmentResponse(req.EmployeeID, period, actual, &stored)
		return nil
	})
	if err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	slog.Info("hours rounded", "employee_id", req.EmployeeID, "period", period.String(), "direction", req.Direction, "hours", *resp.Hours)
	return resp, nil
}

// RoundAll implements payroll.PayrollService.
func (s *PayrollServiceImpl) RoundAll(ctx context.Context, req payroll.RoundAllRequest) ([]payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	period, err := s.periodFor(req.Date)
	if err != nil {
		return nil, err
	}
	inc := s.increment(req.Increment)

	var responses []payroll.AdjustmentResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		lines, err := s.loadLines(txCtx, period, false)
		if err != nil {
			return err
		}

		responses = make([]payroll.AdjustmentResponse, 0, len(lines))
		for _, l := range lines {
			// Nothing to round for employees who neither worked nor carry an adjustment.
			if l.ActualHours == 0 && !l.Overridden {
				continue
			}
			rounded := payperiod.Round(l.ActualHours, req.Direction, inc)
			stored, err := s.storeAdjustment(txCtx, override.Key{EmployeeID: l.EmployeeID, Period: period}, rounded)
			if err != nil {
				return err
			}
			responses = append(responses, s.adjustmentResponse(l.EmployeeID, period, l.ActualHours, &stored))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("hours rounded for period", "period", period.String(), "direction", req.Direction, "employees", len(responses))
	return responses, nil
}

func bonusResponse(employeeID string, period payperiod.Period, amount *decimal.Decimal) payroll.BonusResponse {
	return payroll.BonusResponse{
		EmployeeID:  employeeID,
		PeriodStart: period.StartString(),
		PeriodEnd:   period.EndString(),
		Amount:      amount,
	}
}

// GetBonus implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetBonus(ctx context.Context, employeeID string, date string) (payroll.BonusResponse, error) {
	period, err := s.periodFor(date)
	if err != nil {
		return payroll.BonusResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.BonusResponse{}, err
	}

	o, err := s.overrideRepo.Get(ctx, override.KindBonus, override.Key{EmployeeID: employeeID, Period: period})
	if err != nil {
		if errors.Is(err, override.ErrOverrideNotFound) {
			return bonusResponse(employeeID, period, nil), nil
		}
		return payroll.BonusResponse{}, err
	}
	return bonusResponse(employeeID, period, &o.Value), nil
}

// SetBonus implements payroll.PayrollService.
func (s *PayrollServiceImpl) SetBonus(ctx context.Context, req payroll.SetBonusRequest) (payroll.BonusResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BonusResponse{}, err
	}
	period, err := s.periodFor(req.Date)
	if err != nil {
		return payroll.BonusResponse{}, err
	}
	key := override.Key{EmployeeID: req.EmployeeID, Period: period}

	var resp payroll.BonusResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID); err != nil {
			return err
		}

		if req.AmountValue == nil {
			resp = bonusResponse(req.EmployeeID, period, nil)
			return s.overrideRepo.Delete(txCtx, override.KindBonus, key)
		}

		o, err := s.overrideRepo.Upsert(txCtx, override.KindBonus, key, req.AmountValue.Round(2))
		if err != nil {
			return err
		}
		resp = bonusResponse(req.EmployeeID, period, &o.Value)
		return nil
	})
	if err != nil {
		return payroll.BonusResponse{}, err
	}

	slog.Info("bonus saved", "employee_id", req.EmployeeID, "period", period.String(), "cleared", resp.Amount == nil)
	return resp, nil
}

func exportFileName(period payperiod.Period, ext string) string {
	return fmt.Sprintf("payroll_%s_%s.%s", period.StartString(), period.EndString(), ext)
}

// Export implements payroll.PayrollService.
func (s *PayrollServiceImpl) Export(ctx context.Context, req payroll.ExportRequest) (payroll.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return payroll.ExportFile{}, err
	}
	period, err := s.periodFor(req.Date)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	lines, err := s.loadLines(ctx, period, true)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	if req.Format == payroll.FormatXLSX {
		content, err := buildWorkbook(period, lines)
		if err != nil {
			return payroll.ExportFile{}, err
		}
		return payroll.ExportFile{
			FileName:    exportFileName(period, "xlsx"),
			ContentType: xlsxContentType,
			Content:     content,
		}, nil
	}

	return payroll.ExportFile{
		FileName:    exportFileName(period, "txt"),
		ContentType: "text/plain; charset=utf-8",
		Content:     []byte(payroll.FormatExport(lines)),
	}, nil
}

func archivePath(period payperiod.Period) string {
	return archiveDir + "/" + exportFileName(period, "txt")
}

// ArchiveExport implements payroll.PayrollService.
func (s *PayrollServiceImpl) ArchiveExport(ctx context.Context, period payperiod.Period) (string, error) {
	path := archivePath(period)

	exists, err := s.fileStorage.Exists(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to check archive: %w", err)
	}
	if exists {
		return path, nil
	}

	lines, err := s.loadLines(ctx, period, true)
	if err != nil {
		return "", err
	}

	stored, err := s.fileStorage.Upload(ctx, bytes.NewReader([]byte(payroll.FormatExport(lines))), path, "text/plain")
	if err != nil {
		return "", fmt.Errorf("failed to archive payroll export: %w", err)
	}

	slog.Info("payroll export archived", "period", period.String(), "path", stored, "employees", len(lines))
	return stored, nil
}

// GetArchivedExport implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetArchivedExport(ctx context.Context, date string) (payroll.ExportFile, error) {
	period, err := s.periodFor(date)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	rc, err := s.fileStorage.Download(ctx, archivePath(period))
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return payroll.ExportFile{}, payroll.ErrArchiveNotFound
		}
		return payroll.ExportFile{}, fmt.Errorf("failed to open archived export: %w", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("failed to read archived export: %w", err)
	}
	return payroll.ExportFile{
		FileName:    exportFileName(period, "txt"),
		ContentType: "text/plain; charset=utf-8",
		Content:     content,
	}, nil
}
