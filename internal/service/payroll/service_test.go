package payroll

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/override"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(ctx context.Context, order employee.ListOrder) ([]employee.Employee, error) {
	return append([]employee.Employee(nil), r.employees...), nil
}

type fakeShiftRepo struct {
	shift.ShiftRepository
	records []shift.ShiftRecord
}

func (r *fakeShiftRepo) List(ctx context.Context, f shift.ShiftFilter) ([]shift.ShiftRecord, error) {
	out := []shift.ShiftRecord{}
	for _, rec := range r.records {
		if f.EmployeeID != nil && rec.EmployeeID != *f.EmployeeID {
			continue
		}
		if rec.ClockIn.Before(f.From) || !rec.ClockIn.Before(f.To) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type overrideKey struct {
	kind     override.Kind
	employee string
	start    string
}

type fakeOverrideRepo struct {
	rows    map[overrideKey]override.Override
	upserts int
	failOn  override.Kind
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{rows: map[overrideKey]override.Override{}}
}

func keyOf(kind override.Kind, k override.Key) overrideKey {
	return overrideKey{kind, k.EmployeeID, k.Period.StartString()}
}

func (r *fakeOverrideRepo) Get(ctx context.Context, kind override.Kind, key override.Key) (override.Override, error) {
	o, ok := r.rows[keyOf(kind, key)]
	if !ok {
		return override.Override{}, override.ErrOverrideNotFound
	}
	return o, nil
}

func (r *fakeOverrideRepo) Upsert(ctx context.Context, kind override.Kind, key override.Key, value decimal.Decimal) (override.Override, error) {
	if kind == r.failOn {
		return override.Override{}, errors.New("boom")
	}
	r.upserts++
	o := override.Override{ID: "o", Kind: kind, Key: key, Value: value}
	r.rows[keyOf(kind, key)] = o
	return o, nil
}

func (r *fakeOverrideRepo) Delete(ctx context.Context, kind override.Kind, key override.Key) error {
	delete(r.rows, keyOf(kind, key))
	return nil
}

func (r *fakeOverrideRepo) ListByPeriod(ctx context.Context, kind override.Kind, period payperiod.Period) (map[string]override.Override, error) {
	out := map[string]override.Override{}
	for k, o := range r.rows {
		if k.kind == kind && k.start == period.StartString() {
			out[k.employee] = o
		}
	}
	return out, nil
}

func (r *fakeOverrideRepo) count(kind override.Kind) int {
	n := 0
	for k := range r.rows {
		if k.kind == kind {
			n++
		}
	}
	return n
}

type memoryStorage struct {
	storage.FileStorage
	files   map[string][]byte
	uploads int
}

func (m *memoryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.uploads++
	m.files[path] = b
	return path, nil
}

func (m *memoryStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	b, ok := m.files[path]
	if !ok {
		return nil, storage.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

type fixture struct {
	svc       *PayrollServiceImpl
	shifts    *fakeShiftRepo
	overrides *fakeOverrideRepo
	files     *memoryStorage
}

func hoursFrom(start time.Time, hours float64) *time.Time {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return &end
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	jan6 := time.Date(2026, time.January, 6, 8, 0, 0, 0, time.UTC)

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "jane", Name: "Jane Doe"},
		{ID: "sam", Name: "Sam Lee", IsManager: true},
		{ID: "idle", Name: "Ida Le"},
	}}
	shifts := &fakeShiftRepo{records: []shift.ShiftRecord{
		{ID: "1", EmployeeID: "jane", ClockIn: jan6, ClockOut: hoursFrom(jan6, 37.25)},
		{ID: "2", EmployeeID: "sam", ClockIn: jan6, ClockOut: hoursFrom(jan6, 7.3)},
		// open shifts never count
		{ID: "3", EmployeeID: "sam", ClockIn: jan6.Add(48 * time.Hour)},
		// previous period
		{ID: "4", EmployeeID: "jane", ClockIn: jan6.AddDate(0, 0, -3), ClockOut: hoursFrom(jan6.AddDate(0, 0, -3), 5)},
	}}
	overrides := newFakeOverrideRepo()
	files := &memoryStorage{files: map[string][]byte{}}

	svc := NewPayrollService(fakeTx{}, employees, shifts, overrides, files, Options{
		ExportIncrement: 0.5,
		RoundIncrement:  0.5,
		Location:        time.UTC,
	}).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC) }

	return fixture{svc: svc, shifts: shifts, overrides: overrides, files: files}
}

func TestGetPeriodSummary(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SetBonus(context.Background(), payroll.SetBonusRequest{EmployeeID: "jane", Amount: "150"})
	require.NoError(t, err)

	summary, err := f.svc.GetPeriodSummary(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", summary.PeriodStart)
	assert.Equal(t, "2026-01-18", summary.PeriodEnd)
	require.Len(t, summary.Lines, 3)

	assert.Equal(t, "Ida Le", summary.Lines[0].Name)
	assert.Equal(t, "Jane Doe", summary.Lines[1].Name)
	assert.Equal(t, "Sam Lee", summary.Lines[2].Name, "managers come last")

	jane := summary.Lines[1]
	assert.Equal(t, 37.25, jane.ActualHours)
	assert.Equal(t, 37.25, jane.ResolvedHours)
	assert.False(t, jane.Overridden)
	assert.Equal(t, 37.5, jane.ExportHours)
	assert.Equal(t, "Jane D, 37.5, Bonus, $150", jane.ExportLine)

	assert.Equal(t, "Ida L, 0.0\nJane D, 37.5, Bonus, $150\nSam L, 7.5 (Salary)", summary.ExportText)
}

func TestGetPeriodSummary_InvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetPeriodSummary(context.Background(), "01/05/2026")
	assert.ErrorIs(t, err, payperiod.ErrInvalidDate)
}

func TestSetAdjustment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.SetAdjustment(ctx, payroll.SetAdjustmentRequest{EmployeeID: "jane", Hours: "40"})
	require.NoError(t, err)
	require.NotNil(t, resp.Hours)
	assert.Equal(t, 40.0, *resp.Hours)
	assert.Equal(t, 37.25, resp.ActualHours)

	summary, err := f.svc.GetPeriodSummary(ctx, "2026-01-05")
	require.NoError(t, err)
	assert.True(t, summary.Lines[1].Overridden)
	assert.Equal(t, 40.0, summary.Lines[1].ResolvedHours)

	resp, err = f.svc.SetAdjustment(ctx, payroll.SetAdjustmentRequest{EmployeeID: "jane", Hours: ""})
	require.NoError(t, err)
	assert.Nil(t, resp.Hours)
	assert.Zero(t, f.overrides.count(override.KindHoursAdjustment))
}

func TestSetAdjustment_RejectsBadInput(t *testing.T) {
	for _, hours := range []string{"abc", "-1", "NaN", "Inf"} {
		t.Run(hours, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.SetAdjustment(context.Background(), payroll.SetAdjustmentRequest{EmployeeID: "jane", Hours: hours})

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Zero(t, f.overrides.upserts)
		})
	}
}

func TestSetAdjustment_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetAdjustment(context.Background(), payroll.SetAdjustmentRequest{EmployeeID: "ghost", Hours: "1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClearMissingOverrideIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SetAdjustment(ctx, payroll.SetAdjustmentRequest{EmployeeID: "jane"})
	assert.NoError(t, err)

	resp, err := f.svc.SetBonus(ctx, payroll.SetBonusRequest{EmployeeID: "jane"})
	assert.NoError(t, err)
	assert.Nil(t, resp.Amount)
}

func TestRoundAdjustment(t *testing.T) {
	tests := []struct {
		name      string
		direction payperiod.Direction
		want      float64
	}{
		{"up", payperiod.DirectionUp, 7.5},
		{"down", payperiod.DirectionDown, 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			resp, err := f.svc.RoundAdjustment(context.Background(), payroll.RoundAdjustmentRequest{
				EmployeeID: "sam",
				Direction:  tt.direction,
			})

			require.NoError(t, err)
			require.NotNil(t, resp.Hours)
			assert.Equal(t, tt.want, *resp.Hours)
			assert.Equal(t, 1, f.overrides.count(override.KindHoursAdjustment))
		})
	}
}

func TestRoundAdjustment_CustomIncrement(t *testing.T) {
	f := newFixture(t)
	inc := 0.25

	resp, err := f.svc.RoundAdjustment(context.Background(), payroll.RoundAdjustmentRequest{
		EmployeeID: "jane",
		Direction:  payperiod.DirectionDown,
		Increment:  &inc,
	})

	require.NoError(t, err)
	assert.Equal(t, 37.25, *resp.Hours)
}

func TestRoundAdjustment_InvalidDirection(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RoundAdjustment(context.Background(), payroll.RoundAdjustmentRequest{EmployeeID: "sam", Direction: "sideways"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Zero(t, f.overrides.upserts)
}

func TestRoundAll(t *testing.T) {
	f := newFixture(t)

	responses, err := f.svc.RoundAll(context.Background(), payroll.RoundAllRequest{Direction: payperiod.DirectionUp})

	require.NoError(t, err)
	require.Len(t, responses, 2, "idle employees are skipped")
	assert.Equal(t, "jane", responses[0].EmployeeID)
	assert.Equal(t, 37.5, *responses[0].Hours)
	assert.Equal(t, "sam", responses[1].EmployeeID)
	assert.Equal(t, 7.5, *responses[1].Hours)
}

func TestRoundAll_StopsOnStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.overrides.failOn = override.KindHoursAdjustment

	_, err := f.svc.RoundAll(context.Background(), payroll.RoundAllRequest{Direction: payperiod.DirectionDown})
	assert.Error(t, err)
}

func TestSetBonus_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := f.svc.SetBonus(ctx, payroll.SetBonusRequest{EmployeeID: "jane", Amount: "150"})
		require.NoError(t, err)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(150)))
	}

	assert.Equal(t, 1, f.overrides.count(override.KindBonus))

	got, err := f.svc.GetBonus(ctx, "jane", "2026-01-18")
	require.NoError(t, err)
	require.NotNil(t, got.Amount)
	assert.Equal(t, "150", got.Amount.String())
}

func TestSetBonus_RejectsNegative(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetBonus(context.Background(), payroll.SetBonusRequest{EmployeeID: "jane", Amount: "-5"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Zero(t, f.overrides.count(override.KindBonus))
}

func TestGetPeriodSummary_RoundsExportOnce(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, time.January, 7, 8, 0, 0, 0, time.UTC)
	end := start.Add(7*time.Hour + 14*time.Minute + 58*time.Second)
	f.shifts.records = append(f.shifts.records, shift.ShiftRecord{ID: "5", EmployeeID: "idle", ClockIn: start, ClockOut: &end})

	summary, err := f.svc.GetPeriodSummary(context.Background(), "")

	require.NoError(t, err)
	ida := summary.Lines[0]
	assert.Equal(t, 7.25, ida.ActualHours, "display is rounded to 2dp")
	assert.Equal(t, 7.0, ida.ExportHours, "7.2494h is below the 7.25 midpoint")
	assert.Equal(t, "Ida L, 7.0", ida.ExportLine)
}

func TestGetBonus_Absent(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.GetBonus(context.Background(), "jane", "")
	require.NoError(t, err)
	assert.Nil(t, got.Amount)
}

func TestGetBonus_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetBonus(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExport_Text(t *testing.T) {
	f := newFixture(t)

	file, err := f.svc.Export(context.Background(), payroll.ExportRequest{Date: "2026-01-06"})

	require.NoError(t, err)
	assert.Equal(t, "payroll_2026-01-05_2026-01-18.txt", file.FileName)
	assert.Equal(t, "Ida L, 0.0\nJane D, 37.5\nSam L, 7.5 (Salary)", string(file.Content))
}

func TestExport_Workbook(t *testing.T) {
	f := newFixture(t)

	file, err := f.svc.Export(context.Background(), payroll.ExportRequest{Format: payroll.FormatXLSX})
	require.NoError(t, err)
	assert.Equal(t, "payroll_2026-01-05_2026-01-18.xlsx", file.FileName)

	book, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer book.Close()

	title, err := book.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Pay Period: Jan 05, 2026 - Jan 18, 2026", title)

	name, err := book.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Jane D", name)

	line, err := book.GetCellValue(sheetName, "F5")
	require.NoError(t, err)
	assert.Equal(t, "Sam L, 7.5 (Salary)", line)
}

func TestExport_UnknownFormat(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Export(context.Background(), payroll.ExportRequest{Format: "csv"})
	assert.Error(t, err)
}

func TestArchiveExport_WritesOncePerPeriod(t *testing.T) {
	f := newFixture(t)
	period := payperiod.For(time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC))

	path, err := f.svc.ArchiveExport(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, "payroll/payroll_2026-01-05_2026-01-18.txt", path)

	again, err := f.svc.ArchiveExport(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, f.files.uploads)
	assert.Contains(t, string(f.files.files[path]), "Jane D, 37.5")
}

func TestGetArchivedExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetArchivedExport(ctx, "2026-01-06")
	assert.ErrorIs(t, err, payroll.ErrArchiveNotFound)

	_, err = f.svc.ArchiveExport(ctx, payperiod.For(time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	file, err := f.svc.GetArchivedExport(ctx, "2026-01-06")
	require.NoError(t, err)
	assert.Equal(t, "payroll_2026-01-05_2026-01-18.txt", file.FileName)
	assert.Equal(t, "Ida L, 0.0\nJane D, 37.5\nSam L, 7.5 (Salary)", string(file.Content))
}

func TestActualHours_SkipsOpenShifts(t *testing.T) {
	f := newFixture(t)
	period := payperiod.For(time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC))

	hours, err := f.svc.actualHours(context.Background(), "sam", period)

	require.NoError(t, err)
	assert.InDelta(t, 7.3, hours, 1e-9)
}
