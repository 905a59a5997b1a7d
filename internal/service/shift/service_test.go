package shift

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byID   map[string]employee.Employee
	locked []string
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) LockByID(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.locked = append(r.locked, id)
	return nil
}

type fakeShiftRepo struct {
	shift.ShiftRepository
	records []shift.ShiftRecord
}

func (r *fakeShiftRepo) Create(ctx context.Context, rec shift.ShiftRecord) (shift.ShiftRecord, error) {
	rec.ID = fmt.Sprintf("shift-%d", len(r.records)+1)
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.ShiftRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return shift.ShiftRecord{}, shift.ErrShiftNotFound
}

func (r *fakeShiftRepo) GetOpenByEmployee(ctx context.Context, employeeID string) (shift.ShiftRecord, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.IsOpen() {
			return rec, nil
		}
	}
	return shift.ShiftRecord{}, shift.ErrNoOpenShift
}

func (r *fakeShiftRepo) Update(ctx context.Context, rec shift.ShiftRecord) (shift.ShiftRecord, error) {
	for i := range r.records {
		if r.records[i].ID == rec.ID {
			r.records[i] = rec
			return rec, nil
		}
	}
	return shift.ShiftRecord{}, shift.ErrShiftNotFound
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
	sort.Slice(out, func(i, j int) bool {
		if f.Descending {
			return out[i].ClockIn.After(out[j].ClockIn)
		}
		return out[i].ClockIn.Before(out[j].ClockIn)
	})
	return out, nil
}

type recordedEvent struct {
	name   string
	record shift.ShiftResponse
}

type fakePublisher struct{ events []recordedEvent }

func (p *fakePublisher) PublishShiftEvent(event string, record shift.ShiftResponse) {
	p.events = append(p.events, recordedEvent{event, record})
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T) (*ShiftServiceImpl, *fakeShiftRepo, *fakePublisher, *clock) {
	t.Helper()
	employees := &fakeEmployeeRepo{byID: map[string]employee.Employee{
		"jane": {ID: "jane", Name: "Jane Doe", EmployeeCode: "1234"},
		"bob":  {ID: "bob", Name: "Bob Stone", EmployeeCode: "5678"},
	}}
	shifts := &fakeShiftRepo{}
	pub := &fakePublisher{}
	c := &clock{t: time.Date(2026, time.January, 6, 9, 0, 0, 0, time.UTC)}

	svc := NewShiftService(fakeTx{}, shifts, employees, pub, time.UTC).(*ShiftServiceImpl)
	svc.now = c.now
	return svc, shifts, pub, c
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.January, day, hour, minute, 0, 0, time.UTC)
}

func TestClockIn(t *testing.T) {
	svc, shifts, pub, _ := newTestService(t)

	resp, err := svc.ClockIn(context.Background(), "jane")

	require.NoError(t, err)
	assert.True(t, resp.IsOpen)
	assert.Equal(t, "Jane Doe", resp.EmployeeName)
	assert.Equal(t, "Jan 06, 2026 09:00 AM", resp.ClockInDisplay)
	assert.Len(t, shifts.records, 1)
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventClockIn, pub.events[0].name)
}

func TestClockIn_RejectsSecondOpenShift(t *testing.T) {
	svc, shifts, _, _ := newTestService(t)

	_, err := svc.ClockIn(context.Background(), "jane")
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), "jane")
	assert.ErrorIs(t, err, shift.ErrShiftAlreadyOpen)
	assert.Len(t, shifts.records, 1)

	_, err = svc.ClockIn(context.Background(), "bob")
	assert.NoError(t, err, "other employees are unaffected")
}

func TestClockIn_UnknownEmployee(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.ClockIn(context.Background(), "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockOut(t *testing.T) {
	svc, shifts, pub, c := newTestService(t)

	_, err := svc.ClockIn(context.Background(), "jane")
	require.NoError(t, err)

	c.t = c.t.Add(8*time.Hour + 45*time.Minute)
	resp, err := svc.ClockOut(context.Background(), "jane")

	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	require.NotNil(t, resp.Hours)
	assert.Equal(t, 8.75, *resp.Hours)
	assert.False(t, shifts.records[0].IsOpen())
	require.Len(t, pub.events, 2)
	assert.Equal(t, EventClockOut, pub.events[1].name)
}

func TestClockOut_WithoutOpenShift(t *testing.T) {
	svc, _, pub, _ := newTestService(t)

	_, err := svc.ClockOut(context.Background(), "jane")

	assert.ErrorIs(t, err, shift.ErrNoOpenShift)
	assert.Empty(t, pub.events)
}

func TestGetClockStatus(t *testing.T) {
	svc, shifts, _, c := newTestService(t)
	out1 := at(5, 17, 0)
	out2 := at(4, 12, 0)
	// s1 is this period, s2 the previous one, s3 another employee, s4 still open.
	shifts.records = []shift.ShiftRecord{
		{ID: "s1", EmployeeID: "jane", ClockIn: at(5, 9, 0), ClockOut: &out1},
		{ID: "s2", EmployeeID: "jane", ClockIn: at(4, 8, 0), ClockOut: &out2},
		{ID: "s3", EmployeeID: "bob", ClockIn: at(5, 9, 0), ClockOut: &out1},
		{ID: "s4", EmployeeID: "jane", ClockIn: at(6, 8, 0)},
	}
	c.t = at(6, 10, 30)

	status, err := svc.GetClockStatus(context.Background(), "jane")

	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", status.PayPeriodStart)
	assert.Equal(t, "2026-01-18", status.PayPeriodEnd)
	assert.Equal(t, "Jan 05, 2026 - Jan 18, 2026", status.PayPeriodLabel)
	require.Len(t, status.Records, 2)
	assert.Equal(t, "s4", status.Records[0].ID, "newest first")
	assert.Equal(t, 8.0, status.TotalBiweeklyHours)
	assert.False(t, status.CanClockIn)
	assert.True(t, status.CanClockOut)
	require.NotNil(t, status.ActiveRecord)
	assert.Equal(t, "s4", status.ActiveRecord.ID)
	assert.Equal(t, 2.5, status.CurrentShiftHours)
}

func TestGetClockStatus_OffTheClock(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	status, err := svc.GetClockStatus(context.Background(), "jane")

	require.NoError(t, err)
	assert.True(t, status.CanClockIn)
	assert.False(t, status.CanClockOut)
	assert.Nil(t, status.ActiveRecord)
	assert.Empty(t, status.Records)
	assert.Zero(t, status.TotalBiweeklyHours)
}

func TestListShifts_CustomRangeIncludesEndDate(t *testing.T) {
	svc, shifts, _, _ := newTestService(t)
	out := at(18, 23, 0)
	shifts.records = []shift.ShiftRecord{
		{ID: "a", EmployeeID: "jane", ClockIn: at(18, 22, 0), ClockOut: &out},
		{ID: "b", EmployeeID: "jane", ClockIn: at(19, 0, 0), ClockOut: &out},
	}

	got, err := svc.ListShifts(context.Background(), shift.ListShiftsRequest{StartDate: "2026-01-18", EndDate: "2026-01-18"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestListShifts_HalfRangeIsRejected(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.ListShifts(context.Background(), shift.ListShiftsRequest{StartDate: "2026-01-18"})
	assert.Error(t, err)
}

func TestCreateShift(t *testing.T) {
	svc, shifts, _, _ := newTestService(t)

	resp, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
		EmployeeID: "bob",
		ClockIn:    "2026-01-07T08:00:00Z",
		ClockOut:   "2026-01-07T12:30:00Z",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Hours)
	assert.Equal(t, 4.5, *resp.Hours)
	assert.Len(t, shifts.records, 1)
}

func TestCreateShift_ClockOutBeforeClockIn(t *testing.T) {
	svc, shifts, _, _ := newTestService(t)

	_, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
		EmployeeID: "bob",
		ClockIn:    "2026-01-07T08:00:00Z",
		ClockOut:   "2026-01-07T07:00:00Z",
	})

	assert.Error(t, err)
	assert.Empty(t, shifts.records)
}

func TestUpdateShift(t *testing.T) {
	svc, shifts, _, _ := newTestService(t)
	out := at(5, 17, 0)
	shifts.records = []shift.ShiftRecord{
		{ID: "closed", EmployeeID: "jane", ClockIn: at(5, 9, 0), ClockOut: &out},
		{ID: "open", EmployeeID: "jane", ClockIn: at(6, 9, 0)},
	}

	t.Run("edits times", func(t *testing.T) {
		resp, err := svc.UpdateShift(context.Background(), shift.UpdateShiftRequest{
			ID: "closed", ClockIn: "2026-01-05T10:00:00Z", ClockOut: "2026-01-05T17:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, 7.0, *resp.Hours)
	})

	t.Run("cannot reopen while another shift is open", func(t *testing.T) {
		_, err := svc.UpdateShift(context.Background(), shift.UpdateShiftRequest{
			ID: "closed", ClockIn: "2026-01-05T10:00:00Z",
		})
		assert.ErrorIs(t, err, shift.ErrShiftAlreadyOpen)
		assert.NotNil(t, shifts.records[0].ClockOut)
	})

	t.Run("unknown shift", func(t *testing.T) {
		_, err := svc.UpdateShift(context.Background(), shift.UpdateShiftRequest{
			ID: "nope", ClockIn: "2026-01-05T10:00:00Z",
		})
		assert.ErrorIs(t, err, shift.ErrShiftNotFound)
	})
}
