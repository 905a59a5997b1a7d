package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	shiftColumns        = `s.id, s.employee_id, s.clock_in, s.clock_out, s.created_at, s.updated_at, e.name`
	openShiftConstraint = "shift_records_one_open_idx"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func scanShift(row pgx.Row) (shift.ShiftRecord, error) {
	var rec shift.ShiftRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.ClockIn, &rec.ClockOut,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	return rec, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, record shift.ShiftRecord) (shift.ShiftRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return shift.ShiftRecord{}, fmt.Errorf("failed to generate shift id: %w", err)
	}

	query := `
		INSERT INTO shift_records (id, employee_id, clock_in, clock_out)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, id.String(), record.EmployeeID, record.ClockIn, record.ClockOut).
		Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, openShiftConstraint) {
			return shift.ShiftRecord{}, shift.ErrShiftAlreadyOpen
		}
		return shift.ShiftRecord{}, fmt.Errorf("failed to create shift record: %w", err)
	}

	return record, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftRecord, error) {
	if !isUUID(id) {
		return shift.ShiftRecord{}, shift.ErrShiftNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	rec, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftRecord{}, shift.ErrShiftNotFound
		}
		return shift.ShiftRecord{}, fmt.Errorf("failed to get shift record: %w", err)
	}
	return rec, nil
}

// GetOpenByEmployee implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetOpenByEmployee(ctx context.Context, employeeID string) (shift.ShiftRecord, error) {
	if !isUUID(employeeID) {
		return shift.ShiftRecord{}, shift.ErrNoOpenShift
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		  AND s.clock_out IS NULL
		ORDER BY s.clock_in DESC
		LIMIT 1
	`

	rec, err := scanShift(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftRecord{}, shift.ErrNoOpenShift
		}
		return shift.ShiftRecord{}, fmt.Errorf("failed to get open shift: %w", err)
	}
	return rec, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, record shift.ShiftRecord) (shift.ShiftRecord, error) {
	if !isUUID(record.ID) {
		return shift.ShiftRecord{}, shift.ErrShiftNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_records
		SET clock_in = $1, clock_out = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, record.ClockIn, record.ClockOut, record.ID).Scan(&record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftRecord{}, shift.ErrShiftNotFound
		}
		if isUniqueViolation(err, openShiftConstraint) {
			return shift.ShiftRecord{}, shift.ErrShiftAlreadyOpen
		}
		return shift.ShiftRecord{}, fmt.Errorf("failed to update shift record: %w", err)
	}
	return record, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.ShiftRecord, error) {
	if filter.EmployeeID != nil && !isUUID(*filter.EmployeeID) {
		return []shift.ShiftRecord{}, nil
	}
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"s.clock_in >= $1", "s.clock_in < $2"}
	args := []interface{}{filter.From, filter.To}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		whereClauses = append(whereClauses, fmt.Sprintf("s.employee_id = $%d", len(args)))
	}

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE ` + strings.Join(whereClauses, " AND ") + `
		ORDER BY s.clock_in ` + direction + `, s.id ` + direction

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift records: %w", err)
	}
	defer rows.Close()

	records := []shift.ShiftRecord{}
	for rows.Next() {
		rec, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ExistsForEmployee implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ExistsForEmployee(ctx context.Context, employeeID string) (bool, error) {
	if !isUUID(employeeID) {
		return false, nil
	}
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM shift_records WHERE employee_id = $1)`, employeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check shift records: %w", err)
	}
	return exists, nil
}
