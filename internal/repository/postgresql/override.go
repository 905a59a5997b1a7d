package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/override"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// overrideTables maps each kind to its table. Table names never come from input.
var overrideTables = map[override.Kind]string{
	override.KindHoursAdjustment: "hours_adjustments",
	override.KindBonus:           "bonuses",
}

type overrideRepositoryImpl struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) override.Repository {
	return &overrideRepositoryImpl{db: db}
}

func overrideTable(kind override.Kind) (string, error) {
	table, ok := overrideTables[kind]
	if !ok {
		return "", override.ErrUnknownKind
	}
	return table, nil
}

func scanOverride(row pgx.Row, kind override.Kind) (override.Override, error) {
	var o override.Override
	o.Kind = kind
	err := row.Scan(
		&o.ID, &o.Key.EmployeeID, &o.Key.Period.Start, &o.Key.Period.End,
		&o.Value, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return override.Override{}, err
	}
	o.Key.Period.Start = payperiod.Date(o.Key.Period.Start)
	o.Key.Period.End = payperiod.Date(o.Key.Period.End)
	return o, nil
}

const overrideColumns = `id, employee_id, period_start, period_end, value, created_at, updated_at`

// Get implements override.Repository.
func (r *overrideRepositoryImpl) Get(ctx context.Context, kind override.Kind, key override.Key) (override.Override, error) {
	table, err := overrideTable(kind)
	if err != nil {
		return override.Override{}, err
	}
	if !isUUID(key.EmployeeID) {
		return override.Override{}, override.ErrOverrideNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overrideColumns + ` FROM ` + table + `
		WHERE employee_id = $1 AND period_start = $2 AND period_end = $3`

	o, err := scanOverride(q.QueryRow(ctx, query, key.EmployeeID, key.Period.Start, key.Period.End), kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return override.Override{}, override.ErrOverrideNotFound
		}
		return override.Override{}, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return o, nil
}

// Upsert implements override.Repository.
func (r *overrideRepositoryImpl) Upsert(ctx context.Context, kind override.Kind, key override.Key, value decimal.Decimal) (override.Override, error) {
	table, err := overrideTable(kind)
	if err != nil {
		return override.Override{}, err
	}
	if value.IsNegative() {
		return override.Override{}, override.ErrNegativeValue
	}
	if !isUUID(key.EmployeeID) {
		return override.Override{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return override.Override{}, fmt.Errorf("failed to generate %s id: %w", kind, err)
	}

	query := `
		INSERT INTO ` + table + ` (id, employee_id, period_start, period_end, value)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, period_start, period_end)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING ` + overrideColumns

	o, err := scanOverride(q.QueryRow(ctx, query,
		id.String(), key.EmployeeID, key.Period.Start, key.Period.End, value,
	), kind)
	if err != nil {
		return override.Override{}, fmt.Errorf("failed to upsert %s: %w", kind, err)
	}
	return o, nil
}

// Delete implements override.Repository.
func (r *overrideRepositoryImpl) Delete(ctx context.Context, kind override.Kind, key override.Key) error {
	table, err := overrideTable(kind)
	if err != nil {
		return err
	}
	if !isUUID(key.EmployeeID) {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM ` + table + ` WHERE employee_id = $1 AND period_start = $2 AND period_end = $3`

	if _, err := q.Exec(ctx, query, key.EmployeeID, key.Period.Start, key.Period.End); err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return nil
}

// ListByPeriod implements override.Repository.
func (r *overrideRepositoryImpl) ListByPeriod(ctx context.Context, kind override.Kind, period payperiod.Period) (map[string]override.Override, error) {
	table, err := overrideTable(kind)
	if err != nil {
		return nil, err
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overrideColumns + ` FROM ` + table + `
		WHERE period_start = $1 AND period_end = $2`

	rows, err := q.Query(ctx, query, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer rows.Close()

	result := make(map[string]override.Override)
	for rows.Next() {
		o, err := scanOverride(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		result[o.Key.EmployeeID] = o
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
