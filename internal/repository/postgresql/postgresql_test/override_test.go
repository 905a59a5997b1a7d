package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/override"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideRepository_UpsertGetDelete(t *testing.T) {
	db := setupTestDB(t)
	employees := postgresql.NewEmployeeRepository(db)
	overrides := postgresql.NewOverrideRepository(db)
	ctx := context.Background()

	e, err := employees.Create(ctx, employee.Employee{Name: "Jane", EmployeeCode: "1001"})
	require.NoError(t, err)

	period := payperiod.For(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	key := override.Key{EmployeeID: e.ID, Period: period}

	for _, kind := range []override.Kind{override.KindHoursAdjustment, override.KindBonus} {
		t.Run(string(kind), func(t *testing.T) {
			_, err := overrides.Get(ctx, kind, key)
			assert.ErrorIs(t, err, override.ErrOverrideNotFound)

			first, err := overrides.Upsert(ctx, kind, key, decimal.RequireFromString("40"))
			require.NoError(t, err)
			second, err := overrides.Upsert(ctx, kind, key, decimal.RequireFromString("37.5"))
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)

			got, err := overrides.Get(ctx, kind, key)
			require.NoError(t, err)
			assert.True(t, got.Value.Equal(decimal.RequireFromString("37.5")))
			assert.True(t, got.Key.Period.Start.Equal(period.Start))

			listed, err := overrides.ListByPeriod(ctx, kind, period)
			require.NoError(t, err)
			assert.Len(t, listed, 1)
			assert.Contains(t, listed, e.ID)

			require.NoError(t, overrides.Delete(ctx, kind, key))
			require.NoError(t, overrides.Delete(ctx, kind, key))
			_, err = overrides.Get(ctx, kind, key)
			assert.ErrorIs(t, err, override.ErrOverrideNotFound)
		})
	}
}

func TestOverrideRepository_Rejects(t *testing.T) {
	db := setupTestDB(t)
	overrides := postgresql.NewOverrideRepository(db)
	ctx := context.Background()
	key := override.Key{EmployeeID: "00000000-0000-0000-0000-000000000000"}

	_, err := overrides.Upsert(ctx, override.Kind("tip"), key, decimal.Zero)
	assert.ErrorIs(t, err, override.ErrUnknownKind)

	_, err = overrides.Upsert(ctx, override.KindBonus, key, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, override.ErrNegativeValue)
}
