package postgresql

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/override"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Malformed ids are answered without a query, so a nil pool is never touched.
func TestMalformedIDsAreNotFound(t *testing.T) {
	ctx := context.Background()
	employees := NewEmployeeRepository(nil)
	shifts := NewShiftRepository(nil)
	overrides := NewOverrideRepository(nil)

	for _, id := range []string{"abc", "", "1", "0188d0f27b8c7b4a8a2b6b8b8b8b8b8b", "'; DROP TABLE employees; --"} {
		t.Run(id, func(t *testing.T) {
			_, err := employees.GetByID(ctx, id)
			assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
			_, err = employees.Update(ctx, employee.Employee{ID: id, Name: "X", EmployeeCode: "0001"})
			assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
			assert.ErrorIs(t, employees.Delete(ctx, id), employee.ErrEmployeeNotFound)
			assert.ErrorIs(t, employees.LockByID(ctx, id), employee.ErrEmployeeNotFound)

			_, err = shifts.GetByID(ctx, id)
			assert.ErrorIs(t, err, shift.ErrShiftNotFound)
			_, err = shifts.GetOpenByEmployee(ctx, id)
			assert.ErrorIs(t, err, shift.ErrNoOpenShift)
			_, err = shifts.Update(ctx, shift.ShiftRecord{ID: id})
			assert.ErrorIs(t, err, shift.ErrShiftNotFound)
			records, err := shifts.List(ctx, shift.ShiftFilter{EmployeeID: &id})
			require.NoError(t, err)
			assert.Empty(t, records)
			exists, err := shifts.ExistsForEmployee(ctx, id)
			require.NoError(t, err)
			assert.False(t, exists)

			key := override.Key{EmployeeID: id}
			_, err = overrides.Get(ctx, override.KindBonus, key)
			assert.ErrorIs(t, err, override.ErrOverrideNotFound)
			_, err = overrides.Upsert(ctx, override.KindBonus, key, decimal.NewFromInt(5))
			assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
			assert.NoError(t, overrides.Delete(ctx, override.KindHoursAdjustment, key))
		})
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.True(t, isUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.False(t, isUUID("{0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b}"))
	assert.False(t, isUUID("urn:uuid:0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.False(t, isUUID("abc"))
}
