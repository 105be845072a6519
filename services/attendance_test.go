package services

import (
	"testing"

	"github.com/kimyt990501/erp-system-backend/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInStatusThreshold(t *testing.T) {
	cases := []struct {
		name    string
		checkIn string
		status  string
	}{
		{"well before deadline", "08:30:00", "present"},
		{"exactly on deadline", "09:00:00", "present"},
		{"one second late", "09:00:01", "late"},
		{"late morning", "10:45:12", "late"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			svc := NewAttendanceService(db)
			user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

			attendance, err := svc.CheckIn(user.ID, "2025-06-02", tc.checkIn, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.status, attendance.Status)
			require.NotNil(t, attendance.CheckIn)
			assert.Equal(t, tc.checkIn, *attendance.CheckIn)
			assert.Nil(t, attendance.CheckOut)
		})
	}
}

func TestCheckInRejectsSecondRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	_, err := svc.CheckIn(user.ID, "2025-06-02", "08:55:00", nil)
	require.NoError(t, err)

	// Second check-in fails no matter what arguments it carries.
	_, err = svc.CheckIn(user.ID, "2025-06-02", "13:00:00", strptr("came back"))
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	// A different day is fine.
	_, err = svc.CheckIn(user.ID, "2025-06-03", "08:55:00", nil)
	assert.NoError(t, err)
}

func TestCheckOutEarlyLeave(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	_, err := svc.CheckIn(user.ID, "2025-06-02", "08:30:00", nil)
	require.NoError(t, err)

	attendance, err := svc.CheckOut(user.ID, "2025-06-02", "17:00:00")
	require.NoError(t, err)
	assert.Equal(t, "early_leave", attendance.Status)
	require.NotNil(t, attendance.CheckOut)
	assert.Equal(t, "17:00:00", *attendance.CheckOut)
}

func TestCheckOutOnTimeKeepsPresent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	_, err := svc.CheckIn(user.ID, "2025-06-02", "08:30:00", nil)
	require.NoError(t, err)

	// 18:00:00 exactly is not early.
	attendance, err := svc.CheckOut(user.ID, "2025-06-02", "18:00:00")
	require.NoError(t, err)
	assert.Equal(t, "present", attendance.Status)
}

func TestCheckOutLateTakesPrecedence(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	_, err := svc.CheckIn(user.ID, "2025-06-02", "09:30:00", nil)
	require.NoError(t, err)

	// Arriving late and leaving early still reads late.
	attendance, err := svc.CheckOut(user.ID, "2025-06-02", "16:00:00")
	require.NoError(t, err)
	assert.Equal(t, "late", attendance.Status)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	_, err := svc.CheckOut(user.ID, "2025-06-02", "18:30:00")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCheckOutTwice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	_, err := svc.CheckIn(user.ID, "2025-06-02", "08:30:00", nil)
	require.NoError(t, err)
	_, err = svc.CheckOut(user.ID, "2025-06-02", "18:30:00")
	require.NoError(t, err)

	_, err = svc.CheckOut(user.ID, "2025-06-02", "19:00:00")
	assert.ErrorIs(t, err, types.ErrAlreadyCheckedOut)
}

func TestCreateRecordExplicitStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	attendance, err := svc.CreateRecord(user.ID, "2025-06-02", nil, nil, "absent", strptr("no show"))
	require.NoError(t, err)
	assert.Equal(t, "absent", attendance.Status)

	_, err = svc.CreateRecord(user.ID, "2025-06-02", nil, nil, "present", nil)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	// Unspecified status defaults to present, no derivation from times.
	attendance, err = svc.CreateRecord(user.ID, "2025-06-03", strptr("11:00:00"), nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "present", attendance.Status)
}

func TestStatsCountsAndRate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	records := []struct {
		date   string
		status string
	}{
		{"2025-06-02", "present"},
		{"2025-06-03", "present"},
		{"2025-06-04", "late"},
		{"2025-06-05", "early_leave"},
		{"2025-06-06", "absent"},
		{"2025-06-09", "present"},
	}
	for _, r := range records {
		_, err := svc.CreateRecord(user.ID, r.date, nil, nil, r.status, nil)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(user.ID, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalDays)
	assert.Equal(t, 3, stats.PresentDays)
	assert.Equal(t, 1, stats.LateDays)
	assert.Equal(t, 1, stats.EarlyLeaveDays)
	assert.Equal(t, 1, stats.AbsentDays)
	// 3/6 * 100 = 50.00
	assert.InDelta(t, 50.0, stats.AttendanceRate, 0.001)

	// The range is inclusive and excludes records outside it.
	stats, err = svc.Stats(user.ID, "2025-06-02", "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalDays)
	assert.Equal(t, 2, stats.PresentDays)
	assert.InDelta(t, 66.67, stats.AttendanceRate, 0.001)
}

func TestStatsEmptyRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	stats, err := svc.Stats(user.ID, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDays)
	assert.Equal(t, 0.0, stats.AttendanceRate)
}

func TestListByUserOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttendanceService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	for _, d := range []string{"2025-06-02", "2025-06-04", "2025-06-03"} {
		_, err := svc.CreateRecord(user.ID, d, nil, nil, "present", nil)
		require.NoError(t, err)
	}

	list, err := svc.ListByUser(user.ID, "", "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-06-04", list[0].WorkDate)
	assert.Equal(t, "2025-06-02", list[2].WorkDate)

	list, err = svc.ListByUser(user.ID, "2025-06-03", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
