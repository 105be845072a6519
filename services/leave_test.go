package services

import (
	"testing"
	"time"

	"github.com/kimyt990501/erp-system-backend/models"
	"github.com/kimyt990501/erp-system-backend/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestInvalidRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	_, err := svc.CreateRequest(user.ID, "2025-07-10", "2025-07-08", 2, nil)
	assert.ErrorIs(t, err, types.ErrInvalidRange)

	// Single-day request is a valid range.
	_, err = svc.CreateRequest(user.ID, "2025-07-10", "2025-07-10", 1, nil)
	assert.NoError(t, err)
}

func TestCreateRequestBalanceCheck(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 7)

	_, err := svc.CreateRequest(user.ID, "2025-07-01", "2025-07-10", 3.5, nil)
	assert.ErrorIs(t, err, types.ErrInsufficientBalance)

	// Exactly the remaining balance is accepted.
	request, err := svc.CreateRequest(user.ID, "2025-07-01", "2025-07-03", 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "pending", request.Status)

	// Creation does not reserve days: the same remaining balance still
	// admits another request.
	_, err = svc.CreateRequest(user.ID, "2025-08-01", "2025-08-03", 3, nil)
	assert.NoError(t, err)
}

func TestCreateRequestWithoutBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)

	user := models.User{Email: "orphan@company.com", PasswordHash: "x", Name: "Orphan", HireDate: "2025-01-02", IsActive: true, Role: "user"}
	require.NoError(t, db.Create(&user).Error)

	_, err := svc.CreateRequest(user.ID, "2025-07-01", "2025-07-02", 1, nil)
	assert.ErrorIs(t, err, types.ErrBalanceNotFound)
}

func TestApproveDebitsBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 2)

	request, err := svc.CreateRequest(user.ID, "2025-07-01", "2025-07-03", 2.5, strptr("family trip"))
	require.NoError(t, err)

	approved, err := svc.Approve(request.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	balance, err := svc.Balance(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, balance.TotalUsed, 0.001)
	assert.InDelta(t, 5.5, balance.RemainingDays, 0.001)
}

func TestApproveIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	request, err := svc.CreateRequest(user.ID, "2025-07-01", "2025-07-02", 1, nil)
	require.NoError(t, err)

	_, err = svc.Approve(request.ID)
	require.NoError(t, err)

	_, err = svc.Approve(request.ID)
	assert.ErrorIs(t, err, types.ErrInvalidState)
	_, err = svc.Reject(request.ID)
	assert.ErrorIs(t, err, types.ErrInvalidState)

	// The double approval attempt must not have debited again.
	balance, err := svc.Balance(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, balance.TotalUsed, 0.001)
}

func TestRejectLeavesBalanceUntouched(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	request, err := svc.CreateRequest(user.ID, "2025-07-01", "2025-07-02", 2, nil)
	require.NoError(t, err)

	rejected, err := svc.Reject(request.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)

	balance, err := svc.Balance(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, balance.TotalUsed, 0.001)

	_, err = svc.Approve(request.ID)
	assert.ErrorIs(t, err, types.ErrInvalidState)
}

func TestApproveMissingRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)

	_, err := svc.Approve(12345)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = svc.Reject(12345)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAccrueMonthlyLeaveEligibility(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)

	recentHire := time.Now().AddDate(0, -6, 0).Format("2006-01-02")
	veteranHire := time.Now().AddDate(-2, 0, 0).Format("2006-01-02")

	eligible := seedUser(t, db, "junior@company.com", recentHire, 5, 0)
	veteran := seedUser(t, db, "senior@company.com", veteranHire, 15, 0)
	inactive := seedUser(t, db, "gone@company.com", recentHire, 3, 0)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)

	require.NoError(t, svc.AccrueMonthlyLeave())

	balance, err := svc.Balance(eligible.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, balance.TotalGranted, 0.001)

	balance, err = svc.Balance(veteran.ID)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, balance.TotalGranted, 0.001)

	balance, err = svc.Balance(inactive.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, balance.TotalGranted, 0.001)
}

func TestAccrueMonthlyLeaveIsNotIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)

	recentHire := time.Now().AddDate(0, -3, 0).Format("2006-01-02")
	user := seedUser(t, db, "junior@company.com", recentHire, 2, 0)

	// No per-month guard exists: running the job twice in the same month
	// grants twice.
	require.NoError(t, svc.AccrueMonthlyLeave())
	require.NoError(t, svc.AccrueMonthlyLeave())

	balance, err := svc.Balance(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, balance.TotalGranted, 0.001)
}

func TestListAllStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)
	user := seedUser(t, db, "worker@company.com", "2025-01-02", 10, 0)

	first, err := svc.CreateRequest(user.ID, "2025-07-01", "2025-07-02", 1, nil)
	require.NoError(t, err)
	_, err = svc.CreateRequest(user.ID, "2025-08-01", "2025-08-02", 1, nil)
	require.NoError(t, err)

	_, err = svc.Approve(first.ID)
	require.NoError(t, err)

	pending, err := svc.ListAll("pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.ListAll("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	// Ordered by start date, newest first.
	assert.Equal(t, "2025-08-01", all[0].StartDate)
}

func TestBalanceMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeaveService(db)

	_, err := svc.Balance(999)
	assert.ErrorIs(t, err, types.ErrBalanceNotFound)
}
