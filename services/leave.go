package services

import (
	"time"

	"github.com/kimyt990501/erp-system-backend/models"
	"github.com/kimyt990501/erp-system-backend/types"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MonthlyGrantDays is added to the balance of every eligible user each time
// the accrual job runs.
const MonthlyGrantDays = 1.0

type LeaveBalanceInfo struct {
	TotalGranted  float64 `json:"total_granted"`
	TotalUsed     float64 `json:"total_used"`
	RemainingDays float64 `json:"remaining_days"`
}

type LeaveService struct {
	DB *gorm.DB
}

func NewLeaveService(db *gorm.DB) *LeaveService {
	return &LeaveService{DB: db}
}

func (s *LeaveService) balanceByUser(db *gorm.DB, userID uint) (*models.LeaveBalance, error) {
	var balance models.LeaveBalance
	err := db.Where("user_id = ?", userID).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query leave balance")
	}
	return &balance, nil
}

// Balance returns the user's ledger with the derived remaining days.
func (s *LeaveService) Balance(userID uint) (*LeaveBalanceInfo, error) {
	balance, err := s.balanceByUser(s.DB, userID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, types.ErrBalanceNotFound
	}
	return &LeaveBalanceInfo{
		TotalGranted:  balance.TotalGranted,
		TotalUsed:     balance.TotalUsed,
		RemainingDays: balance.TotalGranted - balance.TotalUsed,
	}, nil
}

// CreateRequest validates against the balance as it stands right now and
// inserts a pending request. The requested days are not reserved; the debit
// happens at approval time.
func (s *LeaveService) CreateRequest(userID uint, startDate, endDate string, daysUsed float64, reason *string) (*models.LeaveRequest, error) {
	if startDate > endDate {
		return nil, types.ErrInvalidRange
	}

	// Signup creates the balance, so this should never trigger.
	balance, err := s.balanceByUser(s.DB, userID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, types.ErrBalanceNotFound
	}

	remaining := balance.TotalGranted - balance.TotalUsed
	if daysUsed > remaining {
		return nil, types.ErrInsufficientBalance
	}

	request := models.LeaveRequest{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		DaysUsed:  daysUsed,
		Reason:    reason,
		Status:    "pending",
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create leave request")
	}
	return &request, nil
}

// Approve moves a pending request to approved and debits the owner's
// balance, both inside one transaction. Sufficiency is not re-checked here:
// two pending requests that each fit the balance can both be approved and
// drive the remaining days negative. Validation happens at creation time
// only.
func (s *LeaveService) Approve(requestID uint) (*models.LeaveRequest, error) {
	var request models.LeaveRequest

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return errors.Wrap(err, "failed to query leave request")
		}

		if request.Status != "pending" {
			return types.ErrInvalidState
		}

		request.Status = "approved"
		request.UpdatedAt = time.Now()
		if err := tx.Save(&request).Error; err != nil {
			return errors.Wrap(err, "failed to update leave request")
		}

		balance, err := s.balanceByUser(tx, request.UserID)
		if err != nil {
			return err
		}
		if balance == nil {
			return types.ErrBalanceNotFound
		}

		balance.TotalUsed += request.DaysUsed
		if err := tx.Save(balance).Error; err != nil {
			return errors.Wrap(err, "failed to update leave balance")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Reject moves a pending request to rejected. The balance is untouched.
func (s *LeaveService) Reject(requestID uint) (*models.LeaveRequest, error) {
	var request models.LeaveRequest

	if err := s.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to query leave request")
	}

	if request.Status != "pending" {
		return nil, types.ErrInvalidState
	}

	request.Status = "rejected"
	request.UpdatedAt = time.Now()
	if err := s.DB.Save(&request).Error; err != nil {
		return nil, errors.Wrap(err, "failed to update leave request")
	}
	return &request, nil
}

// ListByUser returns a user's requests, most recent start date first.
func (s *LeaveService) ListByUser(userID uint) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	err := s.DB.Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&requests).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list leave requests")
	}
	return requests, nil
}

// ListAll returns every request for admins, optionally filtered by status.
func (s *LeaveService) ListAll(status string) ([]models.LeaveRequest, error) {
	query := s.DB.Model(&models.LeaveRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.LeaveRequest
	if err := query.Order("start_date DESC").Find(&requests).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list leave requests")
	}
	return requests, nil
}

// AccrueMonthlyLeave grants one leave day to every active user hired within
// the last year. The whole grant is one transaction: a failure applies
// nothing. There is no per-month idempotency key, so running this twice in
// the same month double-grants; the scheduler is the only intended caller.
func (s *LeaveService) AccrueMonthlyLeave() error {
	today := time.Now()
	oneYearAgo := today.AddDate(-1, 0, 0).Format("2006-01-02")

	var userIDs []uint
	err := s.DB.Model(&models.User{}).
		Where("is_active = ? AND hire_date > ?", true, oneYearAgo).
		Pluck("id", &userIDs).Error
	if err != nil {
		return errors.Wrap(err, "failed to select users for accrual")
	}

	if len(userIDs) == 0 {
		utils.Logger.Info("No users eligible for monthly leave accrual")
		return nil
	}

	err = s.DB.Model(&models.LeaveBalance{}).
		Where("user_id IN ?", userIDs).
		Update("total_granted", gorm.Expr("total_granted + ?", MonthlyGrantDays)).Error
	if err != nil {
		return errors.Wrap(err, "failed to apply monthly leave grants")
	}

	utils.Logger.Info("Monthly leave accrual applied", zap.Int("users", len(userIDs)))
	return nil
}
