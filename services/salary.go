package services

import (
	"github.com/kimyt990501/erp-system-backend/models"
	"github.com/kimyt990501/erp-system-backend/types"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SalaryService struct {
	DB *gorm.DB
}

func NewSalaryService(db *gorm.DB) *SalaryService {
	return &SalaryService{DB: db}
}

// ListByUser returns a user's statements, most recent pay month first.
func (s *SalaryService) ListByUser(userID uint) ([]models.SalaryStatement, error) {
	var statements []models.SalaryStatement
	err := s.DB.Where("user_id = ?", userID).
		Order("pay_month DESC").
		Find(&statements).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list salary statements")
	}
	return statements, nil
}

// Create inserts a statement as given. Duplicate pay months are allowed
// here; only the PDF upload path rejects them.
func (s *SalaryService) Create(userID uint, payMonth string, basePay, bonus, deductions, netPay int) (*models.SalaryStatement, error) {
	statement := models.SalaryStatement{
		UserID:     userID,
		PayMonth:   payMonth,
		BasePay:    basePay,
		Bonus:      bonus,
		Deductions: deductions,
		NetPay:     netPay,
	}
	if err := s.DB.Create(&statement).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create salary statement")
	}
	return &statement, nil
}

// CreateFromPayslip stores extracted payslip figures, rejecting a second
// statement for a pay month the user already has on file.
func (s *SalaryService) CreateFromPayslip(userID uint, data *PayslipData) (*models.SalaryStatement, error) {
	var count int64
	err := s.DB.Model(&models.SalaryStatement{}).
		Where("user_id = ? AND pay_month = ?", userID, data.PayMonth).
		Count(&count).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for existing statement")
	}
	if count > 0 {
		return nil, types.ErrDuplicatePeriod
	}

	return s.Create(userID, data.PayMonth, data.BasePay, 0, data.Deductions, data.NetPay)
}
