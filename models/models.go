package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null;index" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	HireDate     string    `gorm:"not null" json:"hire_date"` // YYYY-MM-DD
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	Role         string    `gorm:"not null;default:'user'" json:"role"` // user, admin
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// LeaveBalance is the per-user accrual ledger. Remaining days are always
// derived as TotalGranted - TotalUsed, never stored.
type LeaveBalance struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	UserID       uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalGranted float64 `gorm:"not null;default:0" json:"total_granted"`
	TotalUsed    float64 `gorm:"not null;default:0" json:"total_used"`
}

type LeaveRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	StartDate string    `gorm:"not null" json:"start_date"` // YYYY-MM-DD
	EndDate   string    `gorm:"not null" json:"end_date"`   // YYYY-MM-DD
	DaysUsed  float64   `gorm:"not null" json:"days_used"`
	Reason    *string   `json:"reason,omitempty"`
	Status    string    `gorm:"not null;default:'pending'" json:"status"` // pending, approved, rejected
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Attendance holds one user's record for one calendar work date.
// CheckIn/CheckOut are wall-clock "HH:MM:SS" strings in the organization's
// local time; no timezone conversion happens anywhere in the pipeline.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_work_date" json:"user_id"`
	WorkDate  string    `gorm:"not null;index;uniqueIndex:idx_user_work_date" json:"work_date"` // YYYY-MM-DD
	CheckIn   *string   `json:"check_in,omitempty"`  // HH:MM:SS
	CheckOut  *string   `json:"check_out,omitempty"` // HH:MM:SS
	Status    string    `gorm:"not null;default:'present'" json:"status"` // present, late, early_leave, absent
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// SalaryStatement is append-only; no update or delete path exists.
type SalaryStatement struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	PayMonth   string    `gorm:"not null" json:"pay_month"` // YYYY-MM
	BasePay    int       `gorm:"not null" json:"base_pay"`
	Bonus      int       `gorm:"not null;default:0" json:"bonus"`
	Deductions int       `gorm:"not null;default:0" json:"deductions"`
	NetPay     int       `gorm:"not null" json:"net_pay"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
