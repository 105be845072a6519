package services

import (
	"math"
	"time"

	"github.com/kimyt990501/erp-system-backend/models"
	"github.com/kimyt990501/erp-system-backend/types"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Work-day boundaries in the organization's local wall-clock time.
// Arrivals after CheckInDeadline are late, departures before
// CheckOutEarliest are early leaves.
const (
	CheckInDeadline  = "09:00:00"
	CheckOutEarliest = "18:00:00"
)

const timeLayout = "15:04:05"

type AttendanceStats struct {
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	LateDays       int     `json:"late_days"`
	EarlyLeaveDays int     `json:"early_leave_days"`
	AbsentDays     int     `json:"absent_days"`
	AttendanceRate float64 `json:"attendance_rate"` // percent
}

type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid time %q", s)
	}
	return t, nil
}

// timeAfter reports whether a > b, both "HH:MM:SS" wall-clock strings.
func timeAfter(a, b string) (bool, error) {
	ta, err := parseClock(a)
	if err != nil {
		return false, err
	}
	tb, err := parseClock(b)
	if err != nil {
		return false, err
	}
	return ta.After(tb), nil
}

// timeBefore reports whether a < b.
func timeBefore(a, b string) (bool, error) {
	ta, err := parseClock(a)
	if err != nil {
		return false, err
	}
	tb, err := parseClock(b)
	if err != nil {
		return false, err
	}
	return ta.Before(tb), nil
}

func (s *AttendanceService) findByUserAndDate(db *gorm.DB, userID uint, workDate string) (*models.Attendance, error) {
	var attendance models.Attendance
	err := db.Where("user_id = ? AND work_date = ?", userID, workDate).First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query attendance")
	}
	return &attendance, nil
}

// CheckIn records the start of a work day. Arrivals strictly after the
// check-in deadline are classified late; this classification is final and
// is never revisited at check-out time.
func (s *AttendanceService) CheckIn(userID uint, workDate, checkIn string, notes *string) (*models.Attendance, error) {
	existing, err := s.findByUserAndDate(s.DB, userID, workDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, types.ErrAlreadyExists
	}

	late, err := timeAfter(checkIn, CheckInDeadline)
	if err != nil {
		return nil, err
	}
	status := "present"
	if late {
		status = "late"
	}

	attendance := models.Attendance{
		UserID:   userID,
		WorkDate: workDate,
		CheckIn:  &checkIn,
		Status:   status,
		Notes:    notes,
	}
	if err := s.DB.Create(&attendance).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create attendance")
	}
	return &attendance, nil
}

// CheckOut closes the day's record. A departure before the earliest
// check-out only downgrades a present record to early_leave; a late record
// keeps its status regardless of when the user leaves.
func (s *AttendanceService) CheckOut(userID uint, workDate, checkOut string) (*models.Attendance, error) {
	attendance, err := s.findByUserAndDate(s.DB, userID, workDate)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, types.ErrNotFound
	}
	if attendance.CheckOut != nil {
		return nil, types.ErrAlreadyCheckedOut
	}

	early, err := timeBefore(checkOut, CheckOutEarliest)
	if err != nil {
		return nil, err
	}
	if early && attendance.Status == "present" {
		attendance.Status = "early_leave"
	}

	attendance.CheckOut = &checkOut
	attendance.UpdatedAt = time.Now()

	if err := s.DB.Save(attendance).Error; err != nil {
		return nil, errors.Wrap(err, "failed to update attendance")
	}
	return attendance, nil
}

// CreateRecord inserts an attendance row with an explicit status, for admin
// corrections and absence bookkeeping. No status derivation happens here.
func (s *AttendanceService) CreateRecord(userID uint, workDate string, checkIn, checkOut *string, status string, notes *string) (*models.Attendance, error) {
	existing, err := s.findByUserAndDate(s.DB, userID, workDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, types.ErrAlreadyExists
	}

	if status == "" {
		status = "present"
	}

	attendance := models.Attendance{
		UserID:   userID,
		WorkDate: workDate,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   status,
		Notes:    notes,
	}
	if err := s.DB.Create(&attendance).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create attendance")
	}
	return &attendance, nil
}

// GetByUserAndDate returns the record for one day, or ErrNotFound.
func (s *AttendanceService) GetByUserAndDate(userID uint, workDate string) (*models.Attendance, error) {
	attendance, err := s.findByUserAndDate(s.DB, userID, workDate)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, types.ErrNotFound
	}
	return attendance, nil
}

// ListByUser returns a user's records, newest first, optionally bounded by
// an inclusive date range.
func (s *AttendanceService) ListByUser(userID uint, startDate, endDate string) ([]models.Attendance, error) {
	query := s.DB.Where("user_id = ?", userID)
	if startDate != "" {
		query = query.Where("work_date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("work_date <= ?", endDate)
	}

	var attendances []models.Attendance
	if err := query.Order("work_date DESC").Find(&attendances).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list attendances")
	}
	return attendances, nil
}

// ListAll returns every user's records for admins, filtered either by one
// exact date or by an inclusive range.
func (s *AttendanceService) ListAll(workDate, startDate, endDate string) ([]models.Attendance, error) {
	query := s.DB.Model(&models.Attendance{})
	if workDate != "" {
		query = query.Where("work_date = ?", workDate)
	} else {
		if startDate != "" {
			query = query.Where("work_date >= ?", startDate)
		}
		if endDate != "" {
			query = query.Where("work_date <= ?", endDate)
		}
	}

	var attendances []models.Attendance
	if err := query.Order("work_date DESC, user_id").Find(&attendances).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list attendances")
	}
	return attendances, nil
}

// Stats aggregates one user's records over an inclusive date range. Every
// status counts toward the total; only present days count toward the rate.
func (s *AttendanceService) Stats(userID uint, startDate, endDate string) (*AttendanceStats, error) {
	attendances, err := s.ListByUser(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	stats := AttendanceStats{TotalDays: len(attendances)}
	for _, a := range attendances {
		switch a.Status {
		case "present":
			stats.PresentDays++
		case "late":
			stats.LateDays++
		case "early_leave":
			stats.EarlyLeaveDays++
		case "absent":
			stats.AbsentDays++
		}
	}

	if stats.TotalDays > 0 {
		rate := float64(stats.PresentDays) / float64(stats.TotalDays) * 100
		stats.AttendanceRate = math.Round(rate*100) / 100
	}
	return &stats, nil
}
