package handlers

import (
	"strconv"
	"time"

	"github.com/kimyt990501/erp-system-backend/types"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CheckInRequest struct {
	WorkDate string  `json:"work_date" validate:"required"` // YYYY-MM-DD
	CheckIn  string  `json:"check_in" validate:"required"`  // HH:MM:SS
	Notes    *string `json:"notes,omitempty"`
}

type CheckOutRequest struct {
	WorkDate string `json:"work_date" validate:"required"` // YYYY-MM-DD
	CheckOut string `json:"check_out" validate:"required"` // HH:MM:SS
}

type AttendanceCreateRequest struct {
	WorkDate string  `json:"work_date" validate:"required"` // YYYY-MM-DD
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Status   string  `json:"status" validate:"omitempty,oneof=present late early_leave absent"`
	Notes    *string `json:"notes,omitempty"`
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validClock(s string) bool {
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

func CheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	if !validDate(req.WorkDate) || !validClock(req.CheckIn) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date or time format. Use YYYY-MM-DD and HH:MM:SS",
		})
	}

	attendance, err := AttendanceService.CheckIn(currentUserID(c), req.WorkDate, req.CheckIn, req.Notes)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Check-in successful",
		Data:    attendance,
	})
}

func CheckOut(c *fiber.Ctx) error {
	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	if !validDate(req.WorkDate) || !validClock(req.CheckOut) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date or time format. Use YYYY-MM-DD and HH:MM:SS",
		})
	}

	attendance, err := AttendanceService.CheckOut(currentUserID(c), req.WorkDate, req.CheckOut)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Check-out successful",
		Data:    attendance,
	})
}

func GetMyAttendanceRecords(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if (startDate != "" && !validDate(startDate)) || (endDate != "" && !validDate(endDate)) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	attendances, err := AttendanceService.ListByUser(currentUserID(c), startDate, endDate)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    attendances,
	})
}

func GetMyAttendanceStats(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if !validDate(startDate) || !validDate(endDate) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "start_date and end_date are required as YYYY-MM-DD",
		})
	}

	stats, err := AttendanceService.Stats(currentUserID(c), startDate, endDate)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}

func GetTodayAttendance(c *fiber.Ctx) error {
	today := time.Now().Format("2006-01-02")
	attendance, err := AttendanceService.GetByUserAndDate(currentUserID(c), today)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    attendance,
	})
}

// === admin endpoints ===

func GetAllAttendanceRecords(c *fiber.Ctx) error {
	workDate := c.Query("work_date")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	for _, d := range []string{workDate, startDate, endDate} {
		if d != "" && !validDate(d) {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid date format. Use YYYY-MM-DD",
			})
		}
	}

	attendances, err := AttendanceService.ListAll(workDate, startDate, endDate)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    attendances,
	})
}

func CreateAttendanceRecord(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user id",
		})
	}

	var req AttendanceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	if !validDate(req.WorkDate) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	attendance, err := AttendanceService.CreateRecord(uint(userID), req.WorkDate, req.CheckIn, req.CheckOut, req.Status, req.Notes)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Attendance record created",
		Data:    attendance,
	})
}

func GetUserAttendanceStats(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user id",
		})
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if !validDate(startDate) || !validDate(endDate) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "start_date and end_date are required as YYYY-MM-DD",
		})
	}

	stats, err := AttendanceService.Stats(uint(userID), startDate, endDate)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}
