package handlers

import (
	"strconv"

	"github.com/kimyt990501/erp-system-backend/types"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaveRequestCreate struct {
	StartDate string  `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string  `json:"end_date" validate:"required"`   // YYYY-MM-DD
	DaysUsed  float64 `json:"days_used" validate:"required,gt=0"`
	Reason    *string `json:"reason,omitempty"`
}

func GetMyLeaveBalance(c *fiber.Ctx) error {
	balance, err := LeaveService.Balance(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    balance,
	})
}

func CreateLeaveRequest(c *fiber.Ctx) error {
	var req LeaveRequestCreate
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
	if !validDate(req.StartDate) || !validDate(req.EndDate) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	request, err := LeaveService.CreateRequest(currentUserID(c), req.StartDate, req.EndDate, req.DaysUsed, req.Reason)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leave request submitted",
		Data:    request,
	})
}

func GetMyLeaveRequests(c *fiber.Ctx) error {
	requests, err := LeaveService.ListByUser(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    requests,
	})
}

// === admin endpoints ===

func GetAllLeaveRequests(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != "pending" && status != "approved" && status != "rejected" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "status must be one of pending, approved, rejected",
		})
	}

	requests, err := LeaveService.ListAll(status)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    requests,
	})
}

func ApproveLeaveRequest(c *fiber.Ctx) error {
	requestID, err := strconv.ParseUint(c.Params("request_id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid request id",
		})
	}

	request, err := LeaveService.Approve(uint(requestID))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leave request approved",
		Data:    request,
	})
}

func RejectLeaveRequest(c *fiber.Ctx) error {
	requestID, err := strconv.ParseUint(c.Params("request_id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid request id",
		})
	}

	request, err := LeaveService.Reject(uint(requestID))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leave request rejected",
		Data:    request,
	})
}
