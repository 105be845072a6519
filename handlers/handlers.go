package handlers

import (
	"github.com/kimyt990501/erp-system-backend/services"
	"github.com/kimyt990501/erp-system-backend/types"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	DB                *gorm.DB
	UserService       *services.UserService
	AttendanceService *services.AttendanceService
	LeaveService      *services.LeaveService
	SalaryService     *services.SalaryService
)

func InitHandlers(db *gorm.DB) {
	DB = db
	UserService = services.NewUserService(db)
	AttendanceService = services.NewAttendanceService(db)
	LeaveService = services.NewLeaveService(db)
	SalaryService = services.NewSalaryService(db)
}

func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("user_id").(uint)
}

// fail translates a domain error into the client-facing failure response.
// Conflicts, business-rule violations and lifecycle errors are 400s, absent
// entities 404s; anything else is logged and reported as a server fault.
func fail(c *fiber.Ctx, err error) error {
	var missing *types.MissingFieldError

	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrBalanceNotFound):
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	case errors.Is(err, types.ErrAlreadyExists),
		errors.Is(err, types.ErrAlreadyCheckedOut),
		errors.Is(err, types.ErrDuplicatePeriod),
		errors.Is(err, types.ErrInvalidState),
		errors.Is(err, types.ErrInvalidRange),
		errors.Is(err, types.ErrInsufficientBalance),
		errors.Is(err, types.ErrNegativeAmount),
		errors.Is(err, types.ErrMalformedPeriod),
		errors.As(err, &missing):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	utils.Logger.Error("Unexpected error", zap.Error(err))
	return c.Status(500).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrInternalError,
	})
}
