package handlers

import (
	"time"

	"github.com/kimyt990501/erp-system-backend/services"
	"github.com/kimyt990501/erp-system-backend/types"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	HireDate string `json:"hire_date" validate:"required"` // YYYY-MM-DD
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Signup(c *fiber.Ctx) error {
	var req SignupRequest
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
	if _, err := time.Parse("2006-01-02", req.HireDate); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid hire date format. Use YYYY-MM-DD",
		})
	}

	user, err := UserService.Signup(req.Email, req.Password, req.Name, req.HireDate)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    user,
	})
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
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

	token, err := UserService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrInactiveUser) {
			return c.Status(401).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
		},
	})
}
