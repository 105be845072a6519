package handlers

import (
	"github.com/kimyt990501/erp-system-backend/types"

	"github.com/gofiber/fiber/v2"
)

func GetMe(c *fiber.Ctx) error {
	user, err := UserService.GetByID(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    user,
	})
}

func GetAllUsers(c *fiber.Ctx) error {
	users, err := UserService.ListAll()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    users,
	})
}
