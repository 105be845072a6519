package handlers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kimyt990501/erp-system-backend/services"
	"github.com/kimyt990501/erp-system-backend/types"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SalaryStatementCreate struct {
	PayMonth   string `json:"pay_month" validate:"required"` // YYYY-MM
	BasePay    int    `json:"base_pay" validate:"required"`
	Bonus      int    `json:"bonus"`
	Deductions int    `json:"deductions"`
	NetPay     int    `json:"net_pay" validate:"required"`
}

func GetMySalaryStatements(c *fiber.Ctx) error {
	statements, err := SalaryService.ListByUser(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    statements,
	})
}

func CreateSalaryStatement(c *fiber.Ctx) error {
	var req SalaryStatementCreate
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

	statement, err := SalaryService.Create(currentUserID(c), req.PayMonth, req.BasePay, req.Bonus, req.Deductions, req.NetPay)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    statement,
	})
}

// UploadPayslip accepts a PDF payslip, extracts the pay figures from its
// text layer and stores them as a salary statement. One statement per pay
// month per user.
func UploadPayslip(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "PDF file is required",
		})
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Only PDF files are accepted",
		})
	}

	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+".pdf")
	if err := c.SaveFile(fileHeader, tempPath); err != nil {
		utils.Logger.Error("Failed to save uploaded payslip", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}
	// Best-effort cleanup; a leftover temp file never aborts the upload.
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			utils.Logger.Warn("Failed to remove temporary payslip file",
				zap.String("path", tempPath), zap.Error(err))
		}
	}()

	data, err := services.ExtractPayslipFile(tempPath)
	if err != nil {
		return fail(c, err)
	}
	if err := services.ValidatePayslipData(data); err != nil {
		return fail(c, err)
	}

	statement, err := SalaryService.CreateFromPayslip(currentUserID(c), data)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Payslip processed successfully",
		Data:    statement,
	})
}
