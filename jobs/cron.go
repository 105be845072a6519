package jobs

import (
	"github.com/kimyt990501/erp-system-backend/services"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitCronJobs registers the unattended background jobs and starts the
// scheduler. The monthly leave accrual fires on the 1st at 00:01; it has no
// caller to report to, so failures are logged and the scheduler keeps going.
func InitCronJobs(c *cron.Cron, leaveService *services.LeaveService) error {
	_, err := c.AddFunc("1 0 1 * *", func() {
		utils.Logger.Info("Starting monthly leave accrual job")
		if err := leaveService.AccrueMonthlyLeave(); err != nil {
			utils.Logger.Error("Monthly leave accrual failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	utils.Logger.Info("Cron jobs initialized")
	return nil
}
