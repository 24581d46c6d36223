package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/aimarket-backend/internal/jobs/lifecycle"
	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/repository"
)

// JobHandler dış zamanlayıcının tetiklediği endpoint'ler. Erişim
// CronMiddleware ile korunur; her çalıştırma JobRun'a yazılır.
type JobHandler struct {
	lifecycleJob *lifecycle.Job
	jobRunRepo   *repository.JobRunRepository
}

func NewJobHandler(lifecycleJob *lifecycle.Job, jobRunRepo *repository.JobRunRepository) *JobHandler {
	return &JobHandler{
		lifecycleJob: lifecycleJob,
		jobRunRepo:   jobRunRepo,
	}
}

func (h *JobHandler) RunCleanup(c *fiber.Ctx) error {
	startedAt := time.Now()

	report, err := h.lifecycleJob.Cleanup()
	if err != nil {
		h.recordRun("cleanup", startedAt, fmt.Sprintf("failed: %v", err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	h.recordRun("cleanup", startedAt,
		fmt.Sprintf("deleted %d of %d, %d errors", report.Deleted, report.Total, len(report.Errors)))

	return c.JSON(models.SuccessResponse(report, "Cleanup completed"))
}

func (h *JobHandler) RunSendReminders(c *fiber.Ctx) error {
	startedAt := time.Now()

	report, err := h.lifecycleJob.SendReminders()
	if err != nil {
		h.recordRun("send-reminders", startedAt, fmt.Sprintf("failed: %v", err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	h.recordRun("send-reminders", startedAt,
		fmt.Sprintf("sent %d reminders to %d buyers", report.RemindersSent, report.TotalBuyers))

	return c.JSON(models.SuccessResponse(report, "Reminder run completed"))
}

func (h *JobHandler) recordRun(name string, startedAt time.Time, summary string) {
	h.jobRunRepo.Create(&models.JobRun{
		Name:       name,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Summary:    summary,
	})
}
