package handlers

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/internal/api/presenters"
	"wastenot/internal/utils/storage"
	"wastenot/pkg/analytics"
	"wastenot/pkg/reminder"
	"wastenot/pkg/transfer"
	"wastenot/pkg/user"
)

type (
	ProfileHandler interface {
		GetPreferences(c *fiber.Ctx) error
		UpdatePreferences(c *fiber.Ctx) error
		GetStats(c *fiber.Ctx) error
		Export(c *fiber.Ctx) error
		Import(c *fiber.Ctx) error
		Backup(c *fiber.Ctx) error
		ClearData(c *fiber.Ctx) error
		GetReminder(c *fiber.Ctx) error
		SendReminder(c *fiber.Ctx) error
	}

	profileHandler struct {
		userService      user.UserService
		analyticsService analytics.AnalyticsService
		transferService  transfer.TransferService
		reminderService  reminder.ReminderService
		s3               storage.AwsS3
	}
)

func NewProfileHandler(
	userService user.UserService,
	analyticsService analytics.AnalyticsService,
	transferService transfer.TransferService,
	reminderService reminder.ReminderService,
	s3 storage.AwsS3,
) ProfileHandler {
	return &profileHandler{
		userService:      userService,
		analyticsService: analyticsService,
		transferService:  transferService,
		reminderService:  reminderService,
		s3:               s3,
	}
}

func (h *profileHandler) GetPreferences(c *fiber.Ctx) error {
	prefs, err := h.userService.GetPreferences(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetPreferences, err)
	}

	return presenters.SuccessResponse(c, prefs, fiber.StatusOK, domain.MessageSuccessGetPreferences)
}

func (h *profileHandler) UpdatePreferences(c *fiber.Ctx) error {
	req := entities.Preferences{}

	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	prefs, err := h.userService.UpdatePreferences(c.UserContext(), req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdatePreferences, err)
	}

	return presenters.SuccessResponse(c, prefs, fiber.StatusOK, domain.MessageSuccessUpdatePreferences)
}

func (h *profileHandler) GetStats(c *fiber.Ctx) error {
	res, err := h.analyticsService.GetProfileStats(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetProfileStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfileStats)
}

func (h *profileHandler) Export(c *fiber.Ctx) error {
	return exportAttachment(c, h.transferService)
}

// Import takes the bundle either as an uploaded "file" field or as the raw
// request body.
func (h *profileHandler) Import(c *fiber.Ctx) error {
	var body io.Reader
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNoFile, err)
		}
		defer f.Close()
		body = f
	} else {
		if len(c.Body()) == 0 {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNoFile, domain.ErrImportFormat)
		}
		body = bytes.NewReader(c.Body())
	}

	res, err := h.transferService.Import(c.UserContext(), body)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedImport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImport)
}

func (h *profileHandler) Backup(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.transferService.ExportJSON(c.UserContext(), &buf); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedBackup, err)
	}

	res, err := h.s3.UploadBackup(c.UserContext(), buf.Bytes())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedBackup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessBackup)
}

func (h *profileHandler) ClearData(c *fiber.Ctx) error {
	if err := h.transferService.ClearAll(c.UserContext()); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedClear, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClear)
}

func (h *profileHandler) GetReminder(c *fiber.Ctx) error {
	res, err := h.reminderService.Summary(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetReminder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReminder)
}

func (h *profileHandler) SendReminder(c *fiber.Ctx) error {
	res, err := h.reminderService.SendDailyReminder(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedSendReminder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendReminder)
}
