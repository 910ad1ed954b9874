package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"wastenot/domain"
	"wastenot/internal/api/presenters"
	"wastenot/pkg/analytics"
	"wastenot/pkg/transfer"
)

type (
	AnalyticsHandler interface {
		GetDashboardStats(c *fiber.Ctx) error
		GetAnalytics(c *fiber.Ctx) error
		Export(c *fiber.Ctx) error
	}

	analyticsHandler struct {
		analyticsService analytics.AnalyticsService
		transferService  transfer.TransferService
	}
)

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService, transferService transfer.TransferService) AnalyticsHandler {
	return &analyticsHandler{
		analyticsService: analyticsService,
		transferService:  transferService,
	}
}

func (h *analyticsHandler) GetDashboardStats(c *fiber.Ctx) error {
	res, err := h.analyticsService.GetDashboardStats(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *analyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	days := c.QueryInt("days", domain.DefaultAnalyticsPeriod)

	res, err := h.analyticsService.GetReport(c.UserContext(), days)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetAnalytics, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAnalytics)
}

// Export streams the inventory as an attachment. Shared by the analytics and
// profile pages.
func (h *analyticsHandler) Export(c *fiber.Ctx) error {
	return exportAttachment(c, h.transferService)
}

func exportAttachment(c *fiber.Ctx, transferService transfer.TransferService) error {
	format := c.Query("format", domain.ExportFormatJSON)

	var buf bytes.Buffer
	contentType, err := transferService.Export(c.UserContext(), format, &buf)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedExport, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.%s", domain.ExportFileName, format))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
