package handlers

import (
	"blood-portal/domain"
	"blood-portal/internal/api/presenters"
	"blood-portal/internal/middleware"
	"blood-portal/pkg/inventory"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		GetInventory(c *fiber.Ctx) error
		GetInventorySummary(c *fiber.Ctx) error
		AdjustInventory(c *fiber.Ctx) error
		GetInventoryHistory(c *fiber.Ctx) error
		ExportInventoryReport(c *fiber.Ctx) error
		ArchiveInventoryReport(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) GetInventory(c *fiber.Ctx) error {
	stock, err := h.inventoryService.GetInventory(c.UserContext())
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetInventory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"inventory": stock,
	}, fiber.StatusOK, domain.MessageSuccessGetInventory)
}

func (h *inventoryHandler) GetInventorySummary(c *fiber.Ctx) error {
	summary, err := h.inventoryService.GetSummary(c.UserContext())
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetInventory, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetInventory)
}

func (h *inventoryHandler) AdjustInventory(c *fiber.Ctx) error {
	req := new(domain.AdjustInventoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, invalid(err))
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustInventory, invalid(err))
	}

	res, err := h.inventoryService.Adjust(c.UserContext(), middleware.GetCaller(c), *req)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAdjustInventory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAdjustInventory)
}

func (h *inventoryHandler) GetInventoryHistory(c *fiber.Ctx) error {
	filter := domain.InventoryHistoryFilter{
		BloodGroup: c.Query("blood_group"),
		Limit:      queryInt(c, "limit", domain.InventoryHistoryDefaultLimit),
	}

	history, err := h.inventoryService.GetHistory(c.UserContext(), middleware.GetCaller(c), filter)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetInventoryLog, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"history": history,
	}, fiber.StatusOK, domain.MessageSuccessGetInventoryLog)
}

func (h *inventoryHandler) ExportInventoryReport(c *fiber.Ctx) error {
	report, err := h.inventoryService.ExportReport(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedExportReport, err)
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(report)
}

func (h *inventoryHandler) ArchiveInventoryReport(c *fiber.Ctx) error {
	url, err := h.inventoryService.ArchiveReport(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedArchiveReport, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"url": url,
	}, fiber.StatusCreated, domain.MessageSuccessArchiveReport)
}
