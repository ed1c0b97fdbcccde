package handlers

import (
	"blood-portal/domain"
	"blood-portal/internal/api/presenters"
	"blood-portal/internal/middleware"
	"blood-portal/pkg/donation"

	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		GetDonations(c *fiber.Ctx) error
		GetDonationByRequest(c *fiber.Ctx) error
		GetDonationStatistics(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
	}
)

func NewDonationHandler(donationService donation.DonationService) DonationHandler {
	return &donationHandler{
		donationService: donationService,
	}
}

func (h *donationHandler) GetDonations(c *fiber.Ctx) error {
	page, limit := pagination(c)
	filter := domain.DonationFilter{
		DonorEmail: c.Query("donor_email"),
		BloodGroup: c.Query("blood_group"),
		Page:       page,
		Limit:      limit,
	}

	donations, count, err := h.donationService.GetDonations(c.UserContext(), middleware.GetCaller(c), filter)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationByRequest(c *fiber.Ctx) error {
	d, err := h.donationService.GetDonationByRequestID(c.UserContext(), middleware.GetCaller(c), c.Params("requestId"))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, d, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationStatistics(c *fiber.Ctx) error {
	stats, err := h.donationService.GetDonationStatistics(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetDonationSummary, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDonationSummary)
}
