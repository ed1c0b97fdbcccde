package handlers

import (
	"blood-portal/domain"
	"blood-portal/internal/api/presenters"
	"blood-portal/internal/middleware"
	"blood-portal/pkg/assignment"
	"blood-portal/pkg/bloodrequest"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BloodRequestHandler interface {
		CreateBloodRequest(c *fiber.Ctx) error
		GetBloodRequests(c *fiber.Ctx) error
		GetMyBloodRequests(c *fiber.Ctx) error
		GetBloodRequestByID(c *fiber.Ctx) error
		UpdateBloodRequestStatus(c *fiber.Ctx) error
		AssignDonor(c *fiber.Ctx) error
		GetDonorMatches(c *fiber.Ctx) error
	}

	bloodRequestHandler struct {
		bloodRequestService bloodrequest.BloodRequestService
		assignmentService   assignment.AssignmentService
		validator           *validator.Validate
	}
)

func NewBloodRequestHandler(
	bloodRequestService bloodrequest.BloodRequestService,
	assignmentService assignment.AssignmentService,
	validator *validator.Validate,
) BloodRequestHandler {
	return &bloodRequestHandler{
		bloodRequestService: bloodRequestService,
		assignmentService:   assignmentService,
		validator:           validator,
	}
}

func (h *bloodRequestHandler) CreateBloodRequest(c *fiber.Ctx) error {
	req := new(domain.CreateBloodRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, invalid(err))
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBloodRequest, invalid(err))
	}

	created, err := h.bloodRequestService.CreateBloodRequest(c.UserContext(), middleware.GetCaller(c), *req)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedCreateBloodRequest, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateBloodRequest)
}

// parseStatuses reads ?status=. Empty means the open statuses, "all" lifts
// the filter, anything else is a comma separated list.
func parseStatuses(raw string) []domain.RequestStatus {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return nil
	case "all":
		return []domain.RequestStatus{
			domain.RequestPending, domain.RequestActive, domain.RequestFulfilled, domain.RequestCancelled,
		}
	}

	var statuses []domain.RequestStatus
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			statuses = append(statuses, domain.RequestStatus(s))
		}
	}
	return statuses
}

func (h *bloodRequestHandler) GetBloodRequests(c *fiber.Ctx) error {
	page, limit := pagination(c)
	filter := domain.BloodRequestFilter{
		Statuses:   parseStatuses(c.Query("status")),
		BloodGroup: c.Query("blood_group"),
		Division:   c.Query("division"),
		District:   c.Query("district"),
		Urgency:    c.Query("urgency"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	requests, count, err := h.bloodRequestService.GetBloodRequests(c.UserContext(), filter)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetBloodRequests, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"blood_requests": requests,
		"pagination":     domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetBloodRequests)
}

func (h *bloodRequestHandler) GetMyBloodRequests(c *fiber.Ctx) error {
	page, limit := pagination(c)

	requests, count, err := h.bloodRequestService.GetMyBloodRequests(c.UserContext(), middleware.GetCaller(c), page, limit)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetBloodRequests, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"blood_requests": requests,
		"pagination":     domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetBloodRequests)
}

func (h *bloodRequestHandler) GetBloodRequestByID(c *fiber.Ctx) error {
	request, err := h.bloodRequestService.GetBloodRequestByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetBloodRequests, err)
	}

	return presenters.SuccessResponse(c, request, fiber.StatusOK, domain.MessageSuccessGetBloodRequests)
}

func (h *bloodRequestHandler) UpdateBloodRequestStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateRequestStatus)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, invalid(err))
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRequestState, invalid(err))
	}

	updated, err := h.bloodRequestService.UpdateBloodRequestStatus(c.UserContext(), middleware.GetCaller(c), c.Params("id"), req.Status)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedUpdateRequestState, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateRequestState)
}

func (h *bloodRequestHandler) AssignDonor(c *fiber.Ctx) error {
	req := new(domain.AssignDonorRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, invalid(err))
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAssignDonor, invalid(err))
	}

	result, err := h.assignmentService.AssignDonor(c.UserContext(), middleware.GetCaller(c), c.Params("id"), req.DonorEmail)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAssignDonor, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessAssignDonor)
}

func (h *bloodRequestHandler) GetDonorMatches(c *fiber.Ctx) error {
	donors, err := h.assignmentService.MatchDonors(c.UserContext(), middleware.GetCaller(c), c.Params("id"), queryInt(c, "limit", 10))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetDonorMatches, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donors": donors,
	}, fiber.StatusOK, domain.MessageSuccessGetDonorMatches)
}
