package handlers

import (
	"blood-portal/domain"
	"blood-portal/internal/utils"
	"blood-portal/pkg/assignment"
	"blood-portal/pkg/bloodrequest"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBloodRequestService struct {
	bloodrequest.BloodRequestService

	lastFilter domain.BloodRequestFilter
	updateErr  error
}

func (s *stubBloodRequestService) GetBloodRequests(_ context.Context, filter domain.BloodRequestFilter) ([]*domain.BloodRequest, int64, error) {
	s.lastFilter = filter
	return []*domain.BloodRequest{{ID: "r-1", BloodGroup: "O+"}}, 1, nil
}

func (s *stubBloodRequestService) UpdateBloodRequestStatus(_ context.Context, _ domain.Caller, id string, status string) (*domain.BloodRequest, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &domain.BloodRequest{ID: id, Status: status}, nil
}

type stubAssignmentService struct {
	assignment.AssignmentService

	err error
}

func (s *stubAssignmentService) AssignDonor(_ context.Context, _ domain.Caller, requestID, donorEmail string) (*domain.Assignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Assignment{RequestID: requestID, DonorEmail: donorEmail, Units: 2}, nil
}

func newHandlerApp(requests *stubBloodRequestService, assignments *stubAssignmentService) *fiber.App {
	utils.InitValidator()
	h := NewBloodRequestHandler(requests, assignments, utils.Validate)

	app := fiber.New()
	app.Get("/blood-requests", h.GetBloodRequests)
	app.Patch("/blood-requests/:id/status", h.UpdateBloodRequestStatus)
	app.Post("/blood-requests/:id/assign", h.AssignDonor)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func TestParseStatuses(t *testing.T) {
	assert.Nil(t, parseStatuses(""))
	assert.Len(t, parseStatuses("all"), 4)
	assert.Equal(t,
		[]domain.RequestStatus{domain.RequestPending, domain.RequestFulfilled},
		parseStatuses("pending, fulfilled,"),
	)
}

func TestGetBloodRequests_PassesFilters(t *testing.T) {
	requests := &stubBloodRequestService{}
	app := newHandlerApp(requests, &stubAssignmentService{})

	status, body := send(t, app, "GET", "/blood-requests?blood_group=O%2B&district=Dhaka&page=2&limit=500", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["status"])

	assert.Equal(t, "O+", requests.lastFilter.BloodGroup)
	assert.Equal(t, "Dhaka", requests.lastFilter.District)
	assert.Equal(t, 2, requests.lastFilter.Page)
	assert.Equal(t, 100, requests.lastFilter.Limit)
	assert.Nil(t, requests.lastFilter.Statuses)
}

func TestUpdateStatus_MapsErrorKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"transition", domain.ErrInvalidTransition, fiber.StatusConflict},
		{"not found", domain.ErrRequestNotFound, fiber.StatusNotFound},
		{"admin only", domain.ErrAdminOnly, fiber.StatusForbidden},
		{"unexpected", errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newHandlerApp(&stubBloodRequestService{updateErr: tc.err}, &stubAssignmentService{})

			status, body := send(t, app, "PATCH", "/blood-requests/r-1/status", `{"status":"active"}`)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, false, body["status"])
			if tc.status == fiber.StatusInternalServerError {
				assert.Equal(t, "internal server error", body["error"])
			}
		})
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	app := newHandlerApp(&stubBloodRequestService{}, &stubAssignmentService{})

	status, body := send(t, app, "PATCH", "/blood-requests/r-1/status", `{"status":"archived"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, string(domain.KindValidation), body["code"])
}

func TestAssignDonor(t *testing.T) {
	app := newHandlerApp(&stubBloodRequestService{}, &stubAssignmentService{})

	status, body := send(t, app, "POST", "/blood-requests/r-1/assign", `{"donor_email":"karim@example.com"}`)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "r-1", data["request_id"])
	assert.Equal(t, "karim@example.com", data["donor_email"])

	status, _ = send(t, app, "POST", "/blood-requests/r-1/assign", `{"donor_email":"not-an-email"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	app = newHandlerApp(&stubBloodRequestService{}, &stubAssignmentService{err: domain.ErrBloodGroupMismatch})
	status, body = send(t, app, "POST", "/blood-requests/r-1/assign", `{"donor_email":"karim@example.com"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, string(domain.KindBloodGroupMismatch), body["code"])
}
