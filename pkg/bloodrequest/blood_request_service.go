package bloodrequest

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"blood-portal/pkg/notification"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	BloodRequestService interface {
		CreateBloodRequest(ctx context.Context, caller domain.Caller, req domain.CreateBloodRequest) (*domain.BloodRequest, error)
		GetBloodRequestByID(ctx context.Context, id string) (*domain.BloodRequest, error)
		GetBloodRequests(ctx context.Context, filter domain.BloodRequestFilter) ([]*domain.BloodRequest, int64, error)
		GetMyBloodRequests(ctx context.Context, caller domain.Caller, page, limit int) ([]*domain.BloodRequest, int64, error)
		UpdateBloodRequestStatus(ctx context.Context, caller domain.Caller, id string, status string) (*domain.BloodRequest, error)
	}

	bloodRequestService struct {
		bloodRequestRepository BloodRequestRepository
		notificationService    notification.NotificationService
		logger                 *zap.Logger
	}
)

func NewBloodRequestService(
	bloodRequestRepository BloodRequestRepository,
	notificationService notification.NotificationService,
	logger *zap.Logger,
) BloodRequestService {
	return &bloodRequestService{
		bloodRequestRepository: bloodRequestRepository,
		notificationService:    notificationService,
		logger:                 logger,
	}
}

func (s *bloodRequestService) CreateBloodRequest(ctx context.Context, caller domain.Caller, req domain.CreateBloodRequest) (*domain.BloodRequest, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	if strings.TrimSpace(req.PatientName) == "" {
		return nil, domain.ValidationError("patient name is required")
	}
	if strings.TrimSpace(req.ContactNumber) == "" {
		return nil, domain.ValidationError("contact number is required")
	}
	if !domain.BloodGroup(req.BloodGroup).Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}
	if req.Units < 1 {
		return nil, domain.ErrInvalidUnits
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	if urgency != domain.UrgencyNormal && urgency != domain.UrgencyUrgent {
		return nil, domain.ErrInvalidUrgency
	}

	var requiredDate *time.Time
	if req.RequiredDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RequiredDate)
		if err != nil {
			return nil, domain.ErrInvalidRequiredDate
		}
		requiredDate = &parsed
	}

	request := &entities.BloodRequest{
		ID:             uuid.New(),
		PatientName:    strings.TrimSpace(req.PatientName),
		BloodGroup:     req.BloodGroup,
		Units:          req.Units,
		Hospital:       req.Hospital,
		Address:        req.Address,
		Division:       req.Division,
		District:       req.District,
		Upazila:        req.Upazila,
		ContactPerson:  req.ContactPerson,
		ContactNumber:  strings.TrimSpace(req.ContactNumber),
		Urgency:        urgency,
		Description:    req.Description,
		RequiredDate:   requiredDate,
		RequesterEmail: caller.Email,
		Status:         string(domain.RequestPending),
		FulfilledBy:    nil,
	}

	if err := s.bloodRequestRepository.CreateBloodRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("blood request created",
		zap.String("request_id", request.ID.String()),
		zap.String("blood_group", request.BloodGroup),
		zap.Int("units", request.Units),
		zap.String("requester", request.RequesterEmail),
	)

	return ToDomain(request), nil
}

func (s *bloodRequestService) GetBloodRequestByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRequestNotFound
	}

	request, err := s.bloodRequestRepository.GetBloodRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return ToDomain(request), nil
}

func (s *bloodRequestService) GetBloodRequests(ctx context.Context, filter domain.BloodRequestFilter) ([]*domain.BloodRequest, int64, error) {
	if len(filter.Statuses) == 0 {
		filter.Statuses = domain.OpenStatuses
	}
	for _, status := range filter.Statuses {
		if !status.Valid() {
			return nil, 0, domain.ErrInvalidStatus
		}
	}
	if filter.BloodGroup != "" && !domain.BloodGroup(filter.BloodGroup).Valid() {
		return nil, 0, domain.ErrInvalidBloodGroup
	}
	normalizePage(&filter.Page, &filter.Limit)

	requests, count, err := s.bloodRequestRepository.GetBloodRequests(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.BloodRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, ToDomain(request))
	}
	return result, count, nil
}

func (s *bloodRequestService) GetMyBloodRequests(ctx context.Context, caller domain.Caller, page, limit int) ([]*domain.BloodRequest, int64, error) {
	if !caller.Authenticated() {
		return nil, 0, domain.ErrUnauthorized
	}
	return s.GetBloodRequests(ctx, domain.BloodRequestFilter{
		Statuses: []domain.RequestStatus{
			domain.RequestPending, domain.RequestActive, domain.RequestFulfilled, domain.RequestCancelled,
		},
		Requester: caller.Email,
		Page:      page,
		Limit:     limit,
	})
}

func (s *bloodRequestService) UpdateBloodRequestStatus(ctx context.Context, caller domain.Caller, id string, status string) (*domain.BloodRequest, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrAdminOnly
	}

	next := domain.RequestStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if next == domain.RequestFulfilled {
		return nil, domain.ErrInvalidTransition
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRequestNotFound
	}

	var updated *entities.BloodRequest
	var notice *entities.Notification

	err := s.bloodRequestRepository.Transaction(ctx, func(repo BloodRequestRepository) error {
		request, err := repo.GetBloodRequestForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRequestNotFound
			}
			return err
		}

		current := domain.RequestStatus(request.Status)
		if err := CanTransition(current, next); err != nil {
			return err
		}

		rows, err := repo.UpdateBloodRequestStatus(ctx, id, current, next)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrInvalidTransition
		}
		request.Status = string(next)

		n, ok, err := StatusNotification(request, next)
		if err != nil {
			return err
		}
		if ok {
			if err := repo.CreateNotification(ctx, n); err != nil {
				return err
			}
			notice = n
		}

		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("blood request status updated",
		zap.String("request_id", id),
		zap.String("status", string(next)),
		zap.String("actor", caller.Email),
	)

	if notice != nil {
		s.notificationService.Publish(ctx, notice)
	}

	return ToDomain(updated), nil
}

func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 20
	}
	if *limit > 100 {
		*limit = 100
	}
}
