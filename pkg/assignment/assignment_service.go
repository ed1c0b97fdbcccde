package assignment

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"blood-portal/internal/utils/mailing"
	"blood-portal/pkg/bloodrequest"
	"blood-portal/pkg/donor"
	"blood-portal/pkg/notification"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultMailTimeout = 30 * time.Second

type (
	AssignmentService interface {
		AssignDonor(ctx context.Context, caller domain.Caller, requestID, donorEmail string) (*domain.Assignment, error)
		MatchDonors(ctx context.Context, caller domain.Caller, requestID string, limit int) ([]*domain.Donor, error)
		// Drain blocks until every in-flight assignment e-mail has finished.
		Drain()
	}

	Config struct {
		AppURL      string
		MailTimeout time.Duration
	}

	assignmentService struct {
		assignmentRepository AssignmentRepository
		bloodRequestService  bloodrequest.BloodRequestService
		donorService         donor.DonorService
		notificationService  notification.NotificationService
		mailer               mailing.Mailer
		logger               *zap.Logger
		config               Config
		now                  func() time.Time

		mail sync.WaitGroup
	}
)

func NewAssignmentService(
	assignmentRepository AssignmentRepository,
	bloodRequestService bloodrequest.BloodRequestService,
	donorService donor.DonorService,
	notificationService notification.NotificationService,
	mailer mailing.Mailer,
	logger *zap.Logger,
	config Config,
) AssignmentService {
	if config.MailTimeout <= 0 {
		config.MailTimeout = defaultMailTimeout
	}
	return &assignmentService{
		assignmentRepository: assignmentRepository,
		bloodRequestService:  bloodRequestService,
		donorService:         donorService,
		notificationService:  notificationService,
		mailer:               mailer,
		logger:               logger,
		config:               config,
		now:                  time.Now,
	}
}

func (s *assignmentService) AssignDonor(ctx context.Context, caller domain.Caller, requestID, donorEmail string) (*domain.Assignment, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrAdminOnly
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, domain.ErrRequestNotFound
	}
	donorEmail = strings.TrimSpace(donorEmail)
	if donorEmail == "" {
		return nil, domain.ErrDonorNotFound
	}

	var (
		request     *entities.BloodRequest
		assigned    *entities.User
		ledger      *entities.Donation
		notice      *entities.Notification
		fulfilledAt time.Time
	)

	err := s.assignmentRepository.Transaction(ctx, func(repo AssignmentRepository) error {
		var err error
		request, err = repo.GetBloodRequestForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRequestNotFound
			}
			return err
		}
		if err := closedError(domain.RequestStatus(request.Status)); err != nil {
			return err
		}

		assigned, err = repo.GetDonorByEmail(ctx, donorEmail)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDonorNotFound
			}
			return err
		}
		if assigned.BloodGroup != request.BloodGroup {
			return domain.ErrBloodGroupMismatch
		}

		fulfilledAt = s.now()
		rows, err := repo.MarkFulfilled(ctx, requestID, assigned.Email, fulfilledAt)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrAlreadyFulfilled
		}
		request.Status = string(domain.RequestFulfilled)
		request.FulfilledBy = &assigned.Email
		request.FulfilledAt = &fulfilledAt

		ledger = &entities.Donation{
			ID:              uuid.New(),
			RequestID:       request.ID,
			DonorEmail:      assigned.Email,
			DonorName:       assigned.Name,
			DonorPhone:      assigned.Phone,
			DonorBloodGroup: assigned.BloodGroup,
			PatientName:     request.PatientName,
			BloodGroup:      request.BloodGroup,
			Units:           request.Units,
			Hospital:        request.Hospital,
			DonationDate:    fulfilledAt,
			Status:          domain.DonationCompleted,
			AssignedBy:      caller.Email,
		}
		if err := repo.CreateDonation(ctx, ledger); err != nil {
			return err
		}

		if err := repo.IncrementDonorDonations(ctx, assigned.ID, fulfilledAt); err != nil {
			return err
		}

		n, ok, err := bloodrequest.StatusNotification(request, domain.RequestFulfilled)
		if err != nil {
			return err
		}
		if ok {
			if err := repo.CreateNotification(ctx, n); err != nil {
				return err
			}
			notice = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("donor assigned",
		zap.String("request_id", requestID),
		zap.String("donation_id", ledger.ID.String()),
		zap.String("donor", assigned.Email),
		zap.String("actor", caller.Email),
	)

	if notice != nil {
		s.notificationService.Publish(ctx, notice)
	}
	s.sendAssignmentEmail(ctx, request, assigned)

	return &domain.Assignment{
		RequestID:   requestID,
		DonationID:  ledger.ID.String(),
		DonorEmail:  assigned.Email,
		Units:       request.Units,
		FulfilledAt: fulfilledAt,
	}, nil
}

func closedError(status domain.RequestStatus) error {
	switch status {
	case domain.RequestFulfilled:
		return domain.ErrAlreadyFulfilled
	case domain.RequestCancelled:
		return domain.ErrAlreadyCancelled
	}
	return nil
}

// sendAssignmentEmail mails the requester without holding up the caller. The
// send outlives the request context but is bounded by MailTimeout.
func (s *assignmentService) sendAssignmentEmail(ctx context.Context, request *entities.BloodRequest, assigned *entities.User) {
	if s.mailer == nil {
		return
	}

	html, text, err := renderAssignmentEmail(request, assigned, s.config.AppURL)
	if err != nil {
		s.logger.Warn("failed to render assignment email",
			zap.String("request_id", request.ID.String()),
			zap.Error(err),
		)
		return
	}

	to := request.RequesterEmail
	requestID := request.ID.String()
	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.MailTimeout)

	s.mail.Add(1)
	go func() {
		defer s.mail.Done()
		defer cancel()

		messageID, err := s.mailer.Send(mailCtx, to, assignmentSubject, html, text)
		if err != nil {
			s.logger.Warn("failed to send assignment email",
				zap.String("request_id", requestID),
				zap.String("to", to),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("assignment email sent",
			zap.String("request_id", requestID),
			zap.String("to", to),
			zap.String("message_id", messageID),
		)
	}()
}

func (s *assignmentService) Drain() {
	s.mail.Wait()
}

// MatchDonors suggests donors with exactly the request's blood group, closest
// first.
func (s *assignmentService) MatchDonors(ctx context.Context, caller domain.Caller, requestID string, limit int) ([]*domain.Donor, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrAdminOnly
	}

	request, err := s.bloodRequestService.GetBloodRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := closedError(domain.RequestStatus(request.Status)); err != nil {
		return nil, err
	}

	return s.donorService.FindCandidates(ctx, domain.DonorMatchFilter{
		BloodGroup: request.BloodGroup,
		Division:   request.Division,
		District:   request.District,
		Limit:      limit,
	})
}
