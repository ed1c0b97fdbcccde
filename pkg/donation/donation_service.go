package donation

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DonationService interface {
		GetDonations(ctx context.Context, caller domain.Caller, filter domain.DonationFilter) ([]*domain.Donation, int64, error)
		GetDonationByRequestID(ctx context.Context, caller domain.Caller, requestID string) (*domain.Donation, error)
		GetDonationStatistics(ctx context.Context, caller domain.Caller) (*domain.DonationStatistics, error)
	}

	donationService struct {
		donationRepository DonationRepository
	}
)

func NewDonationService(donationRepository DonationRepository) DonationService {
	return &donationService{donationRepository: donationRepository}
}

// GetDonations lists the whole ledger for admins. Everyone else only sees
// donations they made themselves.
func (s *donationService) GetDonations(ctx context.Context, caller domain.Caller, filter domain.DonationFilter) ([]*domain.Donation, int64, error) {
	if !caller.Authenticated() {
		return nil, 0, domain.ErrUnauthorized
	}
	if !caller.IsAdmin {
		filter.DonorEmail = caller.Email
	}
	if filter.BloodGroup != "" && !domain.BloodGroup(filter.BloodGroup).Valid() {
		return nil, 0, domain.ErrInvalidBloodGroup
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	donations, count, err := s.donationRepository.GetDonations(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, ToDomain(d))
	}
	return result, count, nil
}

func (s *donationService) GetDonationByRequestID(ctx context.Context, caller domain.Caller, requestID string) (*domain.Donation, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, domain.ErrDonationNotFound
	}

	donation, err := s.donationRepository.GetDonationByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	if !caller.IsAdmin && !isParty(donation, caller.Email) {
		return nil, domain.ErrUserNotAllowed
	}
	return ToDomain(donation), nil
}

// isParty reports whether email is the donor or the requester behind the entry.
func isParty(donation *entities.Donation, email string) bool {
	if donation.DonorEmail == email {
		return true
	}
	return donation.Request != nil && donation.Request.RequesterEmail == email
}

// GetDonationStatistics reports ledger totals. Anonymous callers and admins
// get the portal-wide view, donors get their own.
func (s *donationService) GetDonationStatistics(ctx context.Context, caller domain.Caller) (*domain.DonationStatistics, error) {
	donorEmail := ""
	if caller.Authenticated() && !caller.IsAdmin && caller.Role == domain.RoleDonor {
		donorEmail = caller.Email
	}
	return s.donationRepository.GetDonationStatistics(ctx, donorEmail)
}

func ToDomain(d *entities.Donation) *domain.Donation {
	return &domain.Donation{
		ID:              d.ID.String(),
		RequestID:       d.RequestID.String(),
		DonorEmail:      d.DonorEmail,
		DonorName:       d.DonorName,
		DonorPhone:      d.DonorPhone,
		DonorBloodGroup: d.DonorBloodGroup,
		PatientName:     d.PatientName,
		BloodGroup:      d.BloodGroup,
		Units:           d.Units,
		Hospital:        d.Hospital,
		DonationDate:    d.DonationDate,
		Status:          d.Status,
		AssignedBy:      d.AssignedBy,
		CreatedAt:       d.CreatedAt,
	}
}
