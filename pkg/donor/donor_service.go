package donor

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"
)

const (
	defaultCandidateLimit = 10
	maxCandidateLimit     = 50
)

type (
	DonorService interface {
		FindCandidates(ctx context.Context, filter domain.DonorMatchFilter) ([]*domain.Donor, error)
	}

	donorService struct {
		donorRepository DonorRepository
	}
)

func NewDonorService(donorRepository DonorRepository) DonorService {
	return &donorService{donorRepository: donorRepository}
}

func (s *donorService) FindCandidates(ctx context.Context, filter domain.DonorMatchFilter) ([]*domain.Donor, error) {
	if !domain.BloodGroup(filter.BloodGroup).Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}
	if filter.Limit < 1 {
		filter.Limit = defaultCandidateLimit
	}
	if filter.Limit > maxCandidateLimit {
		filter.Limit = maxCandidateLimit
	}

	donors, err := s.donorRepository.GetCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Donor, 0, len(donors))
	for _, d := range donors {
		result = append(result, ToDomain(d))
	}
	return result, nil
}

func ToDomain(u *entities.User) *domain.Donor {
	return &domain.Donor{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		BloodGroup:     u.BloodGroup,
		Division:       u.Division,
		District:       u.District,
		Upazila:        u.Upazila,
		TotalDonations: u.TotalDonations,
		LastDonation:   u.LastDonation,
	}
}
