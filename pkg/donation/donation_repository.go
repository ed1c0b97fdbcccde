package donation

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"

	"gorm.io/gorm"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByRequestID(ctx context.Context, requestID string) (*entities.Donation, error)
		GetDonations(ctx context.Context, filter domain.DonationFilter) ([]*entities.Donation, int64, error)
		GetDonationStatistics(ctx context.Context, donorEmail string) (*domain.DonationStatistics, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByRequestID(ctx context.Context, requestID string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Request").
		Where("request_id = ?", requestID).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetDonations(ctx context.Context, filter domain.DonationFilter) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.Donation{})
	if filter.DonorEmail != "" {
		query = query.Where("donor_email = ?", filter.DonorEmail)
	}
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("donation_date DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

type groupUnits struct {
	BloodGroup string
	Donations  int
	Units      int
}

func (r *donationRepository) GetDonationStatistics(ctx context.Context, donorEmail string) (*domain.DonationStatistics, error) {
	var rows []groupUnits

	query := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select("blood_group, COUNT(*) AS donations, COALESCE(SUM(units), 0) AS units").
		Where("status = ?", domain.DonationCompleted)
	if donorEmail != "" {
		query = query.Where("donor_email = ?", donorEmail)
	}
	if err := query.Group("blood_group").Scan(&rows).Error; err != nil {
		return nil, err
	}

	var uniqueDonors int64
	donors := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("status = ?", domain.DonationCompleted)
	if donorEmail != "" {
		donors = donors.Where("donor_email = ?", donorEmail)
	}
	if err := donors.Distinct("donor_email").Count(&uniqueDonors).Error; err != nil {
		return nil, err
	}

	stats := &domain.DonationStatistics{
		UnitsByGroup: map[string]int{},
		UniqueDonors: int(uniqueDonors),
	}
	for _, row := range rows {
		stats.TotalDonations += row.Donations
		stats.TotalUnits += row.Units
		stats.UnitsByGroup[row.BloodGroup] = row.Units
	}
	return stats, nil
}
