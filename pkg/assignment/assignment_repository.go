package assignment

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"blood-portal/pkg/bloodrequest"
	"blood-portal/pkg/donation"
	"blood-portal/pkg/donor"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// AssignmentRepository covers every write an assignment makes. All of them
	// go through one Transaction so they commit or roll back together.
	AssignmentRepository interface {
		Transaction(ctx context.Context, fn func(repo AssignmentRepository) error) error

		GetBloodRequestForUpdate(ctx context.Context, id string) (*entities.BloodRequest, error)
		GetDonorByEmail(ctx context.Context, email string) (*entities.User, error)
		MarkFulfilled(ctx context.Context, id, donorEmail string, at time.Time) (int64, error)
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		IncrementDonorDonations(ctx context.Context, donorID uuid.UUID, at time.Time) error
		CreateNotification(ctx context.Context, notification *entities.Notification) error
	}

	assignmentRepository struct {
		db        *gorm.DB
		requests  bloodrequest.BloodRequestRepository
		donors    donor.DonorRepository
		donations donation.DonationRepository
	}
)

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{
		db:        db,
		requests:  bloodrequest.NewBloodRequestRepository(db),
		donors:    donor.NewDonorRepository(db),
		donations: donation.NewDonationRepository(db),
	}
}

func (r *assignmentRepository) Transaction(ctx context.Context, fn func(repo AssignmentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAssignmentRepository(tx))
	})
}

func (r *assignmentRepository) GetBloodRequestForUpdate(ctx context.Context, id string) (*entities.BloodRequest, error) {
	return r.requests.GetBloodRequestForUpdate(ctx, id)
}

func (r *assignmentRepository) GetDonorByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.donors.GetDonorByEmail(ctx, email)
}

// MarkFulfilled only moves requests that are still open. Zero rows affected
// means another assignment or a cancellation won.
func (r *assignmentRepository) MarkFulfilled(ctx context.Context, id, donorEmail string, at time.Time) (int64, error) {
	open := make([]string, 0, len(domain.OpenStatuses))
	for _, s := range domain.OpenStatuses {
		open = append(open, string(s))
	}

	result := r.db.WithContext(ctx).
		Model(&entities.BloodRequest{}).
		Where("id = ? AND status IN ?", id, open).
		Updates(map[string]interface{}{
			"status":       string(domain.RequestFulfilled),
			"fulfilled_by": donorEmail,
			"fulfilled_at": at,
		})
	return result.RowsAffected, result.Error
}

func (r *assignmentRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.donations.CreateDonation(ctx, donation)
}

func (r *assignmentRepository) IncrementDonorDonations(ctx context.Context, donorID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", donorID).
		Updates(map[string]interface{}{
			"total_donations": gorm.Expr("total_donations + ?", 1),
			"last_donation":   at,
		}).Error
}

func (r *assignmentRepository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	return r.requests.CreateNotification(ctx, notification)
}
