package bloodrequest

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	BloodRequestRepository interface {
		// Transaction runs fn against a repository bound to one database transaction.
		Transaction(ctx context.Context, fn func(repo BloodRequestRepository) error) error

		CreateBloodRequest(ctx context.Context, request *entities.BloodRequest) error
		GetBloodRequestByID(ctx context.Context, id string) (*entities.BloodRequest, error)
		GetBloodRequestForUpdate(ctx context.Context, id string) (*entities.BloodRequest, error)
		GetBloodRequests(ctx context.Context, filter domain.BloodRequestFilter) ([]*entities.BloodRequest, int64, error)
		UpdateBloodRequestStatus(ctx context.Context, id string, from, to domain.RequestStatus) (int64, error)

		CreateNotification(ctx context.Context, notification *entities.Notification) error
	}

	bloodRequestRepository struct {
		db *gorm.DB
	}
)

func NewBloodRequestRepository(db *gorm.DB) BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

func (r *bloodRequestRepository) Transaction(ctx context.Context, fn func(repo BloodRequestRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&bloodRequestRepository{db: tx})
	})
}

func (r *bloodRequestRepository) CreateBloodRequest(ctx context.Context, request *entities.BloodRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *bloodRequestRepository) GetBloodRequestByID(ctx context.Context, id string) (*entities.BloodRequest, error) {
	var request entities.BloodRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *bloodRequestRepository) GetBloodRequestForUpdate(ctx context.Context, id string) (*entities.BloodRequest, error) {
	var request entities.BloodRequest
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *bloodRequestRepository) GetBloodRequests(ctx context.Context, filter domain.BloodRequestFilter) ([]*entities.BloodRequest, int64, error) {
	var requests []*entities.BloodRequest
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.BloodRequest{})
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.Division != "" {
		query = query.Where("division = ?", filter.Division)
	}
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.Urgency != "" {
		query = query.Where("urgency = ?", filter.Urgency)
	}
	if filter.Requester != "" {
		query = query.Where("requester_email = ?", filter.Requester)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(search) + "%"
		query = query.Where(
			"(patient_name ILIKE ? OR hospital ILIKE ? OR address ILIKE ? OR contact_person ILIKE ?)",
			like, like, like, like,
		)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("CASE WHEN urgency = 'urgent' THEN 0 ELSE 1 END").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, count, nil
}

// UpdateBloodRequestStatus moves the request only if it is still in from.
// Callers treat zero rows affected as a lost race.
func (r *bloodRequestRepository) UpdateBloodRequestStatus(ctx context.Context, id string, from, to domain.RequestStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.BloodRequest{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	return result.RowsAffected, result.Error
}

func (r *bloodRequestRepository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
