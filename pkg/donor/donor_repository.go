package donor

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DonorRepository interface {
		GetDonorByEmail(ctx context.Context, email string) (*entities.User, error)
		GetCandidates(ctx context.Context, filter domain.DonorMatchFilter) ([]*entities.User, error)
	}

	donorRepository struct {
		db *gorm.DB
	}
)

func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &donorRepository{db: db}
}

// GetDonorByEmail only resolves accounts that hold the donor role.
func (r *donorRepository) GetDonorByEmail(ctx context.Context, email string) (*entities.User, error) {
	var donor entities.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), domain.RoleDonor).
		First(&donor).Error; err != nil {
		return nil, err
	}
	return &donor, nil
}

func (r *donorRepository) GetCandidates(ctx context.Context, filter domain.DonorMatchFilter) ([]*entities.User, error) {
	var donors []*entities.User

	// same district first, then same division, then whoever donated least recently
	order := []string{}
	vars := []interface{}{}
	if filter.District != "" {
		order = append(order, "CASE WHEN district = ? THEN 0 ELSE 1 END")
		vars = append(vars, filter.District)
	}
	if filter.Division != "" {
		order = append(order, "CASE WHEN division = ? THEN 0 ELSE 1 END")
		vars = append(vars, filter.Division)
	}
	order = append(order, "last_donation ASC NULLS FIRST", "total_donations ASC")

	if err := r.db.WithContext(ctx).
		Where("role = ? AND blood_group = ?", domain.RoleDonor, filter.BloodGroup).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                strings.Join(order, ", "),
			Vars:               vars,
			WithoutParentheses: true,
		}}).
		Limit(filter.Limit).
		Find(&donors).Error; err != nil {
		return nil, err
	}
	return donors, nil
}
