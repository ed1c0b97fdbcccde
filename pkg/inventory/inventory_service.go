package inventory

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"blood-portal/internal/utils/storage"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type (
	InventoryService interface {
		GetInventory(ctx context.Context) (map[domain.BloodGroup]int, error)
		Adjust(ctx context.Context, caller domain.Caller, req domain.AdjustInventoryRequest) (*domain.AdjustInventoryResponse, error)
		GetHistory(ctx context.Context, caller domain.Caller, filter domain.InventoryHistoryFilter) ([]*domain.InventoryHistoryEntry, error)
		GetPendingDemand(ctx context.Context) (map[domain.BloodGroup]int, error)
		GetSummary(ctx context.Context) (*domain.InventorySummary, error)
		ExportReport(ctx context.Context, caller domain.Caller) ([]byte, error)
		ArchiveReport(ctx context.Context, caller domain.Caller) (string, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		s3                  storage.AwsS3
		logger              *zap.Logger
		now                 func() time.Time

		seedMu sync.Mutex
		seeded bool
	}
)

func NewInventoryService(inventoryRepository InventoryRepository, s3 storage.AwsS3, logger *zap.Logger) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		s3:                  s3,
		logger:              logger,
		now:                 time.Now,
	}
}

// ensureSeeded creates the stock rows the first time the ledger is touched.
// The starting level per group is completed donation units minus fulfilled
// request units, never below zero. Once any row exists nothing is recomputed.
func (s *inventoryService) ensureSeeded(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seeded {
		return nil
	}

	err := s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		count, err := repo.CountInventory(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		donated, err := repo.CompletedDonationUnits(ctx)
		if err != nil {
			return err
		}
		fulfilled, err := repo.FulfilledRequestUnits(ctx)
		if err != nil {
			return err
		}

		now := s.now()
		for _, group := range domain.BloodGroups {
			units := donated[string(group)] - fulfilled[string(group)]
			if units < 0 {
				units = 0
			}

			inserted, err := repo.CreateInventoryIfMissing(ctx, &entities.Inventory{
				BloodGroup: string(group),
				Units:      units,
				UpdatedBy:  domain.SystemActor,
				UpdatedAt:  now,
			})
			if err != nil {
				return err
			}
			if !inserted || units == 0 {
				continue
			}

			if err := repo.CreateHistory(ctx, &entities.InventoryHistory{
				ID:            uuid.New(),
				BloodGroup:    string(group),
				Units:         units,
				Type:          string(domain.AdjustSet),
				Reason:        domain.InventorySeedReason,
				PreviousUnits: 0,
				NewUnits:      units,
				PerformedBy:   domain.SystemActor,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.seeded = true
	return nil
}

func (s *inventoryService) GetInventory(ctx context.Context) (map[domain.BloodGroup]int, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	rows, err := s.inventoryRepository.GetInventory(ctx)
	if err != nil {
		return nil, err
	}

	stock := make(map[domain.BloodGroup]int, len(domain.BloodGroups))
	for _, group := range domain.BloodGroups {
		stock[group] = 0
	}
	for _, row := range rows {
		if domain.BloodGroup(row.BloodGroup).Valid() {
			stock[domain.BloodGroup(row.BloodGroup)] = row.Units
		}
	}
	return stock, nil
}

func (s *inventoryService) Adjust(ctx context.Context, caller domain.Caller, req domain.AdjustInventoryRequest) (*domain.AdjustInventoryResponse, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrAdminOnly
	}

	group := domain.BloodGroup(req.BloodGroup)
	if !group.Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}
	if req.Units <= 0 {
		return nil, domain.ErrInvalidAdjustmentUnits
	}
	typ := domain.AdjustmentType(req.Type)
	if !typ.Valid() {
		return nil, domain.ErrInvalidAdjustmentType
	}

	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	var response *domain.AdjustInventoryResponse
	err := s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		now := s.now()
		if _, err := repo.CreateInventoryIfMissing(ctx, &entities.Inventory{
			BloodGroup: string(group),
			UpdatedBy:  caller.Email,
			UpdatedAt:  now,
		}); err != nil {
			return err
		}

		current, err := repo.GetInventoryForUpdate(ctx, string(group))
		if err != nil {
			return err
		}

		next, err := typ.Apply(current.Units, req.Units)
		if err != nil {
			return err
		}

		previous := current.Units
		current.Units = next
		current.UpdatedBy = caller.Email
		current.UpdatedAt = now
		if err := repo.UpdateInventory(ctx, current); err != nil {
			return err
		}

		if err := repo.CreateHistory(ctx, &entities.InventoryHistory{
			ID:            uuid.New(),
			BloodGroup:    string(group),
			Units:         req.Units,
			Type:          string(typ),
			Reason:        strings.TrimSpace(req.Reason),
			PreviousUnits: previous,
			NewUnits:      next,
			PerformedBy:   caller.Email,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		response = &domain.AdjustInventoryResponse{
			BloodGroup:    string(group),
			PreviousUnits: previous,
			NewUnits:      next,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidBloodGroup
		}
		return nil, err
	}

	s.logger.Info("inventory adjusted",
		zap.String("blood_group", response.BloodGroup),
		zap.String("type", string(typ)),
		zap.Int("units", req.Units),
		zap.Int("previous_units", response.PreviousUnits),
		zap.Int("new_units", response.NewUnits),
		zap.String("actor", caller.Email),
	)
	return response, nil
}

func (s *inventoryService) GetHistory(ctx context.Context, caller domain.Caller, filter domain.InventoryHistoryFilter) ([]*domain.InventoryHistoryEntry, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrAdminOnly
	}
	if filter.BloodGroup != "" && !domain.BloodGroup(filter.BloodGroup).Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}
	if filter.Limit < 1 {
		filter.Limit = domain.InventoryHistoryDefaultLimit
	}
	if filter.Limit > domain.InventoryHistoryMaxLimit {
		filter.Limit = domain.InventoryHistoryMaxLimit
	}

	histories, err := s.inventoryRepository.GetHistory(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.InventoryHistoryEntry, 0, len(histories))
	for _, h := range histories {
		result = append(result, HistoryToDomain(h))
	}
	return result, nil
}

func (s *inventoryService) GetPendingDemand(ctx context.Context) (map[domain.BloodGroup]int, error) {
	units, err := s.inventoryRepository.PendingRequestUnits(ctx)
	if err != nil {
		return nil, err
	}

	demand := make(map[domain.BloodGroup]int, len(domain.BloodGroups))
	for _, group := range domain.BloodGroups {
		demand[group] = units[string(group)]
	}
	return demand, nil
}

func (s *inventoryService) GetSummary(ctx context.Context) (*domain.InventorySummary, error) {
	stock, err := s.GetInventory(ctx)
	if err != nil {
		return nil, err
	}
	demand, err := s.GetPendingDemand(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.InventorySummary{
		Groups:      make([]domain.InventoryGroupSummary, 0, len(domain.BloodGroups)),
		GeneratedAt: s.now(),
	}
	for _, group := range domain.BloodGroups {
		g := domain.InventoryGroupSummary{
			BloodGroup:    string(group),
			Units:         stock[group],
			PendingDemand: demand[group],
		}
		if g.PendingDemand > g.Units {
			g.Shortfall = g.PendingDemand - g.Units
		}
		summary.Groups = append(summary.Groups, g)
		summary.TotalUnits += g.Units
		summary.TotalDemand += g.PendingDemand
	}
	return summary, nil
}

func (s *inventoryService) ExportReport(ctx context.Context, caller domain.Caller) ([]byte, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrAdminOnly
	}

	summary, err := s.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.GetHistory(ctx, caller, domain.InventoryHistoryFilter{Limit: domain.InventoryHistoryMaxLimit})
	if err != nil {
		return nil, err
	}
	return GenerateInventoryReport(summary, history)
}

func (s *inventoryService) ArchiveReport(ctx context.Context, caller domain.Caller) (string, error) {
	if !caller.IsAdmin {
		return "", domain.ErrAdminOnly
	}
	if s.s3 == nil || !s.s3.Enabled() {
		return "", domain.ErrReportStorageNotConfigured
	}

	report, err := s.ExportReport(ctx, caller)
	if err != nil {
		return "", err
	}

	key, err := s.s3.UploadBytes(ctx, storage.TimestampKey("reports/inventory-", ".xlsx"), report, reportContentType)
	if err != nil {
		return "", err
	}
	url := s.s3.GetPublicLinkKey(key)

	s.logger.Info("inventory report archived", zap.String("key", key), zap.String("actor", caller.Email))
	return url, nil
}

func HistoryToDomain(h *entities.InventoryHistory) *domain.InventoryHistoryEntry {
	return &domain.InventoryHistoryEntry{
		ID:            h.ID.String(),
		BloodGroup:    h.BloodGroup,
		Units:         h.Units,
		Type:          h.Type,
		Reason:        h.Reason,
		PreviousUnits: h.PreviousUnits,
		NewUnits:      h.NewUnits,
		PerformedBy:   h.PerformedBy,
		CreatedAt:     h.CreatedAt,
	}
}
