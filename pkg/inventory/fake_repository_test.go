package inventory

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"
	"sync"

	"gorm.io/gorm"
)

type fakeInventoryRepository struct {
	mu        sync.Mutex
	stock     map[string]*entities.Inventory
	histories []*entities.InventoryHistory

	donated   map[string]int
	fulfilled map[string]int
	pending   map[string]int
}

func newFakeInventoryRepository() *fakeInventoryRepository {
	return &fakeInventoryRepository{
		stock:     map[string]*entities.Inventory{},
		donated:   map[string]int{},
		fulfilled: map[string]int{},
		pending:   map[string]int{},
	}
}

// Transaction discards every write made by fn when fn fails.
func (r *fakeInventoryRepository) Transaction(ctx context.Context, fn func(repo InventoryRepository) error) error {
	r.mu.Lock()
	stock := make(map[string]entities.Inventory, len(r.stock))
	for k, v := range r.stock {
		stock[k] = *v
	}
	histories := len(r.histories)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.stock = map[string]*entities.Inventory{}
		for k, v := range stock {
			cp := v
			r.stock[k] = &cp
		}
		r.histories = r.histories[:histories]
		return err
	}
	return nil
}

func (r *fakeInventoryRepository) CountInventory(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.stock)), nil
}

func (r *fakeInventoryRepository) GetInventory(ctx context.Context) ([]*entities.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Inventory, 0, len(r.stock))
	for _, v := range r.stock {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInventoryRepository) GetInventoryForUpdate(ctx context.Context, bloodGroup string) (*entities.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.stock[bloodGroup]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeInventoryRepository) CreateInventoryIfMissing(ctx context.Context, inventory *entities.Inventory) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stock[inventory.BloodGroup]; ok {
		return false, nil
	}
	cp := *inventory
	r.stock[inventory.BloodGroup] = &cp
	return true, nil
}

func (r *fakeInventoryRepository) UpdateInventory(ctx context.Context, inventory *entities.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inventory
	r.stock[inventory.BloodGroup] = &cp
	return nil
}

func (r *fakeInventoryRepository) CreateHistory(ctx context.Context, history *entities.InventoryHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *history
	r.histories = append(r.histories, &cp)
	return nil
}

// GetHistory returns newest first by insertion order.
func (r *fakeInventoryRepository) GetHistory(ctx context.Context, filter domain.InventoryHistoryFilter) ([]*entities.InventoryHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.InventoryHistory
	for i := len(r.histories) - 1; i >= 0 && len(out) < filter.Limit; i-- {
		h := r.histories[i]
		if filter.BloodGroup != "" && h.BloodGroup != filter.BloodGroup {
			continue
		}
		cp := *h
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInventoryRepository) CompletedDonationUnits(ctx context.Context) (map[string]int, error) {
	return r.donated, nil
}

func (r *fakeInventoryRepository) FulfilledRequestUnits(ctx context.Context) (map[string]int, error) {
	return r.fulfilled, nil
}

func (r *fakeInventoryRepository) PendingRequestUnits(ctx context.Context) (map[string]int, error) {
	return r.pending, nil
}

func (r *fakeInventoryRepository) units(group string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.stock[group]; ok {
		return v.Units
	}
	return 0
}

type fakeS3 struct {
	enabled bool
	keys    []string
	bodies  [][]byte
}

func (s *fakeS3) Enabled() bool { return s.enabled }

func (s *fakeS3) UploadBytes(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	s.keys = append(s.keys, key)
	s.bodies = append(s.bodies, body)
	return key, nil
}

func (s *fakeS3) GetPublicLinkKey(key string) string {
	return "https://bucket.s3.amazonaws.com/" + key
}
