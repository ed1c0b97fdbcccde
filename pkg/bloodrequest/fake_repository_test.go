package bloodrequest

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeBloodRequestRepository struct {
	mu            sync.Mutex
	requests      map[string]*entities.BloodRequest
	notifications []*entities.Notification
	lastFilter    domain.BloodRequestFilter
}

func newFakeBloodRequestRepository() *fakeBloodRequestRepository {
	return &fakeBloodRequestRepository{requests: map[string]*entities.BloodRequest{}}
}

// Transaction commits fn's writes only when fn succeeds.
func (r *fakeBloodRequestRepository) Transaction(ctx context.Context, fn func(repo BloodRequestRepository) error) error {
	r.mu.Lock()
	snapshot := make(map[string]entities.BloodRequest, len(r.requests))
	for id, req := range r.requests {
		snapshot[id] = *req
	}
	notified := len(r.notifications)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		for id, req := range snapshot {
			cp := req
			r.requests[id] = &cp
		}
		r.notifications = r.notifications[:notified]
		return err
	}
	return nil
}

func (r *fakeBloodRequestRepository) CreateBloodRequest(ctx context.Context, request *entities.BloodRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	cp := *request
	r.requests[request.ID.String()] = &cp
	return nil
}

func (r *fakeBloodRequestRepository) GetBloodRequestByID(ctx context.Context, id string) (*entities.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeBloodRequestRepository) GetBloodRequestForUpdate(ctx context.Context, id string) (*entities.BloodRequest, error) {
	return r.GetBloodRequestByID(ctx, id)
}

func (r *fakeBloodRequestRepository) GetBloodRequests(ctx context.Context, filter domain.BloodRequestFilter) ([]*entities.BloodRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter

	var matched []*entities.BloodRequest
	for _, req := range r.requests {
		if !statusIn(domain.RequestStatus(req.Status), filter.Statuses) {
			continue
		}
		if filter.Requester != "" && req.RequesterEmail != filter.Requester {
			continue
		}
		if filter.BloodGroup != "" && req.BloodGroup != filter.BloodGroup {
			continue
		}
		cp := *req
		matched = append(matched, &cp)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeBloodRequestRepository) UpdateBloodRequestStatus(ctx context.Context, id string, from, to domain.RequestStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != string(from) {
		return 0, nil
	}
	req.Status = string(to)
	return 1, nil
}

func (r *fakeBloodRequestRepository) CreateNotification(ctx context.Context, n *entities.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *fakeBloodRequestRepository) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[id].Status
}

func statusIn(s domain.RequestStatus, set []domain.RequestStatus) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*entities.Notification
}

func (p *recordingPublisher) Publish(ctx context.Context, n *entities.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
	return nil
}
