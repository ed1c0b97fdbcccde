package assignment

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"blood-portal/pkg/bloodrequest"
	"blood-portal/pkg/donor"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeAssignmentRepository struct {
	// tx serialises transactions the way the request row lock does.
	tx sync.Mutex
	mu sync.Mutex

	requests      map[string]*entities.BloodRequest
	donors        map[string]*entities.User
	donations     []*entities.Donation
	notifications []*entities.Notification

	failCreateDonation error
}

func newFakeAssignmentRepository() *fakeAssignmentRepository {
	return &fakeAssignmentRepository{
		requests: map[string]*entities.BloodRequest{},
		donors:   map[string]*entities.User{},
	}
}

func (r *fakeAssignmentRepository) Transaction(ctx context.Context, fn func(repo AssignmentRepository) error) error {
	r.tx.Lock()
	defer r.tx.Unlock()

	r.mu.Lock()
	requests := map[string]entities.BloodRequest{}
	for k, v := range r.requests {
		requests[k] = *v
	}
	donors := map[string]entities.User{}
	for k, v := range r.donors {
		donors[k] = *v
	}
	donations, notifications := len(r.donations), len(r.notifications)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		for k, v := range requests {
			cp := v
			r.requests[k] = &cp
		}
		for k, v := range donors {
			cp := v
			r.donors[k] = &cp
		}
		r.donations = r.donations[:donations]
		r.notifications = r.notifications[:notifications]
		return err
	}
	return nil
}

func (r *fakeAssignmentRepository) GetBloodRequestForUpdate(ctx context.Context, id string) (*entities.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeAssignmentRepository) GetDonorByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donors[email]
	if !ok || d.Role != domain.RoleDonor {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeAssignmentRepository) MarkFulfilled(ctx context.Context, id, donorEmail string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || domain.RequestStatus(req.Status).Terminal() {
		return 0, nil
	}
	req.Status = string(domain.RequestFulfilled)
	email := donorEmail
	req.FulfilledBy = &email
	req.FulfilledAt = &at
	return 1, nil
}

func (r *fakeAssignmentRepository) CreateDonation(ctx context.Context, d *entities.Donation) error {
	if r.failCreateDonation != nil {
		return r.failCreateDonation
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.donations {
		if existing.RequestID == d.RequestID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	cp := *d
	r.donations = append(r.donations, &cp)
	return nil
}

func (r *fakeAssignmentRepository) IncrementDonorDonations(ctx context.Context, donorID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.donors {
		if d.ID == donorID {
			d.TotalDonations++
			when := at
			d.LastDonation = &when
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAssignmentRepository) CreateNotification(ctx context.Context, n *entities.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *fakeAssignmentRepository) requestRecord(id string) entities.BloodRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.requests[id]
}

func (r *fakeAssignmentRepository) donorRecord(email string) entities.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.donors[email]
}

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []sentMail
	err   error
	delay time.Duration
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) (string, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, html, text})
	return "<msg@test>", nil
}

func (m *fakeMailer) messages() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
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

type stubBloodRequestService struct {
	bloodrequest.BloodRequestService
	requests map[string]*domain.BloodRequest
}

func (s *stubBloodRequestService) GetBloodRequestByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	if r, ok := s.requests[id]; ok {
		return r, nil
	}
	return nil, domain.ErrRequestNotFound
}

type stubDonorService struct {
	donor.DonorService
	lastFilter domain.DonorMatchFilter
	candidates []*domain.Donor
}

func (s *stubDonorService) FindCandidates(ctx context.Context, filter domain.DonorMatchFilter) ([]*domain.Donor, error) {
	s.lastFilter = filter
	return s.candidates, nil
}

// sharedRequestStore exposes the assignment fake through the request store
// interface so both services work on the same rows.
type sharedRequestStore struct {
	repo *fakeAssignmentRepository
}

func (s *sharedRequestStore) Transaction(ctx context.Context, fn func(repo bloodrequest.BloodRequestRepository) error) error {
	return s.repo.Transaction(ctx, func(AssignmentRepository) error {
		return fn(s)
	})
}

func (s *sharedRequestStore) CreateBloodRequest(ctx context.Context, request *entities.BloodRequest) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	cp := *request
	s.repo.requests[request.ID.String()] = &cp
	return nil
}

func (s *sharedRequestStore) GetBloodRequestByID(ctx context.Context, id string) (*entities.BloodRequest, error) {
	return s.repo.GetBloodRequestForUpdate(ctx, id)
}

func (s *sharedRequestStore) GetBloodRequestForUpdate(ctx context.Context, id string) (*entities.BloodRequest, error) {
	return s.repo.GetBloodRequestForUpdate(ctx, id)
}

func (s *sharedRequestStore) GetBloodRequests(ctx context.Context, filter domain.BloodRequestFilter) ([]*entities.BloodRequest, int64, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	var out []*entities.BloodRequest
	for _, r := range s.repo.requests {
		cp := *r
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (s *sharedRequestStore) UpdateBloodRequestStatus(ctx context.Context, id string, from, to domain.RequestStatus) (int64, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	req, ok := s.repo.requests[id]
	if !ok || req.Status != string(from) {
		return 0, nil
	}
	req.Status = string(to)
	return 1, nil
}

func (s *sharedRequestStore) CreateNotification(ctx context.Context, n *entities.Notification) error {
	return s.repo.CreateNotification(ctx, n)
}
