package notification

import (
	"blood-portal/entities"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeNotificationRepository struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*entities.Notification
	seq           int
}

func newFakeNotificationRepository() *fakeNotificationRepository {
	return &fakeNotificationRepository{notifications: map[uuid.UUID]*entities.Notification{}}
}

func (r *fakeNotificationRepository) CreateNotification(ctx context.Context, n *entities.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.seq++
	n.CreatedAt = time.Date(2025, 1, 1, 0, 0, r.seq, 0, time.UTC)
	cp := *n
	r.notifications[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepository) GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	n, ok := r.notifications[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNotificationRepository) GetNotifications(ctx context.Context, recipient string, unreadOnly bool, page, limit int) ([]*entities.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entities.Notification
	for _, n := range r.notifications {
		if n.RecipientEmail != recipient || (unreadOnly && n.Read) {
			continue
		}
		cp := *n
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeNotificationRepository) UpdateReadState(ctx context.Context, id string, read bool, readAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[uuid.MustParse(id)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Read = read
	n.ReadAt = readAt
	return nil
}

func (r *fakeNotificationRepository) MarkAllRead(ctx context.Context, recipient string, readAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, notification := range r.notifications {
		if notification.RecipientEmail == recipient && !notification.Read {
			notification.Read = true
			at := readAt
			notification.ReadAt = &at
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepository) CountUnread(ctx context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, notification := range r.notifications {
		if notification.RecipientEmail == recipient && !notification.Read {
			n++
		}
	}
	return n, nil
}

type recordingPublisher struct {
	published []*entities.Notification
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, n *entities.Notification) error {
	p.published = append(p.published, n)
	return p.err
}
