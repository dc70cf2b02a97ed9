package notification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryRepository evaluates visibility with Visibility.Matches.
type memoryRepository struct {
	mu   sync.Mutex
	docs []*Notification
	err  error
}

var _ Repository = (*memoryRepository)(nil)

func (r *memoryRepository) Create(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	n.ID = primitive.NewObjectID()
	cp := *n
	r.docs = append(r.docs, &cp)
	return nil
}

func (r *memoryRepository) FindVisible(_ context.Context, v Visibility, limit int64) ([]*Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*Notification
	for _, n := range r.docs {
		if v.Matches(n) {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepository) CountVisible(_ context.Context, v Visibility) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, n := range r.docs {
		if v.Matches(n) {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) MarkRead(_ context.Context, id primitive.ObjectID) (*Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, n := range r.docs {
		if n.ID == id {
			n.IsRead = true
			n.UpdatedAt = time.Now().UTC()
			cp := *n
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) MarkAllRead(_ context.Context, v Visibility) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	v = v.Unread()
	var modified int64
	for _, n := range r.docs {
		if v.Matches(n) {
			n.IsRead = true
			modified++
		}
	}
	return modified, nil
}

func (r *memoryRepository) snapshot() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.docs))
	for i, n := range r.docs {
		out[i] = *n
	}
	return out
}

var errStore = errors.New("store unavailable")

// seed inserts a notification created at base+offset.
func seed(r *memoryRepository, base time.Time, offset time.Duration, n Notification) *Notification {
	n.CreatedAt = base.Add(offset)
	n.UpdatedAt = n.CreatedAt
	if n.Type == "" {
		n.Type = TypeInfo
	}
	_ = r.Create(context.Background(), &n)
	return &n
}
