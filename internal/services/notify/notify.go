// Package notify holds the per-user notification queues that replace blocking dialogs.
// Services publish into a queue; the view drains it when it renders.
package notify

import (
	"sync"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// DefaultQueueLimit bounds each user's queue; the oldest entries are dropped first.
const DefaultQueueLimit = 50

// Queue is one user's pending notifications.
type Queue struct {
	mu    sync.Mutex
	items []models.Notification
	limit int
	now   func() time.Time
}

// Publish appends a notification.
func (q *Queue) Publish(level models.NotificationLevel, action, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, models.Notification{
		Level:   level,
		Action:  action,
		Message: message,
		At:      q.now(),
	})
	if over := len(q.items) - q.limit; over > 0 {
		q.items = append([]models.Notification(nil), q.items[over:]...)
	}
}

// Error publishes an error notification.
func (q *Queue) Error(action, message string) {
	q.Publish(models.NotificationError, action, message)
}

// Success publishes a success notification.
func (q *Queue) Success(action, message string) {
	q.Publish(models.NotificationSuccess, action, message)
}

// Pending returns a copy of the queued notifications without removing them.
func (q *Queue) Pending() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.Notification(nil), q.items...)
}

// Drain returns and removes all queued notifications.
func (q *Queue) Drain() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []models.Notification{}
	}
	return out
}

// Center owns the queues of all users.
type Center struct {
	mu     sync.Mutex
	queues map[string]*Queue
	limit  int
	now    func() time.Time
}

// NewCenter creates a notification center. A limit of zero uses DefaultQueueLimit.
func NewCenter(limit int) *Center {
	if limit <= 0 {
		limit = DefaultQueueLimit
	}
	return &Center{
		queues: make(map[string]*Queue),
		limit:  limit,
		now:    time.Now,
	}
}

// For returns the queue held under a session key, creating it on first use.
func (c *Center) For(key string) *Queue {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.queues[key]
	if !ok {
		q = &Queue{limit: c.limit, now: c.now}
		c.queues[key] = q
	}
	return q
}

// Forget drops the queue held under a session key.
func (c *Center) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.queues, key)
}
