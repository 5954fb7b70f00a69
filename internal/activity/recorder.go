package activity

import (
	"log/slog"
	"sync"
	"time"

	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const flushThreshold = 50

// Recorder buffers audit-trail rows and persists them in batches from a
// background goroutine. Membership transactions commit first and hand
// their activity rows to the recorder afterwards, so an unavailable audit
// table never blocks or rolls back a membership operation.
type Recorder struct {
	db     *gorm.DB
	mu     sync.Mutex
	users  []models.UserActivity
	groups []models.GroupActivity
	admins []models.AdminActivity
	ticker *time.Ticker
	done   chan struct{}
}

func NewRecorder(db *gorm.DB) *Recorder {
	r := &Recorder{
		db:     db,
		users:  make([]models.UserActivity, 0, flushThreshold),
		groups: make([]models.GroupActivity, 0, flushThreshold),
		admins: make([]models.AdminActivity, 0, flushThreshold),
		ticker: time.NewTicker(5 * time.Second),
		done:   make(chan struct{}),
	}
	go r.flushLoop()
	return r
}

// User appends a user activity row.
func (r *Recorder) User(userID uuid.UUID, action, description string) {
	r.append(func() {
		r.users = append(r.users, models.UserActivity{
			ID:          uuid.New(),
			UserID:      userID,
			Action:      action,
			Description: description,
			CreatedAt:   time.Now(),
		})
	})
}

// Group appends a group activity row.
func (r *Recorder) Group(groupID uuid.UUID, action, description string) {
	r.append(func() {
		r.groups = append(r.groups, models.GroupActivity{
			ID:          uuid.New(),
			GroupID:     groupID,
			Action:      action,
			Description: description,
			CreatedAt:   time.Now(),
		})
	})
}

// Admin appends an admin activity row.
func (r *Recorder) Admin(adminID uuid.UUID, action, description string) {
	r.append(func() {
		r.admins = append(r.admins, models.AdminActivity{
			ID:          uuid.New(),
			AdminID:     adminID,
			Action:      action,
			Description: description,
			CreatedAt:   time.Now(),
		})
	})
}

func (r *Recorder) append(add func()) {
	r.mu.Lock()
	add()
	needFlush := len(r.users)+len(r.groups)+len(r.admins) >= flushThreshold
	r.mu.Unlock()

	if needFlush {
		go r.Flush()
	}
}

func (r *Recorder) flushLoop() {
	for {
		select {
		case <-r.ticker.C:
			r.Flush()
		case <-r.done:
			return
		}
	}
}

// Flush writes all buffered rows. Failures are logged, never propagated;
// the audit trail is best-effort by contract.
func (r *Recorder) Flush() {
	r.mu.Lock()
	users, groups, admins := r.users, r.groups, r.admins
	r.users = make([]models.UserActivity, 0, flushThreshold)
	r.groups = make([]models.GroupActivity, 0, flushThreshold)
	r.admins = make([]models.AdminActivity, 0, flushThreshold)
	r.mu.Unlock()

	if len(users) > 0 {
		if err := r.db.CreateInBatches(users, flushThreshold).Error; err != nil {
			slog.Error("failed to flush user activities", "error", err, "count", len(users))
		}
	}
	if len(groups) > 0 {
		if err := r.db.CreateInBatches(groups, flushThreshold).Error; err != nil {
			slog.Error("failed to flush group activities", "error", err, "count", len(groups))
		}
	}
	if len(admins) > 0 {
		if err := r.db.CreateInBatches(admins, flushThreshold).Error; err != nil {
			slog.Error("failed to flush admin activities", "error", err, "count", len(admins))
		}
	}
}

// Stop halts the background loop and drains whatever is still buffered.
func (r *Recorder) Stop() {
	r.ticker.Stop()
	close(r.done)
	r.Flush()
}
