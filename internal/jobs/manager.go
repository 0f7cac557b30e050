package jobs

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/models"
	"github.com/packline/packtrace/internal/websocket"
	"gorm.io/datatypes"
)

// Status is the lifecycle state of a background job
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ProgressFunc receives batch progress from a running job
type ProgressFunc func(processed, total int)

// RunFunc is the body of a job. It reports progress through the callback
// and returns a JSON-serializable result.
type RunFunc func(progress ProgressFunc) (interface{}, error)

// Snapshot is the observable state of a job. Handlers hand copies of it
// to pollers; the live struct never leaves the manager.
type Snapshot struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Status     Status          `json:"status"`
	Processed  int             `json:"processed"`
	Total      int             `json:"total"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
}

// Manager runs imports and exports on their own goroutines. Each job
// carries its own database connection; the manager only tracks state,
// broadcasts progress and persists the final record.
type Manager struct {
	db  *database.DB
	hub *websocket.Hub

	mu   sync.RWMutex
	jobs map[string]*Snapshot
}

// NewManager creates a Manager bound to the shared connection and the
// progress hub
func NewManager(db *database.DB, hub *websocket.Hub) *Manager {
	return &Manager{
		db:   db,
		hub:  hub,
		jobs: make(map[string]*Snapshot),
	}
}

// Start launches a job and returns its id immediately
func (m *Manager) Start(jobType string, run RunFunc) string {
	id := uuid.New().String()
	snap := &Snapshot{
		ID:        id,
		Type:      jobType,
		Status:    StatusPending,
		StartedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.jobs[id] = snap
	m.mu.Unlock()

	go m.run(snap, run)
	return id
}

func (m *Manager) run(snap *Snapshot, run RunFunc) {
	m.update(snap, func(s *Snapshot) { s.Status = StatusRunning })
	log.Printf("⚙️ Job %s started (%s)", snap.ID, snap.Type)

	progress := func(processed, total int) {
		m.update(snap, func(s *Snapshot) {
			s.Processed = processed
			s.Total = total
		})
		m.hub.Broadcast(map[string]interface{}{
			"type":      "JOB_PROGRESS",
			"jobId":     snap.ID,
			"jobType":   snap.Type,
			"processed": processed,
			"total":     total,
		})
	}

	result, err := run(progress)

	payload, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		log.Printf("⚠️ Job %s result not serializable: %v", snap.ID, marshalErr)
		payload = nil
	}

	now := time.Now().UTC()
	m.update(snap, func(s *Snapshot) {
		s.FinishedAt = &now
		s.Result = payload
		if err != nil {
			s.Status = StatusFailed
			s.Error = err.Error()
		} else {
			s.Status = StatusSucceeded
		}
	})

	status := StatusSucceeded
	if err != nil {
		status = StatusFailed
		log.Printf("❌ Job %s failed: %v", snap.ID, err)
	} else {
		log.Printf("✅ Job %s finished", snap.ID)
	}

	m.hub.Broadcast(map[string]interface{}{
		"type":    "JOB_FINISHED",
		"jobId":   snap.ID,
		"jobType": snap.Type,
		"status":  status,
	})

	m.persist(snap, status)
}

// update mutates a snapshot under the manager lock
func (m *Manager) update(snap *Snapshot, fn func(*Snapshot)) {
	m.mu.Lock()
	fn(snap)
	m.mu.Unlock()
}

// persist writes the finished job to job_records for later inspection.
// A persistence failure does not change the job outcome.
func (m *Manager) persist(snap *Snapshot, status Status) {
	m.mu.RLock()
	record := models.JobRecord{
		ID:         snap.ID,
		Type:       snap.Type,
		Status:     string(status),
		Result:     datatypes.JSON(snap.Result),
		StartedAt:  snap.StartedAt,
		FinishedAt: snap.FinishedAt,
	}
	m.mu.RUnlock()

	if err := m.db.Create(&record).Error; err != nil {
		log.Printf("⚠️ Failed to persist job %s: %v", snap.ID, err)
	}
}

// Get returns a copy of the job state for polling
func (m *Manager) Get(id string) (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.jobs[id]
	if !ok {
		return Snapshot{}, false
	}
	return *snap, true
}

// List returns copies of all jobs started since the server came up,
// newest first
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, 0, len(m.jobs))
	for _, snap := range m.jobs {
		out = append(out, *snap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}
