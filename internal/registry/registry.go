// Package registry holds the in-memory VLAN registry.
//
// The Registry owns its map and exposes create, list, get and health. Every
// mutation goes through Create, which performs the existence check and the
// insert under a single write lock, so two concurrent creates of the same ID
// produce exactly one record and one ErrConflict.
package registry

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"evalgo.org/vlanreg/internal/validation"
	"evalgo.org/vlanreg/models"
)

// Listener is notified after a VLAN has been registered. It runs on the
// creating goroutine after the lock is released.
type Listener func(vlan models.VLAN, total int)

// Registry is the process-wide store of VLAN records.
type Registry struct {
	mu    sync.RWMutex
	vlans map[int]models.VLAN

	validator *validation.Validator
	listeners []Listener
	now       func() time.Time
	startedAt time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithBounds overrides the accepted VLAN ID range.
func WithBounds(minID, maxID int) Option {
	return func(r *Registry) {
		r.validator = validation.New(minID, maxID)
	}
}

// WithClock sets the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// WithListener registers a callback for successful creates.
func WithListener(l Listener) Option {
	return func(r *Registry) {
		r.listeners = append(r.listeners, l)
	}
}

// New creates an empty registry accepting IDs in [models.MinVLANID, models.MaxVLANID].
func New(opts ...Option) *Registry {
	r := &Registry{
		vlans:     make(map[int]models.VLAN),
		validator: validation.New(models.MinVLANID, models.MaxVLANID),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.startedAt = r.now()
	return r
}

// Subscribe adds a listener for successful creates.
func (r *Registry) Subscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners[:len(r.listeners):len(r.listeners)], l)
}

// Bounds returns the accepted VLAN ID range.
func (r *Registry) Bounds() (int, int) {
	return r.validator.Bounds()
}

// Create registers a new VLAN and returns it together with the new total.
// It fails with a *RangeError for IDs outside the bounds and with a
// *ConflictError carrying the existing record when the ID is taken.
func (r *Registry) Create(req CreateRequest) (models.VLAN, int, error) {
	if result := r.validator.Struct(req); !result.Valid {
		lo, hi := r.validator.Bounds()
		if result.HasTag("vlanid") {
			return models.VLAN{}, 0, &RangeError{ID: req.ID, Min: lo, Max: hi}
		}
		return models.VLAN{}, 0, invalidType(result.Errors[0].Field, result.Errors[0].Message)
	}

	id := int(req.ID)

	r.mu.Lock()
	if existing, ok := r.vlans[id]; ok {
		r.mu.Unlock()
		return models.VLAN{}, 0, &ConflictError{Existing: existing}
	}
	vlan := models.NewVLAN(id, req.Name, r.now())
	r.vlans[id] = vlan
	total := len(r.vlans)
	listeners := r.listeners
	r.mu.Unlock()

	for _, l := range listeners {
		l(vlan, total)
	}

	return vlan, total, nil
}

// List returns every record ordered by ID, plus the total count.
func (r *Registry) List() ([]models.VLAN, int) {
	r.mu.RLock()
	vlans := make([]models.VLAN, 0, len(r.vlans))
	for _, v := range r.vlans {
		vlans = append(vlans, v)
	}
	r.mu.RUnlock()

	sort.Slice(vlans, func(i, j int) bool { return vlans[i].ID < vlans[j].ID })
	return vlans, len(vlans)
}

// Get returns the record registered under id or ErrNotFound.
func (r *Registry) Get(id int) (models.VLAN, error) {
	r.mu.RLock()
	vlan, ok := r.vlans[id]
	r.mu.RUnlock()

	if !ok {
		return models.VLAN{}, ErrNotFound
	}
	return vlan, nil
}

// Count returns the number of registered VLANs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vlans)
}

// Health is a point-in-time liveness snapshot.
type Health struct {
	Status     string       `json:"status"`
	TotalVLANs int          `json:"total_vlans"`
	Memory     MemorySample `json:"memory"`
	Uptime     string       `json:"uptime"`
	Timestamp  time.Time    `json:"timestamp"`
}

// MemorySample holds the process resource figures reported by Health.
type MemorySample struct {
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	SysBytes       uint64 `json:"sys_bytes"`
	Goroutines     int    `json:"goroutines"`
}

// Health reports liveness. It only reads the record count.
func (r *Registry) Health() Health {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	now := r.now()
	return Health{
		Status:     "healthy",
		TotalVLANs: r.Count(),
		Memory: MemorySample{
			HeapAllocBytes: ms.HeapAlloc,
			SysBytes:       ms.Sys,
			Goroutines:     runtime.NumGoroutine(),
		},
		Uptime:    now.Sub(r.startedAt).Round(time.Second).String(),
		Timestamp: now.UTC(),
	}
}
