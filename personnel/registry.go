/*
registry.go - The guarded record collection

PURPOSE:
  Holds the current record set in memory, applies the user-triggered
  mutations (add, delete, import, replace, recompute) and persists the full
  array after each one. Notifications are derived from a snapshot on every
  read, never cached.

CONCURRENCY:
  A single RWMutex. Mutations hold the writer lock until they have been
  persisted, so each one is observed whole. Readers get copies, and
  classification runs on such a copy.

DEPENDENCIES (all injected):
  - KeyValueStore + storage key: where the array lives
  - schedule.Clock: what "today" is
  - ValidationPolicy: how strict entry is
  - logger.Logger: storage failures are only logged

USAGE:
  reg := personnel.NewRegistry(kv,
      personnel.WithClock(schedule.SystemClock{}),
      personnel.WithPolicy(personnel.StrictPolicy()),
  )
  reg.Load(ctx)
  rec, err := reg.Add(ctx, personnel.Input{Name: "Siti", EmployeeNumber: "198703122010012004"})
  res := reg.Notifications(0)

SEE ALSO:
  - store.go: KeyValueStore
  - schedule/classifier.go: Classify
*/
package personnel

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/warp/asn-monitor/pkg/logger"
	"github.com/warp/asn-monitor/schedule"
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the in-memory record set backed by a key-value slot.
type Registry struct {
	mu      sync.RWMutex
	records []Record

	store             KeyValueStore
	key               string
	clock             schedule.Clock
	policy            ValidationPolicy
	horizonDays       int
	recomputeOnImport bool
	newID             func() string
	log               logger.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(r *Registry) {
		if key != "" {
			r.key = key
		}
	}
}

// WithClock sets the source of "now".
func WithClock(c schedule.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithPolicy sets the entry validation policy.
func WithPolicy(p ValidationPolicy) Option {
	return func(r *Registry) { r.policy = p }
}

// WithHorizonDays sets the default "soon" window.
func WithHorizonDays(days int) Option {
	return func(r *Registry) { r.horizonDays = days }
}

// WithRecomputeOnImport makes Import refresh derived dates instead of
// trusting the document.
func WithRecomputeOnImport(on bool) Option {
	return func(r *Registry) { r.recomputeOnImport = on }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry creates an empty registry. Call Load to read the slot.
// A nil store disables persistence.
func NewRegistry(store KeyValueStore, opts ...Option) *Registry {
	r := &Registry{
		records:     []Record{},
		store:       store,
		key:         DefaultStorageKey,
		clock:       schedule.SystemClock{},
		policy:      StrictPolicy(),
		horizonDays: schedule.DefaultHorizonDays,
		newID:       uuid.NewString,
		log:         logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// =============================================================================
// LOAD / PERSIST
// =============================================================================

// Load replaces the in-memory set with the slot contents and returns the
// number of records loaded. A missing, unreadable or malformed slot yields
// an empty set.
func (r *Registry) Load(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = []Record{}
	if r.store == nil {
		return 0
	}

	data, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		r.log.Warn("Failed to read record slot, starting empty", "key", r.key, "error", err)
		return 0
	}
	if !ok || len(strings.TrimSpace(string(data))) == 0 {
		return 0
	}

	records, err := DecodeRecords(data)
	if err != nil {
		r.log.Warn("Stored record slot is malformed, starting empty", "key", r.key, "error", err)
		return 0
	}
	r.records = records
	r.log.Info("Loaded records", "count", len(records))
	return len(records)
}

// persistLocked writes the full array. Failures are logged and swallowed.
func (r *Registry) persistLocked(ctx context.Context) {
	if r.store == nil {
		return
	}
	data, err := EncodeRecords(r.records)
	if err != nil {
		r.log.Warn("Failed to encode records", "error", err)
		return
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		r.log.Warn("Failed to persist records", "key", r.key, "count", len(r.records), "error", err)
	}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Build validates in and returns the record Add would store, with its ID,
// creation time and derived dates set. The set is not touched, so a batch
// can be built first and committed with one Replace.
// Returns a *ValidationError when the policy rejects the input.
func (r *Registry) Build(in Input) (Record, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.EmployeeNumber = strings.TrimSpace(in.EmployeeNumber)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := r.policy.Validate(in); err != nil {
		return Record{}, err
	}

	rec := in.toRecord()
	rec.ID = r.newID()
	rec.CreatedAt = r.clock.Now().UTC()
	rec.Refresh()
	return rec, nil
}

// Add validates in, derives the milestone dates and appends the record.
// Returns a *ValidationError when the policy rejects the input.
func (r *Registry) Add(ctx context.Context, in Input) (Record, error) {
	rec, err := r.Build(in)
	if err != nil {
		return Record{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
	r.persistLocked(ctx)
	return rec, nil
}

// Delete removes the record with the given ID.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return ErrRecordNotFound
	}

	next := make([]Record, 0, len(r.records)-1)
	next = append(next, r.records[:idx]...)
	next = append(next, r.records[idx+1:]...)
	r.records = next
	r.persistLocked(ctx)
	return nil
}

// Import replaces the whole set with the records in data. On an
// *ImportFormatError the current set is left untouched. Returns the number
// of records imported.
func (r *Registry) Import(ctx context.Context, data []byte) (int, error) {
	records, err := DecodeRecords(data)
	if err != nil {
		return 0, err
	}

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = r.newID()
		}
		if r.recomputeOnImport {
			records[i].Refresh()
		}
	}

	r.replace(ctx, records)
	return len(records), nil
}

// Replace swaps in records as given, without validation or recompute.
func (r *Registry) Replace(ctx context.Context, records []Record) {
	cp := make([]Record, len(records))
	copy(cp, records)
	r.replace(ctx, cp)
}

func (r *Registry) replace(ctx context.Context, records []Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = records
	r.persistLocked(ctx)
}

// Recompute refreshes the derived dates of every record and returns how
// many of them changed.
func (r *Registry) Recompute(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for i := range r.records {
		if !r.records[i].IsConsistent() {
			r.records[i].Refresh()
			changed++
		}
	}
	if changed > 0 {
		r.persistLocked(ctx)
	}
	return changed
}

// =============================================================================
// READS
// =============================================================================

// List returns a copy of the record set in insertion order.
func (r *Registry) List() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Get returns the record with the given ID.
func (r *Registry) Get(id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return Record{}, ErrRecordNotFound
	}
	return r.records[idx], nil
}

func (r *Registry) indexLocked(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

// Export serializes the full set as an indented JSON array.
func (r *Registry) Export() ([]byte, error) {
	return EncodeRecordsIndent(r.List())
}

// Today is the registry clock's current date.
func (r *Registry) Today() schedule.Date {
	return schedule.Today(r.clock)
}

// HorizonDays is the configured default "soon" window.
func (r *Registry) HorizonDays() int {
	return r.horizonDays
}

// Notifications classifies the current set against today. A horizon <= 0
// uses the registry default.
func (r *Registry) Notifications(horizonDays int) schedule.Result {
	return r.NotificationsAsOf(r.Today(), horizonDays)
}

// NotificationsAsOf classifies the current set against an explicit date.
func (r *Registry) NotificationsAsOf(today schedule.Date, horizonDays int) schedule.Result {
	if horizonDays <= 0 {
		horizonDays = r.horizonDays
	}
	return schedule.Classify(r.List(), today, horizonDays)
}

// Milestones returns every milestone notification of one record, future
// ones included.
func (r *Registry) Milestones(id string, horizonDays int) ([]schedule.Notification, error) {
	rec, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if horizonDays <= 0 {
		horizonDays = r.horizonDays
	}
	return schedule.Evaluate(rec, r.Today(), horizonDays), nil
}
