package archetype

import (
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/diagramkit/diagramkit/pkg/errors"
)

// Registry resolves archetype identifiers to layout rules.
//
// Concurrent readers are safe; registrations and reloads take the write
// lock. Last write wins, there are no transactional guarantees. Create one
// Registry per process and inject it rather than sharing a package global.
type Registry struct {
	mu sync.RWMutex

	learned    map[string]Rules // in-memory learned registrations
	custom     map[string]Rules // in-memory custom registrations
	predefined map[string]Rules // built-in table
	disk       map[string]Rules // rules loaded from the rules directory

	dir    string // rules directory; "" disables disk lookup and persistence
	logger *log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDir sets the on-disk rules directory. Predefined rule files live
// directly in dir; learned files under dir/learned.
func WithDir(dir string) Option {
	return func(r *Registry) { r.dir = dir }
}

// WithLogger sets the registry logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates a registry with the built-in predefined table and, if
// a directory is configured, the rules found on disk. Malformed rule files
// are logged and skipped, never propagated.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		learned:    make(map[string]Rules),
		custom:     make(map[string]Rules),
		predefined: Predefined(),
		disk:       make(map[string]Rules),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.dir != "" {
		r.reloadLocked()
	}
	return r
}

// Resolve returns the rules for an archetype identifier. It is
// case-insensitive and never fails: unknown identifiers resolve to the
// freeform canvas fallback.
//
// Priority: learned > custom > predefined > disk > fallback.
func (r *Registry) Resolve(id string) Rules {
	key := strings.ToLower(strings.TrimSpace(id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if rules, ok := r.learned[key]; ok {
		return rules
	}
	if rules, ok := r.custom[key]; ok {
		return rules
	}
	if rules, ok := r.predefined[key]; ok {
		return rules
	}
	if rules, ok := r.disk[key]; ok {
		return rules
	}
	return CanvasFallback(key)
}

// RegisterCustom adds or replaces a custom rules entry in memory.
func (r *Registry) RegisterCustom(rules Rules) error {
	rules = rules.normalize(rules.ArchetypeID)
	if err := errors.ValidateArchetypeID(rules.ArchetypeID); err != nil {
		return err
	}
	rules.Provenance = ProvenanceCustom

	r.mu.Lock()
	r.custom[rules.ArchetypeID] = rules
	r.mu.Unlock()

	r.logger.Debug("registered custom archetype", "id", rules.ArchetypeID)
	return nil
}

// RegisterLearned adds or replaces a learned rules entry. When persist is
// true and a rules directory is configured, the entry is also written as
// one JSON file under the learned subdirectory.
func (r *Registry) RegisterLearned(rules Rules, persist bool) error {
	rules = rules.normalize(rules.ArchetypeID)
	if err := errors.ValidateArchetypeID(rules.ArchetypeID); err != nil {
		return err
	}
	rules.Provenance = ProvenanceLearned

	r.mu.Lock()
	r.learned[rules.ArchetypeID] = rules
	r.mu.Unlock()

	if persist && r.dir != "" {
		if err := saveLearned(r.dir, rules); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "persist learned archetype %q", rules.ArchetypeID)
		}
	}

	r.logger.Debug("registered learned archetype", "id", rules.ArchetypeID, "persisted", persist && r.dir != "")
	return nil
}

// Reload rescans the rules directory, replacing the disk-loaded entries.
// In-memory learned and custom registrations are untouched.
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadLocked()
}

func (r *Registry) reloadLocked() {
	if r.dir == "" {
		return
	}
	loaded, skipped := loadDir(r.dir)
	r.disk = loaded
	for _, s := range skipped {
		r.logger.Warn("skipped malformed rule file", "file", s.path, "err", s.err)
	}
	r.logger.Debug("loaded rule files", "dir", r.dir, "count", len(loaded), "skipped", len(skipped))
}

// List returns every resolvable archetype, sorted by ID. When an ID exists
// at several priority levels only the winning entry is returned.
func (r *Registry) List() []Rules {
	r.mu.RLock()
	ids := make(map[string]struct{})
	for id := range r.disk {
		ids[id] = struct{}{}
	}
	for id := range r.predefined {
		ids[id] = struct{}{}
	}
	for id := range r.custom {
		ids[id] = struct{}{}
	}
	for id := range r.learned {
		ids[id] = struct{}{}
	}
	r.mu.RUnlock()

	out := make([]Rules, 0, len(ids))
	for id := range ids {
		out = append(out, r.Resolve(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArchetypeID < out[j].ArchetypeID })
	return out
}
