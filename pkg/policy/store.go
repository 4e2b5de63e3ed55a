package policy

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pion/logging"

	"github.com/backkem/winsd/pkg/acl"
	"github.com/backkem/winsd/pkg/secdesc"
	"github.com/backkem/winsd/pkg/sddl"
	"github.com/backkem/winsd/pkg/sid"
)

// Store errors.
var (
	ErrNoPath            = errors.New("policy: no file path configured")
	ErrUnknownResource   = errors.New("policy: unknown resource")
	ErrMissingName       = errors.New("policy: resource missing name")
	ErrMissingDescriptor = errors.New("policy: resource missing descriptor")
	ErrDuplicateResource = errors.New("policy: duplicate resource name")
)

// Config holds configuration for a Store.
type Config struct {
	// Path is the policy TOML file to load.
	// Required.
	Path string

	// Debounce is how long Watch waits after the last filesystem event
	// before reloading. Defaults to 200ms.
	Debounce time.Duration

	// Resolver maps trustee SIDs to display names in log output.
	// If nil, well-known names and S- notation are used.
	Resolver sid.NameResolver

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Store maps resource names to security descriptors loaded from a policy
// file. All methods are safe for concurrent use; Reload swaps the whole
// snapshot under the lock.
type Store struct {
	path     string
	debounce time.Duration
	resolver sid.NameResolver
	log      logging.LeveledLogger

	mu          sync.RWMutex
	descriptors map[string]*secdesc.SecurityDescriptor
	reloadCount uint64
	lastReload  time.Time
	lastError   error
}

// Load creates a Store from the policy file named in config. The file must
// load cleanly; there is no store without an initial snapshot.
func Load(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, ErrNoPath
	}

	debounce := config.Debounce
	if debounce == 0 {
		debounce = 200 * time.Millisecond
	}

	s := &Store{
		path:     config.Path,
		debounce: debounce,
		resolver: config.Resolver,
	}
	if config.LoggerFactory != nil {
		s.log = config.LoggerFactory.NewLogger("policy")
	}

	descriptors, err := loadFile(config.Path)
	if err != nil {
		return nil, err
	}
	s.descriptors = descriptors
	s.lastReload = time.Now()

	if s.log != nil {
		s.log.Infof("policy loaded, file=%s resources=%d", s.path, len(descriptors))
	}
	return s, nil
}

// fileConfig is the on-disk policy document.
type fileConfig struct {
	Resources []resourceConfig `toml:"resource"`
}

type resourceConfig struct {
	Name       string `toml:"name"`
	Descriptor string `toml:"descriptor"`
}

func loadFile(path string) (map[string]*secdesc.SecurityDescriptor, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("policy: decode %s: %w", path, err)
	}

	out := make(map[string]*secdesc.SecurityDescriptor, len(fc.Resources))
	for i, r := range fc.Resources {
		if r.Name == "" {
			return nil, fmt.Errorf("policy: resource %d: %w", i, ErrMissingName)
		}
		if r.Descriptor == "" {
			return nil, fmt.Errorf("policy: resource %q: %w", r.Name, ErrMissingDescriptor)
		}
		if _, dup := out[r.Name]; dup {
			return nil, fmt.Errorf("policy: resource %q: %w", r.Name, ErrDuplicateResource)
		}
		sd, err := sddl.Parse(r.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("policy: resource %q: %w", r.Name, err)
		}
		out[r.Name] = sd
	}
	return out, nil
}

// Reload re-reads the policy file and swaps the snapshot. On any load or
// parse error the previous snapshot stays in place and the error is
// recorded in Stats.
func (s *Store) Reload() error {
	descriptors, err := loadFile(s.path)
	if err != nil {
		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()
		if s.log != nil {
			s.log.Errorf("policy reload failed, keeping previous snapshot: %v", err)
		}
		return err
	}

	s.mu.Lock()
	old := len(s.descriptors)
	s.descriptors = descriptors
	s.reloadCount++
	s.lastReload = time.Now()
	s.lastError = nil
	s.mu.Unlock()

	if s.log != nil {
		s.log.Infof("policy reloaded, resources=%d (was %d)", len(descriptors), old)
	}
	return nil
}

// Get returns the descriptor bound to name.
func (s *Store) Get(name string) (*secdesc.SecurityDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sd, ok := s.descriptors[name]
	return sd, ok
}

// Names returns all resource names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.descriptors))
	for name := range s.descriptors {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// EffectiveAccess evaluates the rights the trustee holds on the named
// resource. A resource with no DACL grants nothing.
func (s *Store) EffectiveAccess(name string, trustee *sid.SID) (acl.AccessMask, error) {
	sd, ok := s.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	granted := sd.EffectiveRights(trustee)
	if s.log != nil {
		s.log.Debugf("effective access, resource=%s trustee=%s granted=%s",
			name, s.trusteeName(trustee), granted)
	}
	return granted, nil
}

// CheckAccess reports whether the trustee holds every bit of desired on
// the named resource.
func (s *Store) CheckAccess(name string, trustee *sid.SID, desired acl.AccessMask) (bool, error) {
	granted, err := s.EffectiveAccess(name, trustee)
	if err != nil {
		return false, err
	}
	return granted.Has(desired), nil
}

// trusteeName returns a display name for log output.
func (s *Store) trusteeName(t *sid.SID) string {
	if t == nil {
		return "<nil>"
	}
	if s.resolver != nil {
		if name, err := s.resolver.LookupName(t); err == nil {
			return name
		}
	}
	if name, ok := sid.WellKnownName(t); ok {
		return name
	}
	return t.String()
}

// Stats holds store counters for observability.
type Stats struct {
	Path        string
	Resources   int
	ReloadCount uint64
	LastReload  time.Time
	LastError   error
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Path:        s.path,
		Resources:   len(s.descriptors),
		ReloadCount: s.reloadCount,
		LastReload:  s.lastReload,
		LastError:   s.lastError,
	}
}
