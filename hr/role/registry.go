package role

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/km-arc/go-hr/framework/singleton"
)

var (
	// ErrUnknownVariant is returned by Create when no constructor is
	// registered for the discriminator.
	ErrUnknownVariant = errors.New("role: unknown variant")

	// ErrDuplicateVariant is returned when a discriminator is registered twice.
	ErrDuplicateVariant = errors.New("role: variant already registered")

	// ErrSealed is returned when registering into a sealed registry.
	ErrSealed = errors.New("role: registry is sealed")
)

// Registry maps discriminators to role constructors.
//
// Registrations are expected at start-up; after Seal the registry is
// read-only and safe for unsynchronised concurrent Create calls.
type Registry struct {
	mu     sync.RWMutex
	ctors  map[string]Constructor
	sealed bool
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// NewDefaultRegistry returns a sealed registry holding the builtin roles.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for kind, ctor := range builtins() {
		// builtins are distinct and non-empty
		_ = r.Register(kind, ctor)
	}
	r.Seal()
	return r
}

// Register associates discriminator with ctor.
func (r *Registry) Register(discriminator string, ctor Constructor) error {
	key := normalize(discriminator)
	if key == "" {
		return fmt.Errorf("role: empty discriminator")
	}
	if ctor == nil {
		return fmt.Errorf("role: nil constructor for %q", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrSealed, key)
	}
	if _, exists := r.ctors[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVariant, key)
	}
	r.ctors[key] = ctor
	return nil
}

// Seal freezes the registry. Further Register calls fail with ErrSealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Create builds a new Role for discriminator, compared case-insensitively.
func (r *Registry) Create(discriminator string) (Role, error) {
	key := normalize(discriminator)

	r.mu.RLock()
	ctor, ok := r.ctors[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, discriminator)
	}
	return ctor(), nil
}

// Has reports whether discriminator is registered.
func (r *Registry) Has(discriminator string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[normalize(discriminator)]
	return ok
}

// Discriminators returns the registered keys in sorted order.
func (r *Registry) Discriminators() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		out = append(out, k)
	}
	r.mu.RUnlock()

	slices.Sort(out)
	return out
}

func normalize(discriminator string) string {
	return strings.ToLower(discriminator)
}

// ── Process-wide default ──────────────────────────────────────────────────────

var defaultRegistry = singleton.New(func() (*Registry, error) {
	return NewDefaultRegistry(), nil
})

// Default returns the process-wide builtin registry.
func Default() *Registry { return defaultRegistry.MustGet() }

// Create builds a Role from the default registry.
func Create(discriminator string) (Role, error) {
	return Default().Create(discriminator)
}
