package container

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/km-arc/go-hr/framework/singleton"
)

// ErrNotBound is returned when Make is asked for an unregistered abstract.
var ErrNotBound = errors.New("container: no binding registered")

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value, resolving its own dependencies from c.
type Factory func(c *Container) (any, error)

// binding is either transient (shared == nil) or backed by a singleton slot.
type binding struct {
	factory Factory
	shared  *singleton.Manager[any]
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the service container.
//
// It supports:
//   - Bind (transient) / Singleton (lazy, built once) / Instance (pre-built)
//   - Alias
//   - Make / Resolve (generic)
//   - AfterResolving callbacks
//
// A singleton whose factory fails is not recorded; the next Make retries it.
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]*binding

	// alias → abstract (canonical key)
	aliases map[string]string

	afterResolving []func(abstract string, instance any)
}

// New creates an empty container bound to itself under "container".
func New() *Container {
	c := &Container{
		bindings: make(map[string]*binding),
		aliases:  make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a factory that runs on every Make.
//
//	c.Bind("bonus.fixed", func(c *container.Container) (any, error) {
//	    return bonus.NewFixed(5000)
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.register(abstract, &binding{factory: factory})
}

// Singleton registers a factory whose first successful result is reused.
//
//	c.Singleton("roles", func(c *container.Container) (any, error) {
//	    return role.NewDefaultRegistry(), nil
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	b := &binding{factory: factory}
	b.shared = singleton.New(func() (any, error) { return factory(c) })
	c.register(abstract, b)
}

// Instance registers a pre-built value.
func (c *Container) Instance(abstract string, instance any) {
	c.Singleton(abstract, func(*Container) (any, error) { return instance, nil })
}

func (c *Container) register(abstract string, b *binding) {
	if b.factory == nil {
		panic(fmt.Sprintf("container: nil factory for [%s]", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[c.canonical(abstract)] = b
}

// Alias registers an alternative name for an abstract.
func (c *Container) Alias(abstract, alias string) {
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container.
func (c *Container) Make(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w for [%s]", ErrNotBound, abstract)
	}

	var (
		instance any
		err      error
	)
	if b.shared != nil {
		instance, err = b.shared.Get()
	} else {
		instance, err = b.factory(c)
	}
	if err != nil {
		return nil, fmt.Errorf("container: resolving [%s]: %w", abstract, err)
	}

	c.fireAfterResolving(key, instance)
	return instance, nil
}

// MustMake is Make that panics on error, for bootstrap code.
func (c *Container) MustMake(abstract string) any {
	instance, err := c.Make(abstract)
	if err != nil {
		panic(err)
	}
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[c.canonical(abstract)]
	return ok
}

// Resolved reports whether a singleton abstract has been built.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bindings[c.canonical(abstract)]
	return ok && b.shared != nil && b.shared.Constructed()
}

// Forget removes the binding for an abstract.
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, c.canonical(abstract))
}

// Bindings returns the registered abstract keys, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		out = append(out, k)
	}
	c.mu.RUnlock()
	slices.Sort(out)
	return out
}

func (c *Container) lookup(abstract string) *binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bindings[c.canonical(abstract)]
}

// canonical resolves an alias to its key. Caller holds mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after every successful Make.
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(abstract string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, handy as an abstract
// key for a type with exactly one shared instance.
//
//	key := container.TypeKey((*system.HRSystem)(nil)) // ".../hr/system.HRSystem"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	roles, err := container.Resolve[*role.Registry](c, "roles")
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%T]: [%s] resolved to %T", zero, abstract, instance)
	}
	return typed, nil
}

// MustResolve is Resolve that panics on error.
func MustResolve[T any](c *Container, abstract string) T {
	typed, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return typed
}
