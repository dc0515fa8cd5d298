package container

import (
	"fmt"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the bindings of one subsystem.
//
// Register only binds; Boot runs after every provider has registered and is
// the place to resolve other bindings.
//
//	type HRServiceProvider struct{ container.BaseProvider }
//
//	func (p *HRServiceProvider) Register(app *container.Container) {
//	    app.Singleton("roles", func(*container.Container) (any, error) {
//	        return role.Default(), nil
//	    })
//	}
type ServiceProvider interface {
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container) error

	// Provides lists the abstracts a deferred provider registers.
	Provides() []string

	// IsDeferred delays Register until one of Provides() is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider supplies no-op Boot, Provides and IsDeferred. Embed it and
// override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots providers, loading deferred ones on
// first use.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers register immediately, and boot
// immediately too when the registry has already booted.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true
	booted := r.booted
	if !provider.IsDeferred() {
		r.eager = append(r.eager, provider)
	}
	r.mu.Unlock()

	if provider.IsDeferred() {
		r.interceptDeferred(provider)
		return nil
	}

	provider.Register(r.app)
	if booted {
		return bootProvider(provider, r.app)
	}
	return nil
}

// interceptDeferred binds a placeholder for each provided abstract. The first
// Make runs the provider's Register (which replaces the placeholders) and then
// resolves the real binding.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	var (
		once    sync.Once
		bootErr error
	)
	load := func(c *Container) error {
		once.Do(func() {
			provider.Register(c)
			r.mu.Lock()
			booted := r.booted
			r.mu.Unlock()
			if booted {
				bootErr = bootProvider(provider, c)
			}
		})
		return bootErr
	}

	for _, abstract := range provider.Provides() {
		placeholder := &binding{}
		placeholder.factory = func(c *Container) (any, error) {
			if err := load(c); err != nil {
				return nil, err
			}
			if c.lookup(abstract) == placeholder {
				return nil, fmt.Errorf("container: deferred %T did not register [%s]", provider, abstract)
			}
			return c.Make(abstract)
		}
		r.app.register(abstract, placeholder)
	}
}

// Boot calls Boot on every eager provider, stopping at the first error.
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	providers := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range providers {
		if err := bootProvider(provider, r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}

func bootProvider(provider ServiceProvider, app *Container) error {
	if err := provider.Boot(app); err != nil {
		return fmt.Errorf("container: booting %T: %w", provider, err)
	}
	return nil
}
