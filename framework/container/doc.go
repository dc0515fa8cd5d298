// Package container provides the service container and service providers
// that wire the application together.
//
// # Overview
//
// The container owns the construction and lifetime of shared services:
// configuration, the logger, metrics, the role registry, the policy
// catalogue and the HR service. Go has no constructor reflection, so every
// binding is an explicit factory.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot(); safe to resolve everything after this
//  4. Serve requests / run commands
//
// # Bindings
//
//	// Transient: factory runs on every Make()
//	c.Bind("bonus.fixed", func(c *container.Container) (any, error) {
//	    return bonus.NewFixed(5000)
//	})
//
//	// Singleton: built on first Make(), then reused. A failed build is
//	// not recorded; the next Make() tries again.
//	c.Singleton("bonus.catalog", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return bonus.LoadCatalog(cfg.HR.PolicyFile)
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw, err := c.Make("roles")
//	roles, err := container.Resolve[*role.Registry](c, "roles")
//	roles := container.MustResolve[*role.Registry](c, "roles") // bootstrap only
//
// # Deferred Providers
//
//	type CatalogProvider struct{ container.BaseProvider }
//
//	func (p *CatalogProvider) IsDeferred() bool   { return true }
//	func (p *CatalogProvider) Provides() []string { return []string{"bonus.catalog"} }
//	func (p *CatalogProvider) Register(app *container.Container) {
//	    app.Singleton("bonus.catalog", loadCatalog) // runs on first Make("bonus.catalog")
//	}
package container
