package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-hr/app/controllers"
	"github.com/km-arc/go-hr/app/services"
	"github.com/km-arc/go-hr/framework/config"
	"github.com/km-arc/go-hr/framework/container"
	"github.com/km-arc/go-hr/framework/metrics"
	"github.com/km-arc/go-hr/framework/routing"
	"github.com/km-arc/go-hr/hr/bonus"
	"github.com/km-arc/go-hr/hr/role"
	"github.com/km-arc/go-hr/hr/system"
)

// ── PolicyCatalogProvider ─────────────────────────────────────────────────────

// PolicyCatalogProvider loads the bonus policy catalogue on first use.
//
// Bound abstracts:
//   - "bonus.catalog" → *bonus.Catalog
//
// HR_POLICY_FILE names a YAML catalogue; without it the builtin
// fixed/percentage pair is used.
type PolicyCatalogProvider struct {
	container.BaseProvider
}

func (p *PolicyCatalogProvider) Register(app *container.Container) {
	app.Singleton("bonus.catalog", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		if cfg.HR.PolicyFile == "" {
			return bonus.DefaultCatalog(), nil
		}
		return bonus.LoadCatalog(cfg.HR.PolicyFile)
	})
}

func (p *PolicyCatalogProvider) Provides() []string { return []string{"bonus.catalog"} }
func (p *PolicyCatalogProvider) IsDeferred() bool   { return true }

// ── HRServiceProvider ─────────────────────────────────────────────────────────

// HRServiceProvider binds the HR core and registers the API routes.
//
// Bound abstracts:
//   - "roles"      → *role.Registry (the process-wide default)
//   - "system"     → *system.HRSystem
//   - "hr.service" → *services.HRService
type HRServiceProvider struct {
	container.BaseProvider
}

func (p *HRServiceProvider) Register(app *container.Container) {
	app.Singleton("roles", func(*container.Container) (any, error) {
		return role.Default(), nil
	})
	app.Singleton(container.TypeKey((*system.HRSystem)(nil)), func(*container.Container) (any, error) {
		return system.Instance()
	})
	app.Alias(container.TypeKey((*system.HRSystem)(nil)), "system")

	app.Singleton("hr.service", func(c *container.Container) (any, error) {
		roles, err := container.Resolve[*role.Registry](c, "roles")
		if err != nil {
			return nil, err
		}
		catalog, err := container.Resolve[*bonus.Catalog](c, "bonus.catalog")
		if err != nil {
			return nil, err
		}
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*zap.Logger](c, "logger")
		if err != nil {
			return nil, err
		}
		m, err := container.Resolve[*metrics.Metrics](c, "metrics")
		if err != nil {
			return nil, err
		}
		return services.NewHRService(roles, catalog, logger, m, cfg.HR.RoundingPlaces), nil
	})
}

// Boot registers the HTTP routes.
func (p *HRServiceProvider) Boot(app *container.Container) error {
	svc, err := container.Resolve[*services.HRService](app, "hr.service")
	if err != nil {
		return err
	}
	router, err := container.Resolve[*routing.Router](app, "router")
	if err != nil {
		return err
	}
	logger, err := container.Resolve[*zap.Logger](app, "logger")
	if err != nil {
		return err
	}

	Routes(router, controllers.NewHRController(svc, logger))
	return nil
}

// Routes registers the HR API under /api/v1.
func Routes(router *routing.Router, c *controllers.HRController) {
	router.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/roles", c.Roles)
		api.Get("/roles/{type}", c.ShowRole)
		api.Get("/system", c.System)
		api.Get("/policies", c.Policies)
		api.Post("/salaries", c.StoreSalary)
	})
}
