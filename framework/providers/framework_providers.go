package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/km-arc/go-hr/framework/config"
	"github.com/km-arc/go-hr/framework/container"
	"github.com/km-arc/go-hr/framework/logging"
	"github.com/km-arc/go-hr/framework/metrics"
	"github.com/km-arc/go-hr/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// the environment.
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(*container.Container) (any, error) {
		return config.Load(envFiles...), nil
	})
	app.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger from "config".
//
// Bound abstracts:
//   - "logger" → *zap.Logger
//
// Set Logger to bind a pre-built logger instead (tests, CLI quiet mode).
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	if p.Logger != nil {
		app.Instance("logger", p.Logger)
		return
	}
	app.Singleton("logger", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return logging.New(cfg)
	})
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider owns the Prometheus registry and the HR collectors.
//
// Bound abstracts:
//   - "metrics.registry" → *prometheus.Registry
//   - "metrics"          → *metrics.Metrics
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) {
	app.Singleton("metrics.registry", func(*container.Container) (any, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg, nil
	})
	app.Singleton("metrics", func(c *container.Container) (any, error) {
		reg, err := container.Resolve[*prometheus.Registry](c, "metrics.registry")
		if err != nil {
			return nil, err
		}
		return metrics.New(reg), nil
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router and exposes /metrics.
//
// Bound abstracts:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) (any, error) {
		logger, err := container.Resolve[*zap.Logger](c, "logger")
		if err != nil {
			return nil, err
		}
		return routing.New(logger), nil
	})
}

// Boot mounts the Prometheus exporter when metrics are bound.
func (p *RoutingServiceProvider) Boot(app *container.Container) error {
	if !app.Bound("metrics.registry") {
		return nil
	}
	router, err := container.Resolve[*routing.Router](app, "router")
	if err != nil {
		return err
	}
	reg, err := container.Resolve[*prometheus.Registry](app, "metrics.registry")
	if err != nil {
		return err
	}
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return nil
}
