package handler

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"laudoapi/docs"
	"laudoapi/internal/http/middleware"
	"laudoapi/internal/service"
)

// Pinger is implemented by dependencies the health check verifies.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps groups what the HTTP layer needs. Store and Gatherer are optional.
type Deps struct {
	Reports  service.ReportService
	Store    Pinger
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	app.Get("/health", HealthCheck(d.Store))
	app.Get("/healthz", LivenessProbe())

	if d.Gatherer != nil {
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Get("/swagger/*", SwaggerUI())

	app.Post("/gerar-laudo-tireoide", GenerateReport(d.Reports, log))
	app.Get(service.DownloadPrefix+":arquivo", DownloadReport(d.Reports, log))
}

// SwaggerUI serves the API docs with the host and scheme of the incoming request.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
