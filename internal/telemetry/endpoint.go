package telemetry

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solerack/solerack/internal/conf"
	"github.com/solerack/solerack/internal/errors"
	"github.com/solerack/solerack/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Endpoint serves /metrics and /healthz for Prometheus scraping.
type Endpoint struct {
	echo          *echo.Echo
	listenAddress string
	metrics       *Metrics
	logger        *slog.Logger
}

// NewEndpoint creates a telemetry endpoint from the settings. It returns an
// error if telemetry is not enabled.
func NewEndpoint(settings *conf.Settings, metrics *Metrics) (*Endpoint, error) {
	if !settings.Telemetry.Enabled {
		return nil, errors.Newf("telemetry not enabled in settings").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return &Endpoint{
		listenAddress: settings.Telemetry.Listen,
		metrics:       metrics,
		logger:        logging.ForService("telemetry"),
	}, nil
}

// Start runs the HTTP server in its own goroutine and shuts it down
// gracefully when quitChan closes.
func (e *Endpoint) Start(quitChan <-chan struct{}) {
	srv := echo.New()
	srv.HideBanner = true
	srv.HidePort = true

	srv.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(e.metrics.Registry(), promhttp.HandlerOpts{})))
	srv.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.echo = srv

	go func() {
		e.logger.Info("Telemetry endpoint starting", "address", e.listenAddress)
		if err := srv.Start(e.listenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("Telemetry HTTP server error", "error", err)
		}
	}()

	go e.gracefulShutdown(quitChan)
}

func (e *Endpoint) gracefulShutdown(quitChan <-chan struct{}) {
	<-quitChan
	e.logger.Info("Stopping telemetry server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.echo.Shutdown(ctx); err != nil {
		e.logger.Error("Telemetry server shutdown error", "error", err)
	}
}
