package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	hxecho "github.com/pthm/verifiedinput/adapters/echo"
	"github.com/pthm/verifiedinput/hx"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		Long:  `Serves the form at / with HTMX-driven verified inputs and Prometheus metrics at /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := a.newServer()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				a.logger.Info("listening", "addr", addr)
				errc <- srv.echo.Start(addr)
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.echo.Shutdown(sctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// server is the HTTP side of the app.
type server struct {
	echo    *echo.Echo
	input   *hx.Input
	form    *hx.Form
	metrics *prometheus.Registry
}

func (a *app) newServer() *server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			a.logger.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	opts := []hxecho.Option{hxecho.WithLogger(a.logger)}
	if a.cfg.Server.Key != "" {
		opts = append(opts, hxecho.WithKey([]byte(a.cfg.Server.Key)))
	} else {
		a.logger.Warn("no server.key set, props will not survive a restart")
	}
	reg := hxecho.Mount(e, opts...)

	promReg := prometheus.NewRegistry()
	input := hx.NewInput(a.preds)
	input.SetMetrics(hx.NewMetrics(promReg))
	form := hx.NewForm(input)
	reg.Add(input, form)

	s := &server{echo: e, input: input, form: form, metrics: promReg}
	e.GET("/", a.handlePage(s))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))
	return s
}

func (a *app) handlePage(s *server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		props := a.cfg.FormProps()
		if err := s.form.Hydrate(ctx, &props); err != nil {
			return err
		}
		return hxecho.Render(c, page(a.cfg.Form.Title, s.form.Render(ctx, props)))
	}
}
