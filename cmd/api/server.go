package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"infracciones.transito.co/internal/app"
	"infracciones.transito.co/internal/appconf"
	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/restapi"
	"infracciones.transito.co/internal/webui"
)

const shutdownTimeout = 10 * time.Second

func run(ctx context.Context, cfg appconf.Config, out io.Writer) error {
	logger := logging.NewStructuredLogger(out, cfg.LogLevel)
	slog.SetDefault(logger)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(application, logger, "application")

	api := restapi.NewRestAPI(application)
	defer logging.SafeCloseWithLogging(api, logger, "rest_api")

	handler, err := routes(application, api)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		slog.String("addr", srv.Addr),
		slog.String("env", cfg.Env.String()),
		slog.Int("records", application.Records.Len()))

	return serve(ctx, srv, logger)
}

// routes wires the JSON API and the web pages into one handler.
func routes(application *app.Application, api *restapi.RestAPI) (http.Handler, error) {
	router := httprouter.New()

	api.SetRoutes(router)

	webUI, err := webui.NewWebUI(application)
	if err != nil {
		return nil, err
	}
	webUI.SetWebUIRoutes(router)

	return api.Handler(router, application.Logger), nil
}

// serve runs srv until it fails or ctx is done, then drains open requests.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
