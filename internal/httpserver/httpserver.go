package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 10 * time.Second

// Handler maps the routes once and returns the engine.
func (srv *HTTPServer) Handler() http.Handler {
	srv.mapOnce.Do(srv.mapHandlers)
	return srv.gin
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
// Background services (poller, hub, subscriber) are owned by the caller.
func (srv *HTTPServer) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           otelhttp.NewHandler(srv.Handler(), "panel.http"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	srv.l.Infof(ctx, "internal.httpserver.Run: listening on %s", httpSrv.Addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("internal.httpserver.Run.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	srv.l.Info(shutdownCtx, "internal.httpserver.Run: shutting down")
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("internal.httpserver.Run.Shutdown: %w", err)
	}
	return nil
}
