package addressapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 15 * time.Second

// Serve runs the address API on ln until ctx is cancelled, then drains
// in-flight requests
func Serve(ctx context.Context, ln net.Listener, app *App) error {
	srv := &http.Server{
		Handler:           NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() {
		app.log.Info().Str("addr", ln.Addr().String()).Msg("server started")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	app.log.Info().Msg("server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve
func ListenAndServe(ctx context.Context, addr string, app *App) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, app)
}
