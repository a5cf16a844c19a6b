package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/leasehold/internal/auth"
	"github.com/mmynk/leasehold/internal/middleware"
	"github.com/mmynk/leasehold/internal/service"
	"github.com/mmynk/leasehold/pkg/api"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) routes() http.Handler {
	jwtManager := auth.NewJWTManager(a.cfg.JWTSecret, a.cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(a.store)

	// Auth runs first so the logging and metrics interceptors see the caller.
	observe := []connect.Interceptor{
		middleware.LoggingInterceptor(a.logger),
		middleware.MetricsInterceptor(a.metrics),
	}
	protected := connect.WithInterceptors(append([]connect.Interceptor{middleware.RequireAuth(jwtManager)}, observe...)...)
	public := connect.WithInterceptors(append([]connect.Interceptor{middleware.OptionalAuth(jwtManager)}, observe...)...)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, a.store, a.logger), public))
	mux.Handle(api.NewPropertyServiceHandler(
		service.NewPropertyService(a.store, a.logger), protected))
	mux.Handle(api.NewInvoiceServiceHandler(
		service.NewInvoiceService(a.ledger, a.store, a.logger), protected))

	if a.metrics != nil {
		mux.Handle("/metrics", a.metrics.Handler())
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return middleware.RequestLogger(a.logger, middleware.CORS(mux))
}

func (a *app) serve(ctx context.Context) error {
	server := &http.Server{
		Addr: a.cfg.Addr(),
		// h2c serves HTTP/2 without TLS for gRPC-compatible Connect clients.
		Handler:           h2c.NewHandler(a.routes(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Connect server starting", "address", server.Addr, "metrics", a.metrics != nil)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
