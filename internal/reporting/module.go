package reporting

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/peerbay/marketplace/internal/config"
)

// Module wires the reports service components and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newClient,
		newService,
		newRefresher,
		func(r *Refresher) SnapshotSource { return r },
		NewHandler,
		SetupRouter,
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Config *config.ReportsConfig
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.MarketplaceAddress, p.Logger)
}

type serviceParams struct {
	fx.In

	Client Client
	Config *config.ReportsConfig
	Logger *slog.Logger
}

func newService(p serviceParams) *Service {
	return NewService(p.Client, p.Config.WorkerPoolSize, p.Config.TopRankingSize, p.Logger)
}

type refresherParams struct {
	fx.In

	Service *Service
	Config  *config.ReportsConfig
	Logger  *slog.Logger
}

func newRefresher(p refresherParams) *Refresher {
	return NewRefresher(p.Service, p.Config.RefreshInterval, p.Logger)
}

type serverParams struct {
	fx.In

	Config *config.ReportsConfig
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Refresher  *Refresher
	Config     *config.ReportsConfig
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting reports", slog.String("addr", p.Server.Addr))
			p.Refresher.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Refresher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("reports stopped")
			return nil
		},
	})
}
