package di

import (
	"go.uber.org/fx"

	"github.com/peerbay/marketplace/internal/app"
	"github.com/peerbay/marketplace/internal/config"
	"github.com/peerbay/marketplace/internal/logger"
	"github.com/peerbay/marketplace/internal/pkg/auth"
	"github.com/peerbay/marketplace/internal/reporting"
	"github.com/peerbay/marketplace/internal/server/http/router"
	"github.com/peerbay/marketplace/internal/storage/postgres"
	"github.com/peerbay/marketplace/internal/usecase"
)

// Module assembles the marketplace service dependency graph.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// ReportsModule assembles the reports service dependency graph.
func ReportsModule(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.ReportsModule,
		logger.Module,
		reporting.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
