package config

import "go.uber.org/fx"

// Module exposes the marketplace configuration loader for fx graphs.
var Module = fx.Provide(Load)

// ReportsModule exposes the reporting configuration loader for fx graphs.
var ReportsModule = fx.Provide(LoadReports)
