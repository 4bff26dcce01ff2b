package logger

import "go.uber.org/fx"

// Module exposes the *slog.Logger to the fx graph.
var Module = fx.Provide(New)
