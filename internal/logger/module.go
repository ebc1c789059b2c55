package logger

import "go.uber.org/fx"

// Module provides the shared slog.Logger to the fx graph.
var Module = fx.Provide(New)
