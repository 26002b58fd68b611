package pipeline

import (
	"go.uber.org/fx"
)

// Module provides the pipeline module dependencies
var Module = fx.Module("pipeline",
	fx.Provide(
		NewRefresher,
		New,
	),
)
