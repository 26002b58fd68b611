package router

import (
	"go.uber.org/fx"
)

// Module provides the router module dependencies
var Module = fx.Module("router",
	fx.Provide(
		NewMatcher,
		NewGuard,
	),
)
