package nav

import (
	"go.uber.org/fx"
)

// Module provides the navigation dependencies
var Module = fx.Module("nav",
	fx.Provide(
		fx.Annotate(
			NewLogNavigator,
			fx.As(new(Navigator)),
		),
	),
)
