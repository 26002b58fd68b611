package api

import (
	"go.uber.org/fx"
)

// Module provides the api client dependencies
var Module = fx.Module("api",
	fx.Provide(
		NewAuthClient,
		NewJobsClient,
		NewPagesClient,
		NewEducationsClient,
		NewExperiencesClient,
		NewApplicationsClient,
	),
)
