package fx

import (
	"siege-tracker/internal/api"
	"siege-tracker/internal/config"
	"siege-tracker/internal/database"
	"siege-tracker/internal/logger"
	"siege-tracker/internal/repository"
	"siege-tracker/internal/server"
	"siege-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewLookupRepository),
	// api client
	fx.Provide(fx.Annotate(
		api.NewR6DataClient,
		fx.As(new(service.StatsSource), new(server.RateLimitReporter)),
	)),
	// svc
	fx.Provide(fx.Annotate(
		service.NewLookupService,
		fx.As(new(service.LookupRecorder), new(server.Suggester)),
	)),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(server.NewTrackerServer),
	fx.Invoke(config.LogLoaded),
)
