//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/wellbeing/internal/bootstrap"
	"github.com/yanqian/wellbeing/internal/domain/intervention"
	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	"github.com/yanqian/wellbeing/internal/infra/config"
	httpiface "github.com/yanqian/wellbeing/internal/interface/http"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideWellbeingConfig,
		providePostgresPool,
		provideWellbeingStore,
		provideSignalRepository,
		provideScoreRepository,
		provideInterventionRepository,
		provideValkeyClient,
		provideReportCache,
		provideHandlerQueue,
		provideJobQueue,
		intervention.NewService,
		provideInterventionGenerator,
		wellbeing.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
