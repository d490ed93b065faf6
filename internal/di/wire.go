//go:build wireinject
// +build wireinject

package di

import (
	"IndexPulse/pkg/config"
	"IndexPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Engine
		ProvideEvaluator,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideAlertQueue,

		// Repositories
		ProvideSnapshotStore,
		ProvideSignalHistory,
		ProvideSnapshotPublisher,
		ProvideFeedStream,
		ProvideAlertSink,

		// Use cases
		ProvideSnapshotProcessor,
		ProvideSnapshotCollector,
		ProvideKafkaSnapshotsHandler,
		ProvideEvaluateUseCase,
		ProvideBoardUseCase,
		ProvideHistoryUseCase,

		// HTTP
		ProvideResponseCache,
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
