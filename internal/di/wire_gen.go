// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"IndexPulse/pkg/config"
	"IndexPulse/pkg/server"
)

// Injectors from wire.go:

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}
	metrics := ProvideMetrics()
	indicatorStream := ProvideFeedStream(cfg)
	snapshotStore := ProvideSnapshotStore()
	producer, err := ProvideKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	publisher := ProvideSnapshotPublisher(producer, cfg)
	client, err := ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, err
	}
	signalHistory := ProvideSignalHistory(client, cfg, logger)
	signalEvaluator, err := ProvideEvaluator(cfg)
	if err != nil {
		return nil, err
	}
	snapshotProcessor := ProvideSnapshotProcessor(snapshotStore, publisher, signalHistory, signalEvaluator, metrics, cfg)
	snapshotCollector := ProvideSnapshotCollector(indicatorStream, snapshotProcessor, snapshotStore, metrics, cfg)
	consumer, err := ProvideKafkaConsumer(cfg)
	if err != nil {
		return nil, err
	}
	redisQueue := ProvideAlertQueue(cfg, logger)
	alertSink := ProvideAlertSink(redisQueue)
	kafkaSnapshotsHandler := ProvideKafkaSnapshotsHandler(snapshotStore, signalHistory, signalEvaluator, alertSink, metrics, cfg)
	bytesCache := ProvideResponseCache(cfg)
	evaluateUseCase := ProvideEvaluateUseCase(snapshotStore, signalEvaluator)
	boardUseCase := ProvideBoardUseCase(snapshotStore, signalEvaluator)
	historyUseCase := ProvideHistoryUseCase(signalHistory, cfg, logger)
	router := ProvideRouter(logger, bytesCache, evaluateUseCase, boardUseCase, historyUseCase)
	app := ProvideApp(cfg, logger, metrics, snapshotCollector, consumer, kafkaSnapshotsHandler, client, redisQueue, producer, router)
	return app, nil
}
