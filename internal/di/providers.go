package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"IndexPulse/internal/domain/repository"
	domsvc "IndexPulse/internal/domain/service"
	"IndexPulse/internal/engine"
	"IndexPulse/internal/handler/api"
	mid "IndexPulse/internal/middleware"
	internalrepo "IndexPulse/internal/repository"
	icache "IndexPulse/internal/service/cache"
	"IndexPulse/internal/service/feed"
	"IndexPulse/internal/usecase"
	pkgcache "IndexPulse/pkg/cache"
	pkgch "IndexPulse/pkg/clickhouse"
	"IndexPulse/pkg/config"
	pkgkafka "IndexPulse/pkg/kafka"
	applogger "IndexPulse/pkg/logger"
	"IndexPulse/pkg/metrics"
	"IndexPulse/pkg/queue"
	"IndexPulse/pkg/server"

	goredis "github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideEvaluator builds the scoring engine with optional parameter overrides.
func ProvideEvaluator(cfg *config.Config) (domsvc.SignalEvaluator, error) {
	p, err := engine.LoadParams(cfg.Engine.ParamsFile)
	if err != nil {
		return nil, fmt.Errorf("engine params: %w", err)
	}
	return engine.New(p), nil
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		"CREATE TABLE IF NOT EXISTS " + db + ".signals (" +
			"ts DateTime, symbol String, market_status String, action String, " +
			"confidence UInt8, total_score Float64, trend_5m String, trend_15m String, " +
			"predict_dir String, predict_conf UInt8, factors String" +
			") ENGINE=MergeTree ORDER BY (symbol, ts)",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSnapshotStore creates the in-memory snapshot store.
func ProvideSnapshotStore() repository.SnapshotStore {
	return internalrepo.NewMemorySnapshotStore()
}

// ProvideSignalHistory creates the ClickHouse signal history repository.
func ProvideSignalHistory(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.SignalHistory {
	h := internalrepo.NewClickHouseHistory(chClient.DB(), cfg.ClickHouse.Database+".signals")
	h.SetLogger(l)
	return h
}

// ProvideSnapshotPublisher creates the Kafka snapshot publisher.
func ProvideSnapshotPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideFeedStream creates the indicator feed WebSocket stream.
func ProvideFeedStream(cfg *config.Config) repository.IndicatorStream {
	return feed.New(
		cfg.Feed.APIKey,
		cfg.Feed.WebSocketURL,
		cfg.Feed.Symbols,
		cfg.Feed.ReconnectDelay,
		cfg.Feed.PingInterval,
	)
}

// ProvideAlertQueue creates the Redis-backed alert queue, or nil when alerts
// are disabled.
func ProvideAlertQueue(cfg *config.Config, l *applogger.Logger) *queue.RedisQueue {
	if !cfg.Alerts.Enabled {
		return nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	q := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    cfg.Alerts.Workers,
		QueueSize:  1000,
		RetryLimit: cfg.Alerts.RetryLimit,
		RetryDelay: cfg.Alerts.RetryDelay,
	}, client, queue.ModeProducerConsumer, queue.WithKeyPrefix(cfg.Alerts.Queue))
	q.RegisterJob(usecase.NewAlertDispatchJob(l, cfg.Alerts.WebhookURL))
	return q
}

// ProvideAlertSink adapts the queue into the domain AlertSink.
func ProvideAlertSink(q *queue.RedisQueue) repository.AlertSink {
	if q == nil {
		return nil
	}
	return usecase.NewQueueAlertSink(q)
}

// ProvideKafkaSnapshotsHandler registers the handler for the snapshots topic.
func ProvideKafkaSnapshotsHandler(
	store repository.SnapshotStore,
	history repository.SignalHistory,
	evaluator domsvc.SignalEvaluator,
	alerts repository.AlertSink,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.KafkaSnapshotsHandler {
	return usecase.NewKafkaSnapshotsHandler(cfg.Kafka.Topic, store, history, evaluator, alerts, m)
}

// ProvideSnapshotProcessor creates the snapshot processor use case.
func ProvideSnapshotProcessor(
	store repository.SnapshotStore,
	pub repository.Publisher,
	history repository.SignalHistory,
	evaluator domsvc.SignalEvaluator,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.SnapshotProcessor {
	return usecase.NewSnapshotProcessor(
		store,
		pub,
		history,
		evaluator,
		m,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideSnapshotCollector creates the snapshot collector use case.
func ProvideSnapshotCollector(
	stream repository.IndicatorStream,
	processor *usecase.SnapshotProcessor,
	store repository.SnapshotStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.SnapshotCollector {
	// Build middleware pipeline between WebSocket and the backend
	pipe := mid.NewRealtimePipeline(processor, m,
		mid.WithMaxRPS(cfg.Feed.MaxRPS),
		mid.WithBufferSize(cfg.Feed.BufferSize),
	)
	return usecase.NewSnapshotCollector(stream, processor, store, m, pipe)
}

// ProvideEvaluateUseCase creates the single-symbol evaluation use case.
func ProvideEvaluateUseCase(store repository.SnapshotStore, evaluator domsvc.SignalEvaluator) *usecase.EvaluateUseCase {
	return usecase.NewEvaluateUseCase(store, evaluator)
}

// ProvideBoardUseCase creates the all-symbols board use case.
func ProvideBoardUseCase(store repository.SnapshotStore, evaluator domsvc.SignalEvaluator) *usecase.BoardUseCase {
	return usecase.NewBoardUseCase(store, evaluator)
}

// ProvideHistoryUseCase creates the stored-signal query use case. With Redis
// enabled the use case gets a layered (memory + Redis) query cache.
func ProvideHistoryUseCase(history repository.SignalHistory, cfg *config.Config, l *applogger.Logger) *usecase.HistoryUseCase {
	uc := usecase.NewHistoryUseCase(history)
	if cfg.Cache.Redis.Enabled {
		host, port := splitAddr(cfg.Cache.Redis.Addr)
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(host),
			pkgcache.WithRedisPort(port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			l.Warn("history cache disabled", applogger.Error(err))
			return uc
		}
		uc.SetCache(pkgcache.NewLayeredCache(rc))
	}
	return uc
}

func splitAddr(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 6379
	}
	return host, port
}

// ProvideResponseCache picks Redis or in-process cache for rendered responses.
func ProvideResponseCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewMemoryCache()
}

// ProvideRouter creates the HTTP router combining both handler flavors.
func ProvideRouter(
	l *applogger.Logger,
	respCache icache.BytesCache,
	eval *usecase.EvaluateUseCase,
	board *usecase.BoardUseCase,
	history *usecase.HistoryUseCase,
) *api.Router {
	echoHandler := api.NewSignalsEchoHandler(l, eval, board, history)
	legacy := api.NewSignalsHandler(eval, board, history)
	legacy.SetCache(respCache)
	legacy.SetLogger(l)
	return api.NewRouter(echoHandler, legacy)
}

// kafkaLogPublisher adapts the Kafka producer to the log collector's sink.
type kafkaLogPublisher struct {
	p *pkgkafka.Producer
}

func (k kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return k.p.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	m repository.Metrics,
	collector *usecase.SnapshotCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSnapshotsHandler,
	chClient *pkgch.Client,
	alertQueue *queue.RedisQueue,
	producer *pkgkafka.Producer,
	router *api.Router,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NewHookChain(usecase.NewConsumerTelemetryHook(l, m)))
	}
	if cc := cfg.Logger.Collector; cc.Enabled && producer != nil {
		interval := cc.Interval
		if interval <= 0 {
			interval = 30 * time.Second
		}
		threshold := cc.CountThreshold
		if threshold <= 0 {
			threshold = 100
		}
		topic := cc.Topic
		if topic == "" {
			topic = "indexpulse.logs"
		}
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   interval,
			CountThreshold: threshold,
			Topic:          topic,
			Publisher:      kafkaLogPublisher{producer},
		})
	}
	app := server.New(cfg, collector, consumer, kh, chClient, alertQueue)
	app.SetHTTPHandler(router)
	// attach processor to app for closing resources via collector
	if collector != nil {
		app.SnapProc = collector.Processor()
	}
	return app
}
