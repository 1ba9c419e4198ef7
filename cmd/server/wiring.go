package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	jwttoken "inu/internal/jwt_token"
	"inu/internal/platform/config"
	"inu/internal/platform/kafka"
	platformMetrics "inu/internal/platform/metrics"
	"inu/internal/platform/postgres"
	"inu/internal/platform/redis"
	registrarHandler "inu/internal/registrar/handler"
	registrarMetrics "inu/internal/registrar/metrics"
	registrarService "inu/internal/registrar/service"
	registrarStore "inu/internal/registrar/store/registrar"
	subdomainStore "inu/internal/registrar/store/subdomain"
	"inu/internal/registry/cache"
	registryHandler "inu/internal/registry/handler"
	registryMetrics "inu/internal/registry/metrics"
	registryService "inu/internal/registry/service"
	domainStore "inu/internal/registry/store/domain"
	primaryStore "inu/internal/registry/store/primary"
	httptransport "inu/internal/transport/http"
	"inu/pkg/platform/audit"
	"inu/pkg/platform/audit/publisher"
	"inu/pkg/platform/audit/relay"
	auditmemory "inu/pkg/platform/audit/store/memory"
	auditpostgres "inu/pkg/platform/audit/store/postgres"
	"inu/pkg/platform/circuit"
	"inu/pkg/platform/tx"
)

// storage is one consistent set of ledger stores sharing a transaction runner.
// memoryAuditRetention bounds the audit trail kept by in-memory servers,
// which have no outbox to drain it.
const memoryAuditRetention = 10_000

type storage struct {
	runner     tx.Runner
	domains    registryService.DomainStore
	primaries  registryService.PrimaryStore
	registrars registrarService.RegistrarStore
	subdomains registrarService.SubdomainStore
	audit      audit.Store
	outbox     relay.Outbox
	db         *sql.DB
}

func newMemoryStorage() *storage {
	return &storage{
		runner:     tx.NewInMemory(),
		domains:    domainStore.NewInMemory(),
		primaries:  primaryStore.NewInMemory(),
		registrars: registrarStore.NewInMemory(),
		subdomains: subdomainStore.NewInMemory(),
		audit:      auditmemory.NewInMemoryStore(auditmemory.WithRetention(memoryAuditRetention)),
	}
}

func newPostgresStorage(ctx context.Context, url string) (*storage, error) {
	if err := postgres.Migrate(url); err != nil {
		return nil, err
	}
	db, err := postgres.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	outbox := auditpostgres.New(db)
	return &storage{
		runner:     tx.NewSQL(db),
		domains:    domainStore.NewPostgres(db),
		primaries:  primaryStore.NewPostgres(db),
		registrars: registrarStore.NewPostgres(db),
		subdomains: subdomainStore.NewPostgres(db),
		audit:      outbox,
		outbox:     outbox,
		db:         db,
	}, nil
}

// app holds the wired process: HTTP handler, background relay and the
// resources to release on shutdown.
type app struct {
	handler http.Handler
	tokens  *jwttoken.JWTService
	relay   *relay.Relay
	closers []func() error
}

func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func buildApp(ctx context.Context, cfg config.Server, logger *slog.Logger, reg *prometheus.Registry) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &app{}
	health := map[string]httptransport.HealthCheck{}

	store := newMemoryStorage()
	if cfg.Database.URL != "" {
		pg, err := newPostgresStorage(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		store = pg
		a.closers = append(a.closers, pg.db.Close)
		health["postgres"] = pg.db.PingContext
		logger.Info("ledger storage: postgres")
	} else {
		logger.Warn("ledger storage: in-memory, state is lost on restart")
	}

	auditPublisher := publisher.New(store.audit, publisher.WithLogger(logger))

	registrarOpts := []registrarService.Option{
		registrarService.WithLogger(logger),
		registrarService.WithMetrics(registrarMetrics.New(reg)),
		registrarService.WithAuditPublisher(auditPublisher),
	}
	provisioner := registrarService.NewProvisioner(store.registrars, store.runner, registrarOpts...)

	registryOpts := []registryService.Option{
		registryService.WithLogger(logger),
		registryService.WithMetrics(registryMetrics.New(reg)),
		registryService.WithAuditPublisher(auditPublisher),
		registryService.WithProvisioner(provisioner),
	}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if redisClient != nil {
		a.closers = append(a.closers, redisClient.Close)
		health["redis"] = redisClient.Health
		ownerCache := cache.NewGuarded(
			cache.NewOwnerCache(redisClient, cfg.OwnerCacheTTL),
			circuit.New("owner-cache"),
			logger,
		)
		registryOpts = append(registryOpts, registryService.WithOwnerCache(ownerCache))
		logger.Info("owner cache: redis", "ttl", cfg.OwnerCacheTTL)
	} else if cfg.LocalOwnerCache {
		registryOpts = append(registryOpts, registryService.WithOwnerCache(cache.NewLocal(cfg.OwnerCacheTTL)))
		logger.Info("owner cache: local", "ttl", cfg.OwnerCacheTTL)
	}
	registry := registryService.New(store.domains, store.primaries, store.runner, registryOpts...)
	directory := registrarService.NewDirectory(store.registrars, store.subdomains, registry, store.runner, registrarOpts...)

	if err := a.wireRelay(ctx, cfg.Kafka, store, logger, health); err != nil {
		_ = a.Close()
		return nil, err
	}

	tokens := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	a.tokens = tokens
	a.handler = httptransport.NewRouter(httptransport.Deps{
		Logger:    logger,
		Metrics:   platformMetrics.New(reg),
		Gatherer:  reg,
		Validator: jwttoken.NewJWTServiceAdapter(tokens),
		Registry:  registryHandler.New(registry, logger),
		Registrar: registrarHandler.New(registrarHandler.NewDirectory(directory), logger),
		Health:    health,
	})
	return a, nil
}

func (a *app) wireRelay(ctx context.Context, cfg config.KafkaConfig, store *storage, logger *slog.Logger, health map[string]httptransport.HealthCheck) error {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	if store.outbox == nil {
		logger.Warn("audit relay disabled: kafka brokers configured without postgres outbox")
		return nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() error { producer.Close(); return nil })
	if err := producer.EnsureTopic(ctx, cfg.Partitions, cfg.Replication); err != nil {
		return fmt.Errorf("bootstrap audit topic: %w", err)
	}
	health["kafka"] = producer.Health
	a.relay = relay.New(store.outbox, producer,
		relay.WithLogger(logger),
		relay.WithInterval(cfg.RelayInterval),
		relay.WithBatchSize(cfg.BatchSize),
	)
	logger.Info("audit relay: kafka", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return nil
}
