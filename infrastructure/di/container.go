//go:build !wireinject
// +build !wireinject

package di

import (
	"context"

	"github.com/CamilaNiebles/sls-assesment/infrastructure/config"
)

// InitializeContainer wires the full dependency graph by hand, mirroring the
// wire provider set so both stay in step.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dynamoClient := ProvideDynamoDBClient(awsCfg, cfg)
	eventBridgeClient := ProvideEventBridgeClient(awsCfg)
	cloudWatchClient := ProvideCloudWatchClient(awsCfg)

	repo := ProvideNoteRepository(dynamoClient, cfg, logger)
	probe := ProvideDatabaseProbe(dynamoClient, cfg)
	publisher := ProvideEventPublisher(eventBridgeClient, cfg, logger)
	metrics := ProvideMetrics(cloudWatchClient, cfg, logger)

	resolver, err := ProvidePrincipalResolver(cfg)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:        cfg,
		Logger:        logger,
		NoteRepo:      repo,
		Probe:         probe,
		Publisher:     publisher,
		Metrics:       metrics,
		Resolver:      resolver,
		NoteService:   ProvideNoteService(repo, publisher, metrics, logger),
		HealthService: ProvideHealthService(probe, logger),
		RateLimiters:  ProvideRateLimiters(cfg),
	}, nil
}

// Shutdown flushes buffered log output. Safe to call on a partially built
// container.
func (c *Container) Shutdown() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
