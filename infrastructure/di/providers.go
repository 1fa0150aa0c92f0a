package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/application/ports"
	"github.com/CamilaNiebles/sls-assesment/application/services"
	"github.com/CamilaNiebles/sls-assesment/infrastructure/config"
	"github.com/CamilaNiebles/sls-assesment/infrastructure/messaging/eventbridge"
	"github.com/CamilaNiebles/sls-assesment/infrastructure/persistence/dynamodb"
	"github.com/CamilaNiebles/sls-assesment/pkg/auth"
	"github.com/CamilaNiebles/sls-assesment/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	NoteRepo      ports.NoteRepository
	Probe         ports.DatabaseProbe
	Publisher     ports.EventPublisher
	Metrics       *observability.Metrics
	Resolver      auth.PrincipalResolver
	NoteService   *services.NoteService
	HealthService *services.HealthService
	RateLimiters  *RateLimiters
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client, pointed at the local
// emulator when running offline.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	if cfg.IsOffline && cfg.DynamoDBEndpoint != "" {
		return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		})
	}
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideNoteRepository creates the DynamoDB-backed note store
func ProvideNoteRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.NoteRepository {
	return dynamodb.NewNoteRepository(client, cfg.NotesTable, logger)
}

// ProvideDatabaseProbe creates the health probe for the notes table
func ProvideDatabaseProbe(client *awsdynamodb.Client, cfg *config.Config) ports.DatabaseProbe {
	return dynamodb.NewTableProbe(client, cfg.NotesTable)
}

// ProvideEventPublisher creates the lifecycle event publisher. Without a
// configured bus name publishing is disabled and the service runs without it.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics recorder, nil when disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvidePrincipalResolver selects the identity strategy for the deployment.
// Config validation has already rejected invalid combinations, so the
// unreachable default is a programming error.
func ProvidePrincipalResolver(cfg *config.Config) (auth.PrincipalResolver, error) {
	switch cfg.AuthMode {
	case config.AuthModeToken:
		validator, err := auth.NewJWTValidator(auth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build token resolver: %w", err)
		}
		return auth.NewTokenResolver(validator), nil
	case config.AuthModeGateway:
		return auth.NewGatewayResolver(), nil
	case config.AuthModeStatic:
		return auth.NewStaticResolver(cfg.DevPrincipalID), nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %s", cfg.AuthMode)
	}
}

// ProvideNoteService creates the note application service
func ProvideNoteService(
	repo ports.NoteRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.NoteService {
	return services.NewNoteService(repo, publisher, metrics, logger)
}

// ProvideHealthService creates the health check service
func ProvideHealthService(probe ports.DatabaseProbe, logger *zap.Logger) *services.HealthService {
	return services.NewHealthService(probe, logger)
}

// RateLimiters groups both request limiters so they travel together through
// the injector despite sharing a type.
type RateLimiters struct {
	IP   *auth.TokenBucketLimiter
	User *auth.TokenBucketLimiter
}

// ProvideRateLimiters creates the per-address and per-principal limiters
func ProvideRateLimiters(cfg *config.Config) *RateLimiters {
	return &RateLimiters{
		IP:   auth.NewIPRateLimiter(cfg.IPRateLimit),
		User: auth.NewUserRateLimiter(cfg.UserRateLimit),
	}
}
