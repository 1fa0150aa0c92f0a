package config

import (
	"fmt"
	"os"
	"strconv"
)

// Auth modes select the principal-resolution strategy. The choice is a
// deployment decision; handlers never know which one runs.
const (
	AuthModeToken   = "token"   // validate bearer JWTs in-process
	AuthModeGateway = "gateway" // trust the API Gateway authorizer (Lambda)
	AuthModeStatic  = "static"  // fixed dev principal, development only
)

// Config holds all application configuration. It is built once at process
// start and injected; business logic never reads the environment directly.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion        string
	NotesTable       string
	DynamoDBEndpoint string // local DynamoDB endpoint, offline only
	IsOffline        bool

	// Authentication
	AuthMode       string
	DevPrincipalID string
	JWTSecret      string
	JWTIssuer      string

	// Eventing and observability
	EventBusName     string
	MetricsNamespace string
	EnableMetrics    bool
	EnableCORS       bool

	// Rate limiting (requests per minute)
	IPRateLimit   int
	UserRateLimit int

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		NotesTable:       getEnv("NOTES_TABLE_NAME", "notes"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		IsOffline:        getEnvBool("IS_OFFLINE", false),

		AuthMode:       getEnv("AUTH_MODE", AuthModeToken),
		DevPrincipalID: getEnv("DEV_PRINCIPAL_ID", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTIssuer:      getEnv("JWT_ISSUER", "notes-api"),

		EventBusName:     getEnv("EVENT_BUS_NAME", ""),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "NotesAPI"),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", false),
		EnableCORS:       getEnvBool("ENABLE_CORS", true),

		IPRateLimit:   getEnvInt("IP_RATE_LIMIT", 100),
		UserRateLimit: getEnvInt("USER_RATE_LIMIT", 200),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is coherent for the environment
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeToken, AuthModeGateway, AuthModeStatic:
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	if c.AuthMode == AuthModeToken && c.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET is required in production with AUTH_MODE=token")
	}

	// A fixed principal in production would silently attribute every note to
	// one owner; refuse outright.
	if c.AuthMode == AuthModeStatic {
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE=static is not allowed in production")
		}
		if c.DevPrincipalID == "" {
			return fmt.Errorf("DEV_PRINCIPAL_ID is required with AUTH_MODE=static")
		}
	}

	if c.IsProduction() && c.NotesTable == "" {
		return fmt.Errorf("NOTES_TABLE_NAME is required in production")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
