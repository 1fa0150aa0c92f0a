package main

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/infrastructure/config"
	"github.com/CamilaNiebles/sls-assesment/pkg/auth"
)

var errUnauthorized = errors.New("Unauthorized")

// Authorizer decides allow/deny for API Gateway token authorizer events.
type Authorizer struct {
	validator *auth.JWTValidator
	staticID  string
	logger    *zap.Logger
}

func NewAuthorizer(cfg *config.Config, logger *zap.Logger) (*Authorizer, error) {
	a := &Authorizer{logger: logger}

	if cfg.AuthMode == config.AuthModeStatic {
		a.staticID = cfg.DevPrincipalID
		return a, nil
	}

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
	if err != nil {
		return nil, err
	}
	a.validator = validator
	return a, nil
}

// Handle validates the bearer token and answers with an IAM policy. API
// Gateway treats the returned error string "Unauthorized" as a 401; any
// other failure becomes a 500.
func (a *Authorizer) Handle(ctx context.Context, event events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	if a.staticID != "" {
		return allowPolicy(a.staticID, event.MethodArn), nil
	}

	token, ok := bearerToken(event.AuthorizationToken)
	if !ok {
		a.logger.Warn("Malformed authorization token")
		return events.APIGatewayCustomAuthorizerResponse{}, errUnauthorized
	}

	claims, err := a.validator.ValidateToken(token)
	if err != nil {
		a.logger.Warn("Token validation failed", zap.Error(err))
		return events.APIGatewayCustomAuthorizerResponse{}, errUnauthorized
	}

	if claims.Subject == "" {
		a.logger.Warn("Token carries no subject")
		return events.APIGatewayCustomAuthorizerResponse{}, errUnauthorized
	}

	return allowPolicy(claims.Subject, event.MethodArn), nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func allowPolicy(principalID, methodArn string) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principalID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{"execute-api:Invoke"},
					Effect:   "Allow",
					Resource: []string{methodArn},
				},
			},
		},
		Context: map[string]interface{}{
			"principalId": principalID,
		},
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	authorizer, err := NewAuthorizer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to build authorizer: %v", err)
	}

	lambda.Start(authorizer.Handle)
}
