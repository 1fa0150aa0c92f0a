package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/infrastructure/config"
	"github.com/CamilaNiebles/sls-assesment/infrastructure/di"
	"github.com/CamilaNiebles/sls-assesment/interfaces/http/rest"
	"github.com/CamilaNiebles/sls-assesment/pkg/auth"
)

var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container
)

// init runs during cold start: build the container and router once, reuse
// them across invocations.
func init() {
	start := time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	handler := rest.NewRouter(container).Setup()
	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(start)),
	)
}

// Handler proxies API Gateway events into the in-process router. The gateway
// authorizer has already validated the caller, so its principal id is lifted
// from the request context into the header the gateway resolver trusts. A
// header spoofed by the client is overwritten here, never forwarded.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	auth.InjectGatewayPrincipal(req.Headers, principalFromAuthorizer(req))

	resp, err := chiLambda.ProxyWithContextV2(ctx, req)
	if err != nil {
		container.Logger.Error("Proxy failed",
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.Error(err),
		)
	}
	return resp, err
}

// principalFromAuthorizer extracts the principal id placed in the request
// context by the token authorizer.
func principalFromAuthorizer(req events.APIGatewayV2HTTPRequest) string {
	authorizer := req.RequestContext.Authorizer
	if authorizer == nil || authorizer.Lambda == nil {
		return ""
	}

	if id, ok := authorizer.Lambda["principalId"].(string); ok {
		return id
	}
	return ""
}

func main() {
	lambda.Start(Handler)
}
