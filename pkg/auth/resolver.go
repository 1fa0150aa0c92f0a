package auth

import (
	"errors"
	"net/http"
	"strings"
)

// GatewayPrincipalHeader carries the principal id resolved by the API Gateway
// authorizer into the in-process router. Set by the Lambda entrypoint only.
const GatewayPrincipalHeader = "X-Principal-Id"

var ErrNoPrincipal = errors.New("no resolvable principal")

// PrincipalResolver resolves the owner identity for a request. The contract
// is "non-empty string or an error"; callers treat any error uniformly as
// unauthenticated. Which implementation runs is a deployment decision made in
// configuration, never hardcoded in a handler.
type PrincipalResolver interface {
	Resolve(r *http.Request) (string, error)
}

// TokenResolver validates the bearer token itself and uses its subject.
// This is the path for the standalone HTTP server.
type TokenResolver struct {
	validator *JWTValidator
}

// NewTokenResolver creates a resolver backed by JWT validation
func NewTokenResolver(validator *JWTValidator) *TokenResolver {
	return &TokenResolver{validator: validator}
}

func (tr *TokenResolver) Resolve(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidToken
	}

	claims, err := tr.validator.ValidateToken(parts[1])
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// InjectGatewayPrincipal rewrites the principal header on an incoming
// gateway event. API Gateway lowercases header names, so every case variant
// a client may have sent is stripped first; only the authorizer-resolved id,
// when present, goes back in under the canonical name.
func InjectGatewayPrincipal(headers map[string]string, principalID string) {
	for key := range headers {
		if strings.EqualFold(key, GatewayPrincipalHeader) {
			delete(headers, key)
		}
	}
	if principalID != "" {
		headers[GatewayPrincipalHeader] = principalID
	}
}

// GatewayResolver trusts the principal header injected by the Lambda
// entrypoint after the API Gateway authorizer allowed the request. The token
// was already verified upstream; re-validating here would need the raw token,
// which API Gateway strips.
type GatewayResolver struct{}

// NewGatewayResolver creates a resolver for Lambda deployments
func NewGatewayResolver() *GatewayResolver {
	return &GatewayResolver{}
}

func (gr *GatewayResolver) Resolve(r *http.Request) (string, error) {
	id := r.Header.Get(GatewayPrincipalHeader)
	if id == "" {
		return "", ErrNoPrincipal
	}
	return id, nil
}

// StaticResolver returns a fixed principal for every request. Development
// only; config validation refuses to select it in production.
type StaticResolver struct {
	principalID string
}

// NewStaticResolver creates a fixed-principal resolver
func NewStaticResolver(principalID string) *StaticResolver {
	return &StaticResolver{principalID: principalID}
}

func (sr *StaticResolver) Resolve(r *http.Request) (string, error) {
	if sr.principalID == "" {
		return "", ErrNoPrincipal
	}
	return sr.principalID, nil
}
