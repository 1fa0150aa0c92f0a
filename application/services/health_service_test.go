package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProbe struct {
	err error
}

func (p *fakeProbe) Ping(ctx context.Context) error {
	return p.err
}

func TestHealthService_Check_Healthy(t *testing.T) {
	svc := NewHealthService(&fakeProbe{}, zap.NewNop())

	status := svc.Check(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "notes-api", status.Service)
	assert.Equal(t, "ok", status.Dependencies["database"])

	ts, err := time.Parse(time.RFC3339, status.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestHealthService_Check_DatabaseDown(t *testing.T) {
	svc := NewHealthService(&fakeProbe{err: errors.New("connection refused")}, zap.NewNop())

	status := svc.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "down", status.Dependencies["database"])
}
