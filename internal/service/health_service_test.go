package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		repo := &MockHealthRepository{}
		repo.On("Ping", mock.Anything).Return(nil)
		repo.On("CountTables", mock.Anything).Return(4, nil)

		status := NewHealthService(repo).Check(ctx)

		assert.True(t, status.Healthy())
		assert.Equal(t, HealthStatus{Status: "ok", Database: "up", Tables: 4}, status)
	})

	t.Run("database down", func(t *testing.T) {
		repo := &MockHealthRepository{}
		repo.On("Ping", mock.Anything).Return(errors.New("refused"))

		status := NewHealthService(repo).Check(ctx)

		assert.False(t, status.Healthy())
		assert.Equal(t, "down", status.Database)
		repo.AssertNotCalled(t, "CountTables", mock.Anything)
	})

	t.Run("tables unavailable", func(t *testing.T) {
		repo := &MockHealthRepository{}
		repo.On("Ping", mock.Anything).Return(nil)
		repo.On("CountTables", mock.Anything).Return(0, errors.New("permission denied"))

		status := NewHealthService(repo).Check(ctx)

		assert.Equal(t, "degraded", status.Status)
	})
}
