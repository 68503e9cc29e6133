package service

import (
	"context"

	"blogapi/internal/repository"
)

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Tables   int    `json:"tables"`
}

func (h HealthStatus) Healthy() bool { return h.Status == "ok" }

type HealthService interface {
	Check(ctx context.Context) HealthStatus
}

type healthService struct {
	healthRepo repository.HealthRepository
}

func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{healthRepo: healthRepo}
}

func (h *healthService) Check(ctx context.Context) HealthStatus {
	if err := h.healthRepo.Ping(ctx); err != nil {
		return HealthStatus{Status: "unavailable", Database: "down"}
	}

	tables, err := h.healthRepo.CountTables(ctx)
	if err != nil {
		return HealthStatus{Status: "degraded", Database: "up"}
	}

	return HealthStatus{Status: "ok", Database: "up", Tables: tables}
}
