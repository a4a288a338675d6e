package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	Database  string    `json:"database"`
}

type HealthService struct {
	db      *gorm.DB
	started time.Time
}

func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db, started: time.Now()}
}

// Check pings the store. A failed ping degrades the report instead of
// returning an error so the endpoint always answers.
func (s *HealthService) Check(ctx context.Context) Health {
	now := time.Now()
	h := Health{
		Status:    "ok",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(s.started).Seconds(),
		Database:  "connected",
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.Status = "error"
		h.Database = "disconnected"
	}
	return h
}
