package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/sirupsen/logrus"
)

// Scheduler периодически отправляет задачу refresh-data по cron-расписанию
type Scheduler struct {
	schedule string
	jobs     service.JobService
	logger   *logrus.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// New проверяет расписание. Пустое расписание отключает планировщик.
func New(schedule string, jobs service.JobService, logger *logrus.Logger) (*Scheduler, error) {
	if schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return nil, fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", schedule, err)
		}
	}
	return &Scheduler{
		schedule: schedule,
		jobs:     jobs,
		logger:   logger,
	}, nil
}

// Enabled сообщает, задано ли расписание
func (s *Scheduler) Enabled() bool {
	return s != nil && s.schedule != ""
}

// StartWithContext запускает cron. Задачи отправляются с контекстом ctx.
func (s *Scheduler) StartWithContext(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	c.Start()
	s.cron = c
	s.running = true
	s.logger.WithField("schedule", s.schedule).Info("Refresh scheduler started")
	return nil
}

// RunOnce отправляет одну задачу обновления данных
func (s *Scheduler) RunOnce(ctx context.Context) {
	job, err := s.jobs.Submit(ctx, models.JobRefreshData, "", "")
	if err != nil {
		s.logger.WithError(err).Error("Failed to submit scheduled refresh")
		return
	}
	s.logger.WithField("job_id", job.ID).Info("Scheduled refresh submitted")
}

// StopWithContext останавливает cron и ждет завершения запущенной отправки
func (s *Scheduler) StopWithContext(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	wasRunning := s.running
	s.cron = nil
	s.running = false
	s.mu.Unlock()
	if !wasRunning || c == nil {
		return nil
	}

	stopped := c.Stop()
	select {
	case <-stopped.Done():
		s.logger.Info("Refresh scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
