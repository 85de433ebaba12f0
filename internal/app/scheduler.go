package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// agendaSender рассылка дневных сводок, реализована service.AgendaDigest
type agendaSender interface {
	Send(ctx context.Context, day time.Time) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	digest   agendaSender
	hour     int
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler digest запускается каждый день в hour:00 по времени loc
func NewScheduler(digest agendaSender, hour int, loc *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		digest:   digest,
		hour:     hour,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Int("agenda_hour", s.hour))

	go s.runAgendaTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runAgendaTask(ctx context.Context) {
	for {
		next := s.nextRun(s.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			s.sendAgenda(ctx, next)
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Agenda task stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Agenda task cancelled")
			return
		}
	}
}

// nextRun ближайший момент hour:00 строго после now
func (s *Scheduler) nextRun(now time.Time) time.Time {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.hour, 0, 0, 0, s.loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, s.hour, 0, 0, 0, s.loc)
	}
	return next
}

func (s *Scheduler) sendAgenda(ctx context.Context, day time.Time) {
	sent, err := s.digest.Send(ctx, day)
	if err != nil {
		s.logger.Error("Agenda digest finished with errors", zap.Int("sent", sent), zap.Error(err))
		return
	}
	s.logger.Info("Agenda digest completed", zap.Int("sent", sent))
}
