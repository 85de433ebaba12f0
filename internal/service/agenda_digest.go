package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
)

// Notifier доставляет текст пользователю по Telegram ID
type Notifier interface {
	Notify(ctx context.Context, telegramID int64, text string) error
}

type agendaSource interface {
	Agenda(ctx context.Context, instructorID uuid.UUID, day time.Time) ([]*model.Booking, error)
}

// AgendaDigest рассылает инструкторам их уроки на день
type AgendaDigest struct {
	accounts AccountStore
	agenda   agendaSource
	notifier Notifier
	loc      *time.Location
	logger   *zap.Logger
}

func NewAgendaDigest(accounts AccountStore, agenda agendaSource, notifier Notifier, loc *time.Location, logger *zap.Logger) *AgendaDigest {
	return &AgendaDigest{
		accounts: accounts,
		agenda:   agenda,
		notifier: notifier,
		loc:      loc,
		logger:   logger,
	}
}

// Send отправляет сводку на day каждому инструктору, у которого есть уроки.
// Ошибка одного инструктора не останавливает рассылку остальным
func (d *AgendaDigest) Send(ctx context.Context, day time.Time) (int, error) {
	instructors, err := d.accounts.ListByRole(ctx, model.RoleInstructor)
	if err != nil {
		return 0, fmt.Errorf("list instructors: %w", err)
	}

	var (
		sent int
		errs []error
	)
	for _, instructor := range instructors {
		lessons, err := d.agenda.Agenda(ctx, instructor.ID, day)
		if err != nil {
			errs = append(errs, fmt.Errorf("agenda for %s: %w", instructor.ID, err))
			continue
		}
		if len(lessons) == 0 {
			continue
		}

		if err := d.notifier.Notify(ctx, instructor.TelegramID, FormatAgenda(day.In(d.loc), lessons, d.loc)); err != nil {
			d.logger.Warn("Failed to send agenda",
				zap.String("instructor_id", instructor.ID.String()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("notify %s: %w", instructor.ID, err))
			continue
		}
		sent++
	}

	d.logger.Info("Agenda digest sent",
		zap.Time("day", day),
		zap.Int("instructors", len(instructors)),
		zap.Int("sent", sent))

	return sent, errors.Join(errs...)
}

// FormatAgenda текст сводки уроков на день
func FormatAgenda(day time.Time, lessons []*model.Booking, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Уроки на %s:\n", day.Format("02.01.2006"))

	for _, b := range lessons {
		name := b.ChildName
		if name == "" {
			name = "без имени"
		}
		fmt.Fprintf(&sb, "\n%s–%s  %s", b.StartsAt.In(loc).Format("15:04"), b.EndsAt.In(loc).Format("15:04"), name)
		if b.SkillGroup != nil && *b.SkillGroup != "" {
			fmt.Fprintf(&sb, " (%s)", *b.SkillGroup)
		}
	}

	return sb.String()
}
