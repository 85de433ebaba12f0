package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/curriculum"
	"github.com/popiko/lessons_bot/internal/model"
)

const maxNoteLength = 2000

type InstructorService struct {
	bookings     BookingStore
	availability AvailabilityStore
	notes        NoteStore
	accounts     AccountStore
	loc          *time.Location
	logger       *zap.Logger
}

func NewInstructorService(
	bookings BookingStore,
	availability AvailabilityStore,
	notes NoteStore,
	accounts AccountStore,
	loc *time.Location,
	logger *zap.Logger,
) *InstructorService {
	return &InstructorService{
		bookings:     bookings,
		availability: availability,
		notes:        notes,
		accounts:     accounts,
		loc:          loc,
		logger:       logger,
	}
}

// Agenda уроки инструктора за день без отменённых, по времени
func (s *InstructorService) Agenda(ctx context.Context, instructorID uuid.UUID, day time.Time) ([]*model.Booking, error) {
	from := dayStart(day, s.loc)

	bookings, err := s.bookings.ListByInstructor(ctx, instructorID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list agenda: %w", err)
	}

	agenda := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status.Occupies() {
			agenda = append(agenda, b)
		}
	}
	return agenda, nil
}

// SetAvailability добавляет окно. Инструктор добавляет себе, администратор кому угодно
func (s *InstructorService) SetAvailability(ctx context.Context, session model.Session, iv *model.AvailabilityInterval) error {
	if !s.canManage(session, iv.InstructorID) {
		return ErrForbidden
	}
	if iv.Weekday < 0 || iv.Weekday > 6 {
		return fmt.Errorf("weekday %d out of range: %w", iv.Weekday, ErrInvalidInput)
	}
	if !validClock(iv.StartHour, iv.StartMinute) || !validClock(iv.EndHour, iv.EndMinute) {
		return fmt.Errorf("bad window time: %w", ErrInvalidInput)
	}
	if iv.EndHour*60+iv.EndMinute <= iv.StartHour*60+iv.StartMinute {
		return fmt.Errorf("window must end after it starts: %w", ErrInvalidInput)
	}

	if err := s.availability.Create(ctx, iv); err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	s.logger.Info("Availability window added",
		zap.String("instructor_id", iv.InstructorID.String()),
		zap.Int("weekday", iv.Weekday),
		zap.Bool("in_season", iv.InSeason))

	return nil
}

// RemoveWindow удаляет окно инструктора
func (s *InstructorService) RemoveWindow(ctx context.Context, session model.Session, instructorID, windowID uuid.UUID) error {
	if !s.canManage(session, instructorID) {
		return ErrForbidden
	}
	if err := s.availability.Delete(ctx, windowID, instructorID); err != nil {
		return fmt.Errorf("remove window: %w", err)
	}
	return nil
}

// Windows окна инструктора
func (s *InstructorService) Windows(ctx context.Context, instructorID uuid.UUID) ([]*model.AvailabilityInterval, error) {
	windows, err := s.availability.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	return windows, nil
}

// Note заметка вызывающего инструктора о ребёнке, пустая если её нет
func (s *InstructorService) Note(ctx context.Context, session model.Session, childID uuid.UUID) (*model.InstructorNote, error) {
	if !session.Role.IsStaff() {
		return nil, ErrForbidden
	}

	note, err := s.notes.Get(ctx, childID, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note == nil {
		note = &model.InstructorNote{ChildID: childID, InstructorID: session.AccountID}
	}
	return note, nil
}

// SaveNote перезаписывает заметку вызывающего инструктора о ребёнке
func (s *InstructorService) SaveNote(ctx context.Context, session model.Session, childID uuid.UUID, text string) (*model.InstructorNote, error) {
	if !session.Role.IsStaff() {
		return nil, ErrForbidden
	}

	text = strings.TrimSpace(text)
	if len(text) > maxNoteLength {
		return nil, fmt.Errorf("note longer than %d bytes: %w", maxNoteLength, ErrInvalidInput)
	}

	child, err := s.accounts.GetChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	note := &model.InstructorNote{ChildID: childID, InstructorID: session.AccountID, Note: text}
	if err := s.notes.Upsert(ctx, note); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}

	s.logger.Info("Instructor note saved",
		zap.String("child_id", childID.String()),
		zap.String("instructor_id", session.AccountID.String()))

	return note, nil
}

func (s *InstructorService) canManage(session model.Session, instructorID uuid.UUID) bool {
	if session.Role == model.RoleAdmin {
		return true
	}
	return session.Role == model.RoleInstructor && session.AccountID == instructorID
}

// AdvanceSkill отмечает освоенным следующий навык программы
func (s *InstructorService) AdvanceSkill(ctx context.Context, session model.Session, childID uuid.UUID) (*model.Child, error) {
	if !session.Role.IsStaff() {
		return nil, ErrForbidden
	}

	child, err := s.accounts.GetChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	group, skill, ok := curriculum.Advance(child.SkillGroup, child.LastObtainedSkill)
	if !ok {
		return nil, ErrProgramComplete
	}

	if err := s.accounts.UpdateSkill(ctx, childID, group, skill.Name); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	child.SkillGroup, child.LastObtainedSkill = group, skill.Name

	s.logger.Info("Skill obtained",
		zap.String("child_id", childID.String()),
		zap.String("instructor_id", session.AccountID.String()),
		zap.String("skill_group", group),
		zap.Int("skill_index", skill.Index))

	return child, nil
}
