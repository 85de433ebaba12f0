package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository"
)

type memAccounts struct {
	accounts  []*model.Account
	children  []*model.Child
	createErr error
}

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = uuid.New()
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *memAccounts) GetByTelegramID(_ context.Context, telegramID int64) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.TelegramID == telegramID {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) ListByRole(_ context.Context, role model.Role) ([]*model.Account, error) {
	var out []*model.Account
	for _, a := range m.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAccounts) UpdateRole(_ context.Context, id uuid.UUID, role model.Role) error {
	for _, a := range m.accounts {
		if a.ID == id {
			a.Role = role
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memAccounts) CreateChild(_ context.Context, c *model.Child) error {
	c.ID = uuid.New()
	m.children = append(m.children, c)
	return nil
}

func (m *memAccounts) GetChild(_ context.Context, id uuid.UUID) (*model.Child, error) {
	for _, c := range m.children {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) ListLinked(_ context.Context, parentID uuid.UUID) ([]*model.Child, error) {
	var out []*model.Child
	for _, c := range m.children {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memAccounts) UpdateSkill(_ context.Context, childID uuid.UUID, skillGroup, lastSkill string) error {
	for _, c := range m.children {
		if c.ID == childID {
			c.SkillGroup, c.LastObtainedSkill = skillGroup, lastSkill
			return nil
		}
	}
	return repository.ErrNotFound
}

type memBookings struct {
	bookings []*model.Booking
	// записи параллельной транзакции: чтения их не видят, уникальные индексы видят
	concurrent []*model.Booking
	createErr  error
	creates    int
}

func (m *memBookings) Create(_ context.Context, b *model.Booking) error {
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	for _, other := range append(append([]*model.Booking{}, m.bookings...), m.concurrent...) {
		if sameStartClash(other, b) {
			return fmt.Errorf("create booking: %w", repository.ErrConflict)
		}
	}
	b.ID = uuid.New()
	m.bookings = append(m.bookings, b)
	return nil
}

// sameStartClash повторяет уникальные индексы bookings: одна активная запись на минуту
// для каждого инструктора и одна без инструктора
func sameStartClash(existing, b *model.Booking) bool {
	if !existing.Status.Occupies() || !existing.StartsAt.Equal(b.StartsAt) {
		return false
	}
	if existing.InstructorID == nil || b.InstructorID == nil {
		return existing.InstructorID == nil && b.InstructorID == nil
	}
	return *existing.InstructorID == *b.InstructorID
}

func (m *memBookings) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memBookings) ListBetween(_ context.Context, from, to time.Time) ([]*model.Booking, error) {
	return m.filter(func(b *model.Booking) bool {
		return b.StartsAt.Before(to) && b.EndsAt.After(from)
	}), nil
}

func (m *memBookings) ListByOwners(_ context.Context, ownerIDs []uuid.UUID, from time.Time) ([]*model.Booking, error) {
	return m.filter(func(b *model.Booking) bool {
		if b.StartsAt.Before(from) {
			return false
		}
		for _, id := range ownerIDs {
			if b.OwnerID == id {
				return true
			}
		}
		return false
	}), nil
}

func (m *memBookings) ListByInstructor(_ context.Context, instructorID uuid.UUID, from, to time.Time) ([]*model.Booking, error) {
	return m.filter(func(b *model.Booking) bool {
		return b.InstructorID != nil && *b.InstructorID == instructorID &&
			!b.StartsAt.Before(from) && b.StartsAt.Before(to)
	}), nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status model.BookingStatus) error {
	for _, b := range m.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memBookings) UpdateOutcome(_ context.Context, id uuid.UUID, status model.BookingStatus, skillGroup *string) error {
	for _, b := range m.bookings {
		if b.ID == id {
			b.Status = status
			if skillGroup != nil {
				b.SkillGroup = skillGroup
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memBookings) filter(keep func(*model.Booking) bool) []*model.Booking {
	var out []*model.Booking
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out
}

type memReservations struct {
	reservations []*model.RecurringReservation
}

func (m *memReservations) Create(_ context.Context, r *model.RecurringReservation) error {
	r.ID = uuid.New()
	m.reservations = append(m.reservations, r)
	return nil
}

func (m *memReservations) ListActive(context.Context) ([]*model.RecurringReservation, error) {
	var out []*model.RecurringReservation
	for _, r := range m.reservations {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, r := range m.reservations {
		if r.ID == id {
			r.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

type memAvailability struct {
	intervals []*model.AvailabilityInterval
}

func (m *memAvailability) Create(_ context.Context, iv *model.AvailabilityInterval) error {
	iv.ID = uuid.New()
	m.intervals = append(m.intervals, iv)
	return nil
}

func (m *memAvailability) List(context.Context) ([]*model.AvailabilityInterval, error) {
	return m.intervals, nil
}

func (m *memAvailability) ListByInstructor(_ context.Context, instructorID uuid.UUID) ([]*model.AvailabilityInterval, error) {
	var out []*model.AvailabilityInterval
	for _, iv := range m.intervals {
		if iv.InstructorID == instructorID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *memAvailability) Delete(_ context.Context, id, instructorID uuid.UUID) error {
	for i, iv := range m.intervals {
		if iv.ID == id && iv.InstructorID == instructorID {
			m.intervals = append(m.intervals[:i], m.intervals[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memNotes struct {
	notes []*model.InstructorNote
}

func (m *memNotes) Get(_ context.Context, childID, instructorID uuid.UUID) (*model.InstructorNote, error) {
	for _, n := range m.notes {
		if n.ChildID == childID && n.InstructorID == instructorID {
			return n, nil
		}
	}
	return nil, nil
}

func (m *memNotes) Upsert(_ context.Context, note *model.InstructorNote) error {
	for _, n := range m.notes {
		if n.ChildID == note.ChildID && n.InstructorID == note.InstructorID {
			n.Note = note.Note
			note.ID = n.ID
			return nil
		}
	}
	note.ID = uuid.New()
	m.notes = append(m.notes, note)
	return nil
}

type sentMessage struct {
	telegramID int64
	text       string
}

type recordingNotifier struct {
	sent []sentMessage
	fail map[int64]error
}

func (n *recordingNotifier) Notify(_ context.Context, telegramID int64, text string) error {
	if err := n.fail[telegramID]; err != nil {
		return err
	}
	n.sent = append(n.sent, sentMessage{telegramID: telegramID, text: text})
	return nil
}

type memCharges struct {
	charges []*model.Charge
}

func (m *memCharges) Create(_ context.Context, c *model.Charge) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	m.charges = append(m.charges, c)
	return nil
}

func (m *memCharges) ListByAccount(_ context.Context, accountID uuid.UUID, from, to time.Time) ([]*model.Charge, error) {
	var out []*model.Charge
	for _, c := range m.charges {
		if c.AccountID == accountID && !c.Date.Before(from) && c.Date.Before(to) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
