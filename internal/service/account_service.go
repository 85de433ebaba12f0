package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository"
)

const maxChildNameLength = 64

type AccountService struct {
	accounts AccountStore
	admins   map[int64]bool
	logger   *zap.Logger
}

// NewAccountService adminTelegramIDs получают роль admin при регистрации
func NewAccountService(accounts AccountStore, adminTelegramIDs []int64, logger *zap.Logger) *AccountService {
	admins := make(map[int64]bool, len(adminTelegramIDs))
	for _, id := range adminTelegramIDs {
		admins[id] = true
	}
	return &AccountService{accounts: accounts, admins: admins, logger: logger}
}

// TelegramUser данные пользователя из апдейта
type TelegramUser struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

// Register возвращает аккаунт пользователя, создавая его при первом обращении.
// created == true, если аккаунт только что создан
func (s *AccountService) Register(ctx context.Context, user TelegramUser) (account *model.Account, created bool, err error) {
	account, err = s.accounts.GetByTelegramID(ctx, user.ID)
	if err != nil {
		return nil, false, fmt.Errorf("get account: %w", err)
	}
	if account != nil {
		return account, false, nil
	}

	account = &model.Account{
		TelegramID:   user.ID,
		Username:     user.Username,
		Name:         strings.TrimSpace(user.FirstName + " " + user.LastName),
		Role:         model.RoleParent,
		LanguageCode: user.LanguageCode,
	}
	if account.Name == "" {
		account.Name = user.Username
	}
	if s.admins[user.ID] {
		account.Role = model.RoleAdmin
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		// параллельный /start уже создал аккаунт
		if errors.Is(err, repository.ErrConflict) {
			existing, getErr := s.accounts.GetByTelegramID(ctx, user.ID)
			if getErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.Int64("telegram_id", user.ID),
		zap.String("role", string(account.Role)))

	return account, true, nil
}

// SessionForTelegram строит сессию вызывающего вместе с его детьми
func (s *AccountService) SessionForTelegram(ctx context.Context, telegramID int64) (model.Session, *model.Account, error) {
	account, err := s.accounts.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return model.Session{}, nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return model.Session{}, nil, ErrAccountNotFound
	}

	children, err := s.accounts.ListLinked(ctx, account.ID)
	if err != nil {
		return model.Session{}, nil, fmt.Errorf("list children: %w", err)
	}

	session := model.Session{AccountID: account.ID, Role: account.Role}
	for _, c := range children {
		session.LinkedAccountIDs = append(session.LinkedAccountIDs, c.ID)
	}

	return session, account, nil
}

// AddChild добавляет ребёнка вызывающему родителю
func (s *AccountService) AddChild(ctx context.Context, session model.Session, name string) (*model.Child, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxChildNameLength {
		return nil, fmt.Errorf("child name must be 1..%d characters: %w", maxChildNameLength, ErrInvalidInput)
	}

	child := &model.Child{ParentID: session.AccountID, Name: name}
	if err := s.accounts.CreateChild(ctx, child); err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}

	s.logger.Info("Child added",
		zap.String("parent_id", session.AccountID.String()),
		zap.String("child_id", child.ID.String()))

	return child, nil
}

// ListChildren дети вызывающего
func (s *AccountService) ListChildren(ctx context.Context, session model.Session) ([]*model.Child, error) {
	children, err := s.accounts.ListLinked(ctx, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

// Child ребёнок по ID. Родитель видит только своих, персонал всех
func (s *AccountService) Child(ctx context.Context, session model.Session, childID uuid.UUID) (*model.Child, error) {
	child, err := s.accounts.GetChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	if child.ParentID != session.AccountID && !session.Role.IsStaff() {
		return nil, ErrForbidden
	}
	return child, nil
}

// Instructors все инструкторы
func (s *AccountService) Instructors(ctx context.Context) ([]*model.Account, error) {
	instructors, err := s.accounts.ListByRole(ctx, model.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return instructors, nil
}

// SetRoleByTelegram администратор назначает роль зарегистрированному пользователю
func (s *AccountService) SetRoleByTelegram(ctx context.Context, session model.Session, telegramID int64, role model.Role) (*model.Account, error) {
	if session.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	switch role {
	case model.RoleParent, model.RoleInstructor, model.RoleAdmin:
	default:
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrInvalidInput)
	}

	account, err := s.accounts.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if err := s.accounts.UpdateRole(ctx, account.ID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	account.Role = role

	s.logger.Info("Role changed",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(role)),
		zap.String("by", session.AccountID.String()))

	return account, nil
}

// FindByTelegram поиск аккаунта персоналом, например для оформления постоянной брони
func (s *AccountService) FindByTelegram(ctx context.Context, session model.Session, telegramID int64) (*model.Account, error) {
	if !session.Role.IsStaff() {
		return nil, ErrForbidden
	}

	account, err := s.accounts.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// Clients все родители, для администратора
func (s *AccountService) Clients(ctx context.Context, session model.Session) ([]*model.Account, error) {
	if session.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	clients, err := s.accounts.ListByRole(ctx, model.RoleParent)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Client карточка клиента для администратора: аккаунт и дети
func (s *AccountService) Client(ctx context.Context, session model.Session, accountID uuid.UUID) (*model.Account, []*model.Child, error) {
	if session.Role != model.RoleAdmin {
		return nil, nil, ErrForbidden
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, nil, ErrAccountNotFound
	}

	children, err := s.accounts.ListLinked(ctx, account.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list children: %w", err)
	}

	return account, children, nil
}
