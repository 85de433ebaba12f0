package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository/base"
)

const accountColumns = `id, telegram_id, username, name, role, language_code, created_at`

type AccountRepository struct {
	*base.Repository
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт аккаунт
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (telegram_id, username, name, role, language_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		account.TelegramID,
		account.Username,
		account.Name,
		account.Role,
		account.LanguageCode,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create account: %w", ErrConflict)
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

// GetByTelegramID получает аккаунт по Telegram ID
func (r *AccountRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE telegram_id = $1`

	account, err := scanAccount(r.Pool().QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Аккаунт не найден
		}
		return nil, fmt.Errorf("get account by telegram id: %w", err)
	}

	return account, nil
}

// GetByID получает аккаунт по ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

// ListByRole все аккаунты с ролью, по имени
func (r *AccountRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role = $1 ORDER BY name`

	rows, err := r.Pool().Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list accounts by role: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateRole меняет роль аккаунта
func (r *AccountRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	affected, err := r.ExecAffected(ctx, `UPDATE accounts SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("update account role: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update account role: %w", ErrNotFound)
	}
	return nil
}

// CreateChild добавляет ребёнка родителю
func (r *AccountRepository) CreateChild(ctx context.Context, child *model.Child) error {
	query := `
		INSERT INTO children (parent_id, name, skill_group, last_obtained_skill)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(ctx, query, child.ParentID, child.Name, child.SkillGroup, child.LastObtainedSkill).
		Scan(&child.ID, &child.CreatedAt)
	if err != nil {
		return fmt.Errorf("create child: %w", err)
	}

	return nil
}

// GetChild получает ребёнка по ID
func (r *AccountRepository) GetChild(ctx context.Context, id uuid.UUID) (*model.Child, error) {
	query := `
		SELECT id, parent_id, name, skill_group, last_obtained_skill, created_at
		FROM children
		WHERE id = $1
	`

	var child model.Child
	err := r.Pool().QueryRow(ctx, query, id).Scan(
		&child.ID,
		&child.ParentID,
		&child.Name,
		&child.SkillGroup,
		&child.LastObtainedSkill,
		&child.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get child: %w", err)
	}

	return &child, nil
}

// ListLinked дети родителя в порядке добавления
func (r *AccountRepository) ListLinked(ctx context.Context, parentID uuid.UUID) ([]*model.Child, error) {
	query := `
		SELECT id, parent_id, name, skill_group, last_obtained_skill, created_at
		FROM children
		WHERE parent_id = $1
		ORDER BY created_at
	`

	rows, err := r.Pool().Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []*model.Child
	for rows.Next() {
		var child model.Child
		if err := rows.Scan(
			&child.ID,
			&child.ParentID,
			&child.Name,
			&child.SkillGroup,
			&child.LastObtainedSkill,
			&child.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, &child)
	}

	return children, rows.Err()
}

// UpdateSkill сохраняет группу и последний освоенный навык ребёнка
func (r *AccountRepository) UpdateSkill(ctx context.Context, childID uuid.UUID, skillGroup, lastSkill string) error {
	query := `
		UPDATE children
		SET skill_group = $1, last_obtained_skill = $2
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, skillGroup, lastSkill, childID)
	if err != nil {
		return fmt.Errorf("update child skill: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update child skill: %w", ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID,
		&account.TelegramID,
		&account.Username,
		&account.Name,
		&account.Role,
		&account.LanguageCode,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
