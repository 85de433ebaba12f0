package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository/base"
)

type NoteRepository struct {
	*base.Repository
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{Repository: base.NewRepository(pool)}
}

// Get заметка инструктора о ребёнке, nil если её ещё нет
func (r *NoteRepository) Get(ctx context.Context, childID, instructorID uuid.UUID) (*model.InstructorNote, error) {
	query := `
		SELECT id, child_id, instructor_id, note, updated_at
		FROM instructor_notes
		WHERE child_id = $1 AND instructor_id = $2
	`

	var note model.InstructorNote
	err := r.Pool().QueryRow(ctx, query, childID, instructorID).Scan(
		&note.ID,
		&note.ChildID,
		&note.InstructorID,
		&note.Note,
		&note.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get instructor note: %w", err)
	}

	return &note, nil
}

// Upsert создаёт или перезаписывает заметку для пары (ребёнок, инструктор)
func (r *NoteRepository) Upsert(ctx context.Context, note *model.InstructorNote) error {
	query := `
		INSERT INTO instructor_notes (child_id, instructor_id, note)
		VALUES ($1, $2, $3)
		ON CONFLICT (child_id, instructor_id)
		DO UPDATE SET note = EXCLUDED.note, updated_at = now()
		RETURNING id, updated_at
	`

	err := r.Pool().QueryRow(ctx, query, note.ChildID, note.InstructorID, note.Note).
		Scan(&note.ID, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert instructor note: %w", err)
	}

	return nil
}
