package model

import (
	"time"

	"github.com/google/uuid"
)

// Child ребёнок родителя, на которого оформляются уроки
type Child struct {
	ID                uuid.UUID `json:"id"`
	ParentID          uuid.UUID `json:"parent_id"`
	Name              string    `json:"name"`
	SkillGroup        string    `json:"skill_group"`
	LastObtainedSkill string    `json:"last_obtained_skill"`
	CreatedAt         time.Time `json:"created_at"`
}
