package models

import (
	"time"

	"gorm.io/datatypes"
)

type AIGenerationKind string

const (
	GenerationAnswer      AIGenerationKind = "answer"
	GenerationTranslation AIGenerationKind = "translation"
)

// ChatMessage is one role/content pair sent to the language model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AIGeneration records a single model call for auditing.
type AIGeneration struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	UserID         uint             `json:"user_id" gorm:"not null;index"`
	QuestionID     *uint            `json:"question_id" gorm:"index"`
	Kind           AIGenerationKind `json:"kind" gorm:"not null;size:20;index"`
	Messages       datatypes.JSON   `json:"messages"`
	TargetLanguage string           `json:"target_language" gorm:"size:50"`
	Output         string           `json:"output" gorm:"type:text"`
	Fallback       bool             `json:"fallback" gorm:"default:false"`
	Success        bool             `json:"success" gorm:"default:false"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (AIGeneration) TableName() string {
	return "ai_generations"
}
