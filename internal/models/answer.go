package models

import "time"

type Answer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	MentorID   uint      `json:"mentor_id" gorm:"not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`

	Mentor User `json:"mentor" gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE"`
}

func (Answer) TableName() string {
	return "answers"
}
