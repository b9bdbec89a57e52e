package models

import (
	"time"
)

type QuestionCategory string

const (
	CategoryProgramming QuestionCategory = "programming"
	CategoryCareer      QuestionCategory = "career"
	CategoryProject     QuestionCategory = "project"
	CategoryGeneral     QuestionCategory = "general"
	CategoryOther       QuestionCategory = "other"
)

var questionCategoryLabels = map[QuestionCategory]string{
	CategoryProgramming: "Programming",
	CategoryCareer:      "Career Guidance",
	CategoryProject:     "Project Help",
	CategoryGeneral:     "General Learning",
	CategoryOther:       "Other",
}

// QuestionCategories lists the categories in display order.
func QuestionCategories() []QuestionCategory {
	return []QuestionCategory{CategoryProgramming, CategoryCareer, CategoryProject, CategoryGeneral, CategoryOther}
}

func (c QuestionCategory) IsValid() bool {
	_, ok := questionCategoryLabels[c]
	return ok
}

func (c QuestionCategory) Label() string {
	if label, ok := questionCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type QuestionStatus string

const (
	StatusPending  QuestionStatus = "pending"
	StatusAnswered QuestionStatus = "answered"
	StatusClosed   QuestionStatus = "closed"
)

func QuestionStatuses() []QuestionStatus {
	return []QuestionStatus{StatusPending, StatusAnswered, StatusClosed}
}

func (s QuestionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAnswered, StatusClosed:
		return true
	}
	return false
}

func (s QuestionStatus) Label() string {
	switch s {
	case StatusPending:
		return "Waiting for Answer"
	case StatusAnswered:
		return "Answered"
	case StatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}

type Question struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID uint             `json:"student_id" gorm:"not null;index"`
	Title     string           `json:"title" gorm:"not null;size:200"`
	Content   string           `json:"content" gorm:"type:text;not null"`
	Category  QuestionCategory `json:"category" gorm:"not null;size:20;index"`
	Status    QuestionStatus   `json:"status" gorm:"not null;size:10;default:pending;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Student User     `json:"student" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Answers []Answer `json:"answers" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string {
	return "questions"
}
