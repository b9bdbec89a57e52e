package models

import (
	"testing"
	"time"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", User{Username: "jdoe", FirstName: "Jane Doe"}, "Jane Doe"},
		{"blank falls back to username", User{Username: "jdoe", FirstName: "  "}, "jdoe"},
		{"empty falls back to username", User{Username: "jdoe"}, "jdoe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserRole(t *testing.T) {
	if !RoleMentor.IsValid() || !RoleStudent.IsValid() {
		t.Fatal("mentor and student must be valid roles")
	}
	if UserRole("admin").IsValid() {
		t.Error("admin must not be a valid role")
	}
	if RoleMentor.Label() != "Mentor" || RoleStudent.Label() != "Student" {
		t.Error("unexpected role labels")
	}
}

func TestQuestionCategory_IsValid(t *testing.T) {
	for _, c := range QuestionCategories() {
		if !c.IsValid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if QuestionCategory("cooking").IsValid() {
		t.Error("cooking should not be a valid category")
	}
}

func TestFormatDisplayTime(t *testing.T) {
	ts := time.Date(2025, time.March, 4, 14, 30, 0, 0, time.UTC)
	if got := FormatDisplayTime(ts, nil); got != "March 04, 2025 at 02:30 PM" {
		t.Errorf("FormatDisplayTime() = %q", got)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	if got := FormatDisplayTime(ts, tokyo); got != "March 04, 2025 at 11:30 PM" {
		t.Errorf("FormatDisplayTime(JST) = %q", got)
	}
}

func TestNewAnswerPayload(t *testing.T) {
	created := time.Date(2025, time.January, 2, 9, 5, 0, 0, time.UTC)
	a := &Answer{ID: 7, Content: "Use a base case.", CreatedAt: created}

	got := NewAnswerPayload(a, &User{Username: "mentor1"}, time.UTC)
	if got.MentorName != "mentor1" {
		t.Errorf("MentorName = %q, want username fallback", got.MentorName)
	}
	if got.CreatedAt != "January 02, 2025 at 09:05 AM" {
		t.Errorf("CreatedAt = %q", got.CreatedAt)
	}
}
