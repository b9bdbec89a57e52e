package validator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required,notblank"`
	Fullname string `form:"fullname" json:"fullname" validate:"required,notblank"`
	Email    string `form:"email" json:"email" validate:"required,notblank,loose_email"`
	Password string `form:"password" json:"password" validate:"required,notblank,min=8"`
	// Role is only checked for presence here; its value is checked after the
	// uniqueness lookups so the messages surface in a stable order.
	Role string `form:"role" json:"role" validate:"required"`
}

// RegisterRulePrecedence orders registration failures the way users see them.
var RegisterRulePrecedence = []RuleMessage{
	{Rule: "required", Message: "Please fill in all required fields"},
	{Rule: "notblank", Message: "All fields must contain valid information"},
	{Rule: "min", Message: "Password must be at least 8 characters long"},
	{Rule: "loose_email", Message: "Please enter a valid email address"},
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,notblank"`
	Password string `form:"password" json:"password" validate:"required,notblank"`
}

var LoginRulePrecedence = []RuleMessage{
	{Rule: "required", Message: "Please fill in all required fields"},
	{Rule: "notblank", Message: "Email and password cannot be empty"},
}

type CreateQuestionRequest struct {
	Title    string `form:"title" json:"title" validate:"required,max=200"`
	Content  string `form:"content" json:"content" validate:"required"`
	Category string `form:"category" json:"category" validate:"required,question_category"`
}

var QuestionRulePrecedence = []RuleMessage{
	{Rule: "required", Message: "All fields are required"},
	{Rule: "max", Message: "Title must be at most 200 characters"},
	{Rule: "question_category", Message: "Invalid category"},
}

// CreateAnswerRequest is posted by mentors as a form or as JSON. A
// non-numeric id is reported as an unknown question.
type CreateAnswerRequest struct {
	QuestionID    QuestionRef `form:"question_id" json:"question_id" validate:"required"`
	AnswerContent string      `form:"answer_content" json:"answer_content" validate:"required"`
}

var AnswerRulePrecedence = []RuleMessage{
	{Rule: "required", Message: "Question ID and answer content are required"},
}

// BoardFilter narrows the mentor board by query string. Values that are not a
// known status or category are ignored.
type BoardFilter struct {
	Status   string `form:"status"`
	Category string `form:"category"`
}

type GenerateAnswerRequest struct {
	QuestionID    QuestionRef `json:"question_id"`
	ContextPrompt string      `json:"context_prompt"`
}

type TranslateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// QuestionRef accepts a question id written as a JSON number, a JSON string
// or a form value. Missing, null, zero and empty values leave ID at 0. Values
// that can not be read as a positive integer set Invalid.
type QuestionRef struct {
	ID      uint `form:"-"`
	Invalid bool `form:"-"`
}

func (r *QuestionRef) UnmarshalJSON(data []byte) error {
	*r = QuestionRef{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}
	r.set(raw)
	return nil
}

// UnmarshalParam reads the id from a form or query value.
func (r *QuestionRef) UnmarshalParam(param string) error {
	*r = QuestionRef{}
	r.set(param)
	return nil
}

func (r *QuestionRef) set(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return
	}
	id, err := ParseID(raw)
	if err != nil {
		r.Invalid = true
		return
	}
	r.ID = id
}

func (r QuestionRef) Missing() bool {
	return r.ID == 0 && !r.Invalid
}

// ParseID parses a positive decimal id.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return uint(id), nil
}
