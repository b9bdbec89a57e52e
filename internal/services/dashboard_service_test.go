package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

func TestDashboardService_GetStats(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := newHarnessWithRedis(t, client)
	ctx := context.Background()
	svc := NewDashboardService(h.repo, h.cache.Stats, h.logger)

	alice := h.register(t, "alice", "Alice", models.RoleStudent)
	bob := h.register(t, "bob", "Bob", models.RoleStudent)
	maria := h.register(t, "maria", "Maria", models.RoleMentor)

	q1 := h.postQuestion(t, alice.ID, "one")
	h.postQuestion(t, alice.ID, "two")
	h.postQuestion(t, bob.ID, "three")

	if _, err := h.mentors().Answer(ctx, maria.ID, &CreateAnswerRequest{QuestionID: validator.QuestionRef{ID: q1.ID}, AnswerContent: "a"}); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	want := models.DashboardStats{
		TotalQuestions:    3,
		PendingQuestions:  2,
		AnsweredQuestions: 1,
		UniqueStudents:    2,
		TotalAnswers:      1,
	}
	if *stats != want {
		t.Errorf("GetStats() = %+v, want %+v", *stats, want)
	}
	if !mr.Exists("stats:" + statsCacheKey) {
		t.Error("stats should be cached")
	}

	// a new question drops the cached stats
	h.postQuestion(t, bob.ID, "four")
	if mr.Exists("stats:" + statsCacheKey) {
		t.Error("question write should invalidate stats")
	}
	stats, _ = svc.GetStats(ctx)
	if stats.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", stats.TotalQuestions)
	}
}

func TestDashboardService_AnswerInvalidatesAfterCommit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := newHarnessWithRedis(t, client)
	ctx := context.Background()
	svc := NewDashboardService(h.repo, h.cache.Stats, h.logger)

	alice := h.register(t, "alice", "Alice", models.RoleStudent)
	maria := h.register(t, "maria", "Maria", models.RoleMentor)
	q := h.postQuestion(t, alice.ID, "one")

	if _, err := svc.GetStats(ctx); err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	// a rolled back answer leaves the cached counts alone
	if _, err := h.mentors().Answer(ctx, maria.ID, &CreateAnswerRequest{QuestionID: validator.QuestionRef{ID: 9999}, AnswerContent: "a"}); err == nil {
		t.Fatal("expected error for unknown question")
	}
	if !mr.Exists("stats:" + statsCacheKey) {
		t.Error("failed answer should not invalidate stats")
	}

	if _, err := h.mentors().Answer(ctx, maria.ID, &CreateAnswerRequest{QuestionID: validator.QuestionRef{ID: q.ID}, AnswerContent: "a"}); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if mr.Exists("stats:" + statsCacheKey) {
		t.Error("committed answer should invalidate stats")
	}
	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.AnsweredQuestions != 1 || stats.TotalAnswers != 1 {
		t.Errorf("GetStats() = %+v", *stats)
	}
}

func TestDashboardService_WithoutCache(t *testing.T) {
	h := newHarness(t)
	svc := NewDashboardService(h.repo, nil, h.logger)

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if *stats != (models.DashboardStats{}) {
		t.Errorf("GetStats() = %+v, want zeros", *stats)
	}
}

func TestExportService_WriteWorkbook(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice", "Alice", models.RoleStudent)
	maria := h.register(t, "maria", "Maria", models.RoleMentor)
	q := h.postQuestion(t, alice.ID, "What is recursion?")
	h.postQuestion(t, alice.ID, "Unanswered")
	if _, err := h.mentors().Answer(ctx, maria.ID, &CreateAnswerRequest{QuestionID: validator.QuestionRef{ID: q.ID}, AnswerContent: "Functions calling themselves."}); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	var buf bytes.Buffer
	if err := NewExportService(h.repo, time.UTC, h.logger).WriteWorkbook(ctx, &buf); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(QuestionsSheet)
	if err != nil {
		t.Fatalf("GetRows(questions) error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("question rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][6] != "Answers" {
		t.Errorf("header = %v", rows[0])
	}
	// newest first: the unanswered question leads
	if rows[1][2] != "Unanswered" || rows[1][6] != "0" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "Alice" || rows[2][3] != "Programming" || rows[2][4] != "Answered" || rows[2][6] != "1" {
		t.Errorf("row 2 = %v", rows[2])
	}

	answers, err := f.GetRows(AnswersSheet)
	if err != nil {
		t.Fatalf("GetRows(answers) error = %v", err)
	}
	if len(answers) != 2 || answers[1][1] != "Maria" || answers[1][2] != "Functions calling themselves." {
		t.Errorf("answer rows = %v", answers)
	}
}
