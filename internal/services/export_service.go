package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

const (
	QuestionsSheet = "Questions"
	AnswersSheet   = "Answers"
)

var (
	questionsHeader = []interface{}{"ID", "Student", "Title", "Category", "Status", "Created", "Answers"}
	answersHeader   = []interface{}{"Question ID", "Mentor", "Content", "Created"}
)

type exportService struct {
	repo     repositories.Repository
	location *time.Location
	logger   *slog.Logger
}

func NewExportService(repo repositories.Repository, location *time.Location, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, location: location, logger: logger}
}

func (s *exportService) WriteWorkbook(ctx context.Context, w io.Writer) error {
	questions, err := s.repo.Question().List(ctx, nil, repositories.QuestionFilters{WithStudent: true})
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}
	answers, err := s.repo.Answer().ListAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list answers: %w", err)
	}

	answerCounts := make(map[uint]int, len(questions))
	for i := range answers {
		answerCounts[answers[i].QuestionID]++
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", QuestionsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(AnswersSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	if err := setRow(f, QuestionsSheet, 1, questionsHeader); err != nil {
		return err
	}
	if err := setRow(f, AnswersSheet, 1, answersHeader); err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		row := []interface{}{
			q.ID,
			q.Student.DisplayName(),
			q.Title,
			q.Category.Label(),
			q.Status.Label(),
			models.FormatDisplayTime(q.CreatedAt, s.location),
			answerCounts[q.ID],
		}
		if err := setRow(f, QuestionsSheet, i+2, row); err != nil {
			return err
		}
	}

	for i := range answers {
		a := &answers[i]
		row := []interface{}{
			a.QuestionID,
			a.Mentor.DisplayName(),
			a.Content,
			models.FormatDisplayTime(a.CreatedAt, s.location),
		}
		if err := setRow(f, AnswersSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Workbook exported", "questions", len(questions), "answers", len(answers))
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
