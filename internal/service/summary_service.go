package service

import (
	"context"

	"github.com/edustack/schoolhub/internal/model"
	"github.com/edustack/schoolhub/internal/repository"
)

// SummaryService assembles the server-computed admin summary.
type SummaryService struct {
	summaryRepo *repository.SummaryRepository
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(summaryRepo *repository.SummaryRepository) *SummaryService {
	return &SummaryService{summaryRepo: summaryRepo}
}

// GetSummary fetches counts, per-student rows and per-teacher rows. All
// three come from the same storage snapshot-ish read path, so the
// assigned/unassigned classification in the rows agrees with the counts.
func (s *SummaryService) GetSummary(ctx context.Context) (*model.Summary, error) {
	counts, err := s.summaryRepo.GetCounts(ctx)
	if err != nil {
		return nil, err
	}

	students, err := s.summaryRepo.GetStudentRows(ctx)
	if err != nil {
		return nil, err
	}

	teachers, err := s.summaryRepo.GetTeacherRows(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Summary{
		Counts:   counts,
		Students: students,
		Teachers: teachers,
	}, nil
}
